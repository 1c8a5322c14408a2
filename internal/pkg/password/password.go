// Package password implements credential hashing and the account password
// strength policy. All functions are stateless.
package password

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"
)

// specialChars is the fixed set accepted by the strength policy.
const specialChars = "!@#$%^&*()_+-=[]{}|;:,.<>?"

const minLength = 8

// Hash produces a bcrypt hash of the plaintext. The salt is generated per
// call and embedded in the hash, so two hashes of the same input differ.
func Hash(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Verify reports whether the plaintext matches the stored hash. Malformed
// hashes verify as false; this function never fails outward.
func Verify(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// ValidateStrength checks the plaintext against the strength policy. Rules are
// applied in a fixed order and the first failing rule determines the message:
// length, uppercase, lowercase, digit, special character.
func ValidateStrength(plain string) (bool, string) {
	if utf8.RuneCountInString(plain) < minLength {
		return false, "Password must be at least 8 characters long"
	}

	var upper, lower, digit, special bool
	for _, r := range plain {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
		if strings.ContainsRune(specialChars, r) {
			special = true
		}
	}

	if !upper {
		return false, "Password must contain at least one uppercase letter"
	}
	if !lower {
		return false, "Password must contain at least one lowercase letter"
	}
	if !digit {
		return false, "Password must contain at least one digit"
	}
	if !special {
		return false, "Password must contain at least one special character"
	}

	return true, "Password is valid"
}

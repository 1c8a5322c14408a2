package password

import "testing"

func TestValidateStrength(t *testing.T) {
	cases := []struct {
		name     string
		password string
		valid    bool
		message  string
	}{
		{"too short", "Short1!", false, "Password must be at least 8 characters long"},
		{"no uppercase", "alllower1!", false, "Password must contain at least one uppercase letter"},
		{"no lowercase", "ALLUPPER1!", false, "Password must contain at least one lowercase letter"},
		{"no digit", "NoDigits!", false, "Password must contain at least one digit"},
		{"no special char", "NoSpecial1", false, "Password must contain at least one special character"},
		{"valid", "Valid1Pass!", true, "Password is valid"},
		{"empty", "", false, "Password must be at least 8 characters long"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ok, msg := ValidateStrength(tc.password)
			if ok != tc.valid {
				t.Fatalf("expected valid=%v, got %v", tc.valid, ok)
			}
			if msg != tc.message {
				t.Fatalf("expected message %q, got %q", tc.message, msg)
			}
		})
	}
}

func TestValidateStrength_FirstFailureWins(t *testing.T) {
	// Fails both length and uppercase; length is checked first.
	ok, msg := ValidateStrength("ab1!")
	if ok {
		t.Fatalf("expected invalid")
	}
	if msg != "Password must be at least 8 characters long" {
		t.Fatalf("unexpected message: %q", msg)
	}
}

func TestHashVerify_RoundTrip(t *testing.T) {
	hash, err := Hash("Valid1Pass!")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if hash == "Valid1Pass!" {
		t.Fatalf("hash must not equal plaintext")
	}
	if !Verify("Valid1Pass!", hash) {
		t.Fatalf("expected password to verify against its own hash")
	}
	if Verify("Other1Pass!", hash) {
		t.Fatalf("different password must not verify")
	}
}

func TestHash_SaltedPerCall(t *testing.T) {
	h1, err := Hash("Valid1Pass!")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	h2, err := Hash("Valid1Pass!")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if h1 == h2 {
		t.Fatalf("expected per-call salting to produce distinct hashes")
	}
}

func TestVerify_MalformedHash(t *testing.T) {
	if Verify("Valid1Pass!", "not-a-bcrypt-hash") {
		t.Fatalf("malformed hash must not verify")
	}
	if Verify("Valid1Pass!", "") {
		t.Fatalf("empty hash must not verify")
	}
}

package handler

import "github.com/userhub/account-api/internal/core/domain"

// createUserRequest intentionally carries no validate tags: required-field,
// strength, format, and role checks run inside the service in a fixed order so
// the first failing rule determines the error message.
type createUserRequest struct {
	Email    string `json:"email"`
	UserType string `json:"user_type"`
	Password string `json:"password,omitempty"`
}

type createUserResponse struct {
	Message     string `json:"message"`
	UserID      string `json:"user_id"`
	Email       string `json:"email"`
	UserType    string `json:"user_type"`
	HasPassword bool   `json:"has_password,omitempty"`
}

type getUserResponse struct {
	Message string       `json:"message"`
	User    *domain.User `json:"user"`
}

type listUsersResponse struct {
	Message string        `json:"message"`
	Users   []domain.User `json:"users"`
	Count   int           `json:"count"`
	Limit   int64         `json:"limit"`
	Skip    int64         `json:"skip"`
}

type changePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

type changePasswordResponse struct {
	Message string `json:"message"`
	UserID  string `json:"user_id"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

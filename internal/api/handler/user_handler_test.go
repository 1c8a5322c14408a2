package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/userhub/account-api/internal/core/domain"
	"github.com/userhub/account-api/internal/core/ports"
)

type stubUserService struct {
	createFn         func(ctx context.Context, input ports.CreateUserInput) (*ports.CreateUserResult, error)
	getFn            func(ctx context.Context, id string) (*domain.User, error)
	getByEmailFn     func(ctx context.Context, email string) (*domain.User, error)
	listFn           func(ctx context.Context, limit, skip int64) (*ports.UserPage, error)
	changePasswordFn func(ctx context.Context, id, oldPassword, newPassword string) error
}

func (s *stubUserService) CreateUser(ctx context.Context, input ports.CreateUserInput) (*ports.CreateUserResult, error) {
	return s.createFn(ctx, input)
}

func (s *stubUserService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	return s.getFn(ctx, id)
}

func (s *stubUserService) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.getByEmailFn(ctx, email)
}

func (s *stubUserService) ListUsers(ctx context.Context, limit, skip int64) (*ports.UserPage, error) {
	return s.listFn(ctx, limit, skip)
}

func (s *stubUserService) ChangePassword(ctx context.Context, id, oldPassword, newPassword string) error {
	return s.changePasswordFn(ctx, id, oldPassword, newPassword)
}

func newTestContext(t *testing.T, method, target, body string) (*echo.Echo, echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e, e.NewContext(req, rec), rec
}

func TestUserHandler_Create_Success(t *testing.T) {
	stub := &stubUserService{
		createFn: func(ctx context.Context, input ports.CreateUserInput) (*ports.CreateUserResult, error) {
			if input.Email != "alice@example.com" || input.UserType != "USER" || input.Password != "Valid1Pass!" {
				t.Fatalf("unexpected input: %+v", input)
			}
			return &ports.CreateUserResult{UserID: "user_1", Email: input.Email, UserType: input.UserType, HasPassword: true}, nil
		},
	}
	h := NewUserHandler(stub)

	_, c, rec := newTestContext(t, http.MethodPost, "/users",
		`{"email":"alice@example.com","user_type":"USER","password":"Valid1Pass!"}`)

	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["user_id"] != "user_1" || resp["email"] != "alice@example.com" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
	if resp["has_password"] != true {
		t.Fatalf("expected has_password true")
	}
	if _, leaked := resp["password_hash"]; leaked {
		t.Fatalf("password_hash must never appear in a response")
	}
}

func TestUserHandler_Create_InvalidPayload(t *testing.T) {
	stub := &stubUserService{
		createFn: func(ctx context.Context, input ports.CreateUserInput) (*ports.CreateUserResult, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewUserHandler(stub)

	_, c, _ := newTestContext(t, http.MethodPost, "/users", "not-json")

	err := h.Create(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestUserHandler_Get_PropagatesError(t *testing.T) {
	stub := &stubUserService{
		getFn: func(ctx context.Context, id string) (*domain.User, error) {
			return nil, domain.ErrUserNotFound
		},
	}
	h := NewUserHandler(stub)

	_, c, _ := newTestContext(t, http.MethodGet, "/users/abc", "")
	c.SetPath("/users/:user_id")
	c.SetParamNames("user_id")
	c.SetParamValues("abc")

	if err := h.Get(c); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound to propagate, got %v", err)
	}
}

func TestUserHandler_Get_NoHashInBody(t *testing.T) {
	stub := &stubUserService{
		getFn: func(ctx context.Context, id string) (*domain.User, error) {
			// Even if a hash slipped past the service, the json tag keeps it out.
			return &domain.User{ID: id, Email: "a@example.com", UserType: domain.RoleUser, PasswordHash: "bcrypt-stuff"}, nil
		},
	}
	h := NewUserHandler(stub)

	_, c, rec := newTestContext(t, http.MethodGet, "/users/abc", "")
	c.SetPath("/users/:user_id")
	c.SetParamNames("user_id")
	c.SetParamValues("abc")

	if err := h.Get(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if strings.Contains(rec.Body.String(), "bcrypt-stuff") || strings.Contains(rec.Body.String(), "password_hash") {
		t.Fatalf("password hash leaked into response body: %s", rec.Body.String())
	}
}

func TestUserHandler_List_Success(t *testing.T) {
	stub := &stubUserService{
		listFn: func(ctx context.Context, limit, skip int64) (*ports.UserPage, error) {
			if limit != 10 || skip != 5 {
				t.Fatalf("unexpected pagination: %d/%d", limit, skip)
			}
			return &ports.UserPage{
				Users: []domain.User{{ID: "u1", Email: "a@example.com", UserType: domain.RoleUser}},
				Count: 1, Limit: limit, Skip: skip,
			}, nil
		},
	}
	h := NewUserHandler(stub)

	_, c, rec := newTestContext(t, http.MethodGet, "/users?limit=10&skip=5", "")

	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["count"] != float64(1) || resp["limit"] != float64(10) || resp["skip"] != float64(5) {
		t.Fatalf("unexpected page envelope: %+v", resp)
	}
}

func TestUserHandler_List_NonNumericPagination(t *testing.T) {
	stub := &stubUserService{
		listFn: func(ctx context.Context, limit, skip int64) (*ports.UserPage, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewUserHandler(stub)

	_, c, _ := newTestContext(t, http.MethodGet, "/users?limit=lots", "")

	err := h.List(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError for non-numeric limit, got %v", err)
	}
}

func TestUserHandler_ChangePassword_MissingFields(t *testing.T) {
	stub := &stubUserService{
		changePasswordFn: func(ctx context.Context, id, oldPassword, newPassword string) error {
			t.Fatalf("should not be called")
			return nil
		},
	}
	h := NewUserHandler(stub)

	_, c, _ := newTestContext(t, http.MethodPut, "/users/u1/change-password", `{"old_password":"x"}`)
	c.SetPath("/users/:user_id/change-password")
	c.SetParamNames("user_id")
	c.SetParamValues("u1")

	err := h.ChangePassword(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestUserHandler_ChangePassword_Success(t *testing.T) {
	stub := &stubUserService{
		changePasswordFn: func(ctx context.Context, id, oldPassword, newPassword string) error {
			if id != "u1" || oldPassword != "OldPass1!" || newPassword != "NewPass2@" {
				t.Fatalf("unexpected args: %s %s %s", id, oldPassword, newPassword)
			}
			return nil
		},
	}
	h := NewUserHandler(stub)

	_, c, rec := newTestContext(t, http.MethodPut, "/users/u1/change-password",
		`{"old_password":"OldPass1!","new_password":"NewPass2@"}`)
	c.SetPath("/users/:user_id/change-password")
	c.SetParamNames("user_id")
	c.SetParamValues("u1")

	if err := h.ChangePassword(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Password changed successfully") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

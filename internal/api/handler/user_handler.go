package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/userhub/account-api/internal/api/metrics"
	"github.com/userhub/account-api/internal/core/ports"
)

// UserHandler handles HTTP requests for account operations.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// Create handles POST /users.
//
// @Summary      Create a new user account
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      createUserRequest  true  "Account details; password is optional"
// @Success      201   {object}  createUserResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /users [post]
func (h *UserHandler) Create(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	result, err := h.service.CreateUser(c.Request().Context(), ports.CreateUserInput{
		Email:    req.Email,
		UserType: req.UserType,
		Password: req.Password,
	})
	if err != nil {
		return err
	}

	metrics.UsersCreatedTotal.WithLabelValues(result.UserType).Inc()

	return c.JSON(http.StatusCreated, createUserResponse{
		Message:     "User created successfully",
		UserID:      result.UserID,
		Email:       result.Email,
		UserType:    result.UserType,
		HasPassword: result.HasPassword,
	})
}

// Get handles GET /users/:user_id.
//
// @Summary      Get a user by id
// @Tags         users
// @Produce      json
// @Param        user_id  path      string  true  "User id"
// @Success      200      {object}  getUserResponse
// @Failure      404      {object}  map[string]string
// @Failure      500      {object}  map[string]string
// @Router       /users/{user_id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	user, err := h.service.GetUser(c.Request().Context(), c.Param("user_id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, getUserResponse{
		Message: "User retrieved successfully",
		User:    user,
	})
}

// GetByEmail handles GET /users/email/:email.
//
// @Summary      Get a user by email
// @Tags         users
// @Produce      json
// @Param        email  path      string  true  "Email address"
// @Success      200    {object}  getUserResponse
// @Failure      404    {object}  map[string]string
// @Failure      500    {object}  map[string]string
// @Router       /users/email/{email} [get]
func (h *UserHandler) GetByEmail(c echo.Context) error {
	user, err := h.service.GetUserByEmail(c.Request().Context(), c.Param("email"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, getUserResponse{
		Message: "User retrieved successfully",
		User:    user,
	})
}

// List handles GET /users. Numeric limit/skip values clamp inside the
// service; non-numeric values are a caller error.
//
// @Summary      List users with pagination
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        limit  query     int  false  "Page size (default 50, max 100)"
// @Param        skip   query     int  false  "Records to skip"
// @Success      200    {object}  listUsersResponse
// @Failure      400    {object}  map[string]string
// @Failure      401    {object}  map[string]string
// @Failure      403    {object}  map[string]string
// @Failure      500    {object}  map[string]string
// @Router       /users [get]
func (h *UserHandler) List(c echo.Context) error {
	limit, skip, err := paginationParams(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid pagination parameters")
	}

	page, err := h.service.ListUsers(c.Request().Context(), limit, skip)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, listUsersResponse{
		Message: "Users retrieved successfully",
		Users:   page.Users,
		Count:   page.Count,
		Limit:   page.Limit,
		Skip:    page.Skip,
	})
}

// ChangePassword handles PUT /users/:user_id/change-password.
//
// @Summary      Change a user's password
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        user_id  path      string                 true  "User id"
// @Param        body     body      changePasswordRequest  true  "Old and new password"
// @Success      200      {object}  changePasswordResponse
// @Failure      400      {object}  map[string]string
// @Failure      401      {object}  map[string]string
// @Failure      404      {object}  map[string]string
// @Failure      500      {object}  map[string]string
// @Router       /users/{user_id}/change-password [put]
func (h *UserHandler) ChangePassword(c echo.Context) error {
	var req changePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if req.OldPassword == "" || req.NewPassword == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "old_password and new_password are required")
	}

	userID := c.Param("user_id")
	if err := h.service.ChangePassword(c.Request().Context(), userID, req.OldPassword, req.NewPassword); err != nil {
		metrics.PasswordChangesTotal.WithLabelValues("failure").Inc()
		return err
	}

	metrics.PasswordChangesTotal.WithLabelValues("success").Inc()

	return c.JSON(http.StatusOK, changePasswordResponse{
		Message: "Password changed successfully",
		UserID:  userID,
	})
}

// Health handles GET /users/health — a static description of the user API.
func (h *UserHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status":  "healthy",
		"service": "user_apis",
		"endpoints": []string{
			"POST /users - Create user",
			"GET /users - List users (with pagination)",
			"GET /users/{user_id} - Get user by id",
			"GET /users/email/{email} - Get user by email",
			"PUT /users/{user_id}/change-password - Change user password",
		},
	})
}

func paginationParams(c echo.Context) (limit, skip int64, err error) {
	limit = 50
	if raw := c.QueryParam("limit"); raw != "" {
		limit, err = strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return 0, 0, err
		}
	}
	if raw := c.QueryParam("skip"); raw != "" {
		skip, err = strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return 0, 0, err
		}
	}
	return limit, skip, nil
}

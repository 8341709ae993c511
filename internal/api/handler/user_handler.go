package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/smarttodo/tasks-api/internal/core/ports"
)

// UserHandler serves registration and the caller's own profile.
type UserHandler struct {
	authService ports.AuthService
	userService ports.UserService
}

func NewUserHandler(authService ports.AuthService, userService ports.UserService) *UserHandler {
	return &UserHandler{authService: authService, userService: userService}
}

type signupRequest struct {
	Email    string `json:"email"    validate:"omitempty,email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type updateProfileRequest struct {
	Name  string `json:"name"`
	Theme string `json:"theme" example:"dark"`
}

type resetPasswordRequest struct {
	Email string `json:"email" validate:"omitempty,email"`
}

// Signup registers a new user account.
//
// @Summary      Register a new user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      signupRequest  true  "Registration details"
// @Success      201   {object}  signupResponse
// @Failure      400   {object}  messageResponse
// @Failure      500   {object}  messageResponse
// @Router       /api/users/signup [post]
func (h *UserHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	id, err := h.authService.Signup(c.Request().Context(), req.Email, req.Password, req.Name)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, signupResponse{Message: "User registered successfully", UserID: id})
}

// Profile returns the caller's profile without credentials.
//
// @Summary      Get own profile
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  profileResponse
// @Failure      401  {object}  messageResponse
// @Failure      404  {object}  messageResponse
// @Router       /api/users/profile [get]
func (h *UserHandler) Profile(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	user, err := h.userService.Profile(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProfileResponse(user))
}

// UpdateProfile changes the caller's display name and theme.
//
// @Summary      Update own profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateProfileRequest  true  "Profile fields; empty values are left unchanged"
// @Success      200   {object}  messageResponse
// @Failure      401   {object}  messageResponse
// @Failure      404   {object}  messageResponse
// @Router       /api/users/profile [put]
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	if _, err := h.userService.UpdateProfile(c.Request().Context(), userID, req.Name, req.Theme); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Profile updated successfully"})
}

// ResetPassword acknowledges a password reset request for a known email.
//
// @Summary      Request a password reset
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      resetPasswordRequest  true  "Account email"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  messageResponse
// @Failure      404   {object}  messageResponse
// @Router       /api/users/reset-password [post]
func (h *UserHandler) ResetPassword(c echo.Context) error {
	var req resetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.userService.RequestPasswordReset(c.Request().Context(), req.Email); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Password reset link sent to email"})
}

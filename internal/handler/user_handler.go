package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"kitchensaver/internal/auth"
	"kitchensaver/internal/model"
	"kitchensaver/internal/service"
)

// UserResponse is the envelope returned by every user endpoint. On
// failure the message carries the error and the token is blank.
type UserResponse struct {
	Message string      `json:"message"`
	Token   string      `json:"token"`
	Role    model.Role  `json:"role,omitempty"`
	User    *model.User `json:"user,omitempty"`
}

// LoginRequest represents a login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserHandler handles registration, login and user management endpoints.
type UserHandler struct {
	svc service.UserService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(svc service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// Register godoc
// @Summary Register a new user
// @Tags user
// @Accept json
// @Produce json
// @Param request body service.UserInput true "Registration data"
// @Success 200 {object} UserResponse
// @Failure 400 {object} UserResponse
// @Router /user/register [post]
func (h *UserHandler) Register(c echo.Context) error {
	var in service.UserInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, UserResponse{Message: "invalid request body"})
	}

	user, token, err := h.svc.Register(c.Request().Context(), &in)
	if err != nil {
		return c.JSON(http.StatusBadRequest, UserResponse{Message: err.Error()})
	}
	return c.JSON(http.StatusOK, UserResponse{
		Message: "User registered successfully",
		Token:   token,
		Role:    user.Role,
		User:    user,
	})
}

// CreateEmployee godoc
// @Summary Create an employee account (admin only)
// @Tags user
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.UserInput true "Employee data"
// @Success 200 {object} UserResponse
// @Failure 400 {object} UserResponse
// @Router /user/createEmployee [post]
func (h *UserHandler) CreateEmployee(c echo.Context) error {
	return h.Register(c)
}

// Login godoc
// @Summary Login with email and password
// @Tags user
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} UserResponse
// @Failure 400 {object} UserResponse
// @Router /user/login [post]
func (h *UserHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, UserResponse{Message: "invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, UserResponse{Message: err.Error()})
	}

	user, token, err := h.svc.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return c.JSON(http.StatusBadRequest, UserResponse{Message: err.Error()})
	}
	return c.JSON(http.StatusOK, UserResponse{
		Message: "User login successfully",
		Token:   token,
		Role:    user.Role,
		User:    user,
	})
}

// UpdateProfile godoc
// @Summary Partially update the caller's own profile
// @Tags user
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.UserInput true "Fields to update; empty fields are left unchanged"
// @Success 200 {object} UserResponse
// @Failure 400 {object} UserResponse
// @Router /user/updateProfile [patch]
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	claims, ok := auth.FromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, auth.GateResponse{Status: http.StatusUnauthorized, Message: "Invalid token"})
	}

	var in service.UserInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, UserResponse{Message: "invalid request body"})
	}

	user, token, err := h.svc.UpdateProfile(c.Request().Context(), claims.Subject, &in)
	if err != nil {
		return c.JSON(http.StatusBadRequest, UserResponse{Message: err.Error()})
	}
	return c.JSON(http.StatusOK, UserResponse{
		Message: "User updated successfully",
		Token:   token,
		Role:    user.Role,
		User:    user,
	})
}

// UpdateEmployee godoc
// @Summary Partially update an employee by id (admin only)
// @Tags user
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.UserInput true "Fields to update plus target id"
// @Success 200 {object} UserResponse
// @Failure 400 {object} UserResponse
// @Router /user/updateEmployee [patch]
func (h *UserHandler) UpdateEmployee(c echo.Context) error {
	var in service.UserInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, UserResponse{Message: "invalid request body"})
	}

	user, err := h.svc.UpdateEmployee(c.Request().Context(), &in)
	if err != nil {
		return c.JSON(http.StatusBadRequest, UserResponse{Message: err.Error()})
	}
	return c.JSON(http.StatusOK, UserResponse{
		Message: "User updated successfully",
		Role:    user.Role,
		User:    user,
	})
}

// GetSelf godoc
// @Summary Get the caller's own profile
// @Tags user
// @Produce json
// @Security BearerAuth
// @Success 200 {object} UserResponse
// @Failure 400 {object} UserResponse
// @Router /user/getSelf [get]
func (h *UserHandler) GetSelf(c echo.Context) error {
	claims, ok := auth.FromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, auth.GateResponse{Status: http.StatusUnauthorized, Message: "Invalid token"})
	}

	user, err := h.svc.GetSelf(c.Request().Context(), claims.Subject)
	if err != nil {
		return c.JSON(http.StatusBadRequest, UserResponse{Message: err.Error()})
	}
	return c.JSON(http.StatusOK, UserResponse{
		Message: "User found successfully",
		Role:    user.Role,
		User:    user,
	})
}

// GetAllEmployees godoc
// @Summary List all non-admin users (admin only)
// @Tags user
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.User
// @Failure 400 {object} UserResponse
// @Router /user/getAllEmployees [get]
func (h *UserHandler) GetAllEmployees(c echo.Context) error {
	users, err := h.svc.ListEmployees(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusBadRequest, UserResponse{Message: err.Error()})
	}
	return c.JSON(http.StatusOK, users)
}

// Delete godoc
// @Summary Delete a user by id (admin only)
// @Tags user
// @Produce plain
// @Security BearerAuth
// @Param userId path int true "User ID"
// @Success 200 {string} string
// @Failure 400 {object} UserResponse
// @Router /user/delete/{userId} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("userId"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, UserResponse{Message: "Invalid user id"})
	}
	if err := h.svc.Delete(c.Request().Context(), uint(id)); err != nil {
		return c.JSON(http.StatusBadRequest, UserResponse{Message: err.Error()})
	}
	return c.String(http.StatusOK, "User deleted successfully")
}

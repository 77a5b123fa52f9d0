package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/employee-service/internal/api/dto"
	"github.com/spec-kit/employee-service/internal/auth"
	"github.com/spec-kit/employee-service/internal/service"
)

// AuthHandler exposes login, session and profile endpoints for both roles.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	result, err := h.auth.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(dto.LoginResponse{
		Success:   true,
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt,
		User:      dto.SummarizeIdentity(result.Identity),
	})
}

// Verify handles GET /api/auth/verify.
func (h *AuthHandler) Verify(c *fiber.Ctx) error {
	identity, err := caller(c)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"user":    dto.SummarizeIdentity(identity),
	})
}

// Logout handles POST /api/auth/logout and clears the view cookie.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	identity, err := caller(c)
	if err != nil {
		return err
	}
	h.auth.Logout(c.UserContext(), identity)
	c.ClearCookie(auth.TokenCookie)
	return message(c, "logged out")
}

// ChangePassword handles POST /api/auth/password/change and its employee alias.
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	identity, err := caller(c)
	if err != nil {
		return err
	}
	var req dto.PasswordChangeRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := h.auth.ChangePassword(c.UserContext(), identity, req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}
	return message(c, "password updated")
}

// AdminProfile handles GET /api/user/profile.
func (h *AuthHandler) AdminProfile(c *fiber.Ctx) error {
	identity, err := caller(c)
	if err != nil {
		return err
	}
	admin, err := h.auth.AdminProfile(c.UserContext(), identity.ID())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, admin)
}

// UpdateAdminProfile handles PUT /api/user/profile.
func (h *AuthHandler) UpdateAdminProfile(c *fiber.Ctx) error {
	identity, err := caller(c)
	if err != nil {
		return err
	}
	var req dto.AdminProfileRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	admin, err := h.auth.UpdateAdminProfile(c.UserContext(), identity.ID(), service.AdminProfileInput{
		Name:        req.Name,
		Email:       req.Email,
		JobTitle:    req.JobTitle,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, admin)
}

// EmployeeProfile handles GET /api/employee/profile.
func (h *AuthHandler) EmployeeProfile(c *fiber.Ctx) error {
	identity, err := caller(c)
	if err != nil {
		return err
	}
	emp, err := h.auth.EmployeeProfile(c.UserContext(), identity.ID())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, emp)
}

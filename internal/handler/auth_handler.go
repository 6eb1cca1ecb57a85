package handler

import (
	"go-supermarket-inventory/internal/apperror"
	"go-supermarket-inventory/internal/middleware"
	"go-supermarket-inventory/internal/service"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login handles user authentication
// POST /api/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req service.LoginRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	resp, err := h.authService.Login(c.UserContext(), &req)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success":    true,
		"message":    "Login successful",
		"token":      resp.Token,
		"expires_at": resp.ExpiresAt,
		"user":       resp.User,
	})
}

// Profile returns the authenticated user with role permissions
// GET /api/auth/profile
func (h *AuthHandler) Profile(c *fiber.Ctx) error {
	user, found := middleware.User(c)
	if !found {
		return apperror.Unauthorized("Access token required")
	}
	profile, err := h.authService.Profile(c.UserContext(), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "user": profile})
}

// Roles lists the roles a user can be given
// GET /api/auth/roles
func (h *AuthHandler) Roles(c *fiber.Ctx) error {
	roles, err := h.authService.Roles(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "roles": roles})
}

// Logout is an acknowledgment only; tokens expire on their own.
// POST /api/auth/logout
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	return message(c, "Logout successful")
}

// ChangePassword replaces the caller's password after checking the current one
// POST /api/auth/change-password
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	user, found := middleware.User(c)
	if !found {
		return apperror.Unauthorized("Access token required")
	}
	var req service.ChangePasswordRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := h.authService.ChangePassword(c.UserContext(), user.ID, &req); err != nil {
		return err
	}
	return message(c, "Password updated successfully")
}

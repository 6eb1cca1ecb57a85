package middleware

import (
	"strings"

	"go-supermarket-inventory/internal/apperror"
	"go-supermarket-inventory/internal/service"
	"go-supermarket-inventory/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	localUserID   = "user_id"
	localUsername = "username"
	localRole     = "role"
)

// TokenVerifier checks a bearer token; *jwt.Manager satisfies it.
type TokenVerifier interface {
	ValidateToken(token string) (*jwt.Claims, error)
}

// CurrentUser is the identity RequireAuth stores on the request.
type CurrentUser struct {
	ID       uuid.UUID
	Username string
	Role     string
}

// RequireAuth is middleware that validates the bearer token and sets user info in context
func RequireAuth(tokens TokenVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return apperror.Unauthorized("Access token required")
		}

		// "Bearer <token>"
		parts := strings.Fields(authHeader)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			return apperror.Unauthorized("Invalid authorization format. Use: Bearer <token>")
		}

		claims, err := tokens.ValidateToken(parts[1])
		if err != nil {
			return apperror.Unauthorized("Invalid or expired token")
		}

		c.Locals(localUserID, claims.UserID)
		c.Locals(localUsername, claims.Username)
		c.Locals(localRole, claims.Role)

		return c.Next()
	}
}

// RequireRoles lets the request through only when the authenticated role is
// one of roles. It must run after RequireAuth.
func RequireRoles(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals(localRole).(string)
		if role == "" {
			return apperror.Unauthorized("Access token required")
		}
		if !service.Authorize(role, roles...) {
			return apperror.Forbidden("Insufficient permissions")
		}
		return c.Next()
	}
}

// User returns the identity set by RequireAuth; ok is false on public routes.
func User(c *fiber.Ctx) (CurrentUser, bool) {
	id, ok := c.Locals(localUserID).(uuid.UUID)
	if !ok {
		return CurrentUser{}, false
	}
	username, _ := c.Locals(localUsername).(string)
	role, _ := c.Locals(localRole).(string)
	return CurrentUser{ID: id, Username: username, Role: role}, true
}

// Actor names the caller for created_by/updated_by audit columns.
func Actor(c *fiber.Ctx) string {
	if u, ok := User(c); ok && u.Username != "" {
		return u.Username
	}
	return "system"
}

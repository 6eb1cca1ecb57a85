package handler

import (
	"context"
	"time"

	"go-supermarket-inventory/pkg/config"

	"github.com/gofiber/fiber/v2"
)

type HealthHandler struct {
	env  string
	ping func(ctx context.Context) error
}

// NewHealthHandler reports liveness; ping, when not nil, checks the database.
func NewHealthHandler(env string, ping func(ctx context.Context) error) *HealthHandler {
	return &HealthHandler{env: env, ping: ping}
}

// GET /api/health
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	status := fiber.StatusOK
	body := fiber.Map{
		"success":     true,
		"message":     "Supermarket inventory API is running",
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
		"environment": h.env,
		"version":     config.ServiceVersion,
		"database":    "up",
	}

	if h.ping != nil {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := h.ping(ctx); err != nil {
			status = fiber.StatusServiceUnavailable
			body["success"] = false
			body["database"] = "down"
		}
	}
	return c.Status(status).JSON(body)
}

package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ebank/ebank/internal/auth"
)

// RegisterAuthRoutes wires login endpoints.
func RegisterAuthRoutes(r fiber.Router, h *auth.Handler, rateLimiter fiber.Handler) {
	group := r.Group("/auth")
	if rateLimiter != nil {
		group.Post("/login-user", rateLimiter, h.LoginCustomer)
		group.Post("/login-admin", rateLimiter, h.LoginAdmin)
	} else {
		group.Post("/login-user", h.LoginCustomer)
		group.Post("/login-admin", h.LoginAdmin)
	}
}

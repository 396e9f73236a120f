package middleware

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/ebank/ebank/internal/auth"
	"github.com/ebank/ebank/internal/config"
)

// RequireAdmin gates a route group behind a bearer token carrying the admin role.
func RequireAdmin(cfg config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			return fiber.NewError(http.StatusUnauthorized, "missing bearer token")
		}

		subject, role, err := auth.VerifyToken(token, cfg.JWTSecret)
		if err != nil {
			return fiber.NewError(http.StatusUnauthorized, "invalid token")
		}
		if role != auth.RoleAdmin {
			return fiber.NewError(http.StatusForbidden, "admin access required")
		}

		c.Locals("admin_id", subject)
		return c.Next()
	}
}

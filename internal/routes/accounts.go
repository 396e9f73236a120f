package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ebank/ebank/internal/account"
)

// RegisterAccountRoutes wires customer-facing account endpoints.
func RegisterAccountRoutes(r fiber.Router, h *account.Handler) {
	r.Get("/accounts/:accountNumber", h.Get)
	r.Put("/accounts/:accountNumber", h.Update)
}

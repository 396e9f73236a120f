package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ebank/ebank/internal/account"
	"github.com/ebank/ebank/internal/ledger"
)

// RegisterAdminRoutes wires administrative endpoints behind the admin gate.
func RegisterAdminRoutes(r fiber.Router, accounts *account.Handler, txs *ledger.Handler, gate fiber.Handler) {
	group := r.Group("/admin", gate)
	group.Post("/accounts", accounts.Create)
	group.Get("/users", accounts.List)
	group.Get("/stats", accounts.Stats)
	group.Post("/deposit", txs.AdminDeposit)
}

package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ebank/ebank/internal/ledger"
)

// RegisterTransactionRoutes wires ledger mutation and history endpoints. The
// idempotency middleware, when present, covers the mutating routes only.
func RegisterTransactionRoutes(r fiber.Router, h *ledger.Handler, idem fiber.Handler) {
	group := r.Group("/transactions")
	if idem != nil {
		group.Use(idem)
	}
	group.Post("/deposit", h.Deposit)
	group.Post("/withdraw-wallet", h.WithdrawWallet)
	group.Post("/transfer", h.Transfer)
	group.Get("", h.List)

	pay := r.Group("/wallet")
	if idem != nil {
		pay.Use(idem)
	}
	pay.Post("/pay", h.WalletPay)
}

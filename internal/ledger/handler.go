package ledger

import (
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/ebank/ebank/internal/account"
)

const dateLayout = "2006-01-02"

// Handler exposes ledger HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a ledger HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type depositRequest struct {
	AccountNumber string          `json:"account_number"`
	PIN           string          `json:"pin"`
	Amount        decimal.Decimal `json:"amount"`
}

type withdrawRequest struct {
	AccountNumber string          `json:"account_number"`
	PIN           string          `json:"pin"`
	Amount        decimal.Decimal `json:"amount"`
}

type transferRequest struct {
	FromAccountNumber string          `json:"from_account_number"`
	ToAccountNumber   string          `json:"to_account_number"`
	PIN               string          `json:"pin"`
	Amount            decimal.Decimal `json:"amount"`
}

type walletPayRequest struct {
	AccountNumber string          `json:"account_number"`
	Merchant      string          `json:"merchant"`
	Amount        decimal.Decimal `json:"amount"`
}

type adminDepositRequest struct {
	AccountNumber string          `json:"account_number"`
	Amount        decimal.Decimal `json:"amount"`
}

type entryResponse struct {
	ID          string `json:"id"`
	Date        string `json:"date"`
	Type        Type   `json:"type"`
	Amount      string `json:"amount"`
	FromAccount string `json:"from_account,omitempty"`
	ToAccount   string `json:"to_account,omitempty"`
	Merchant    string `json:"merchant,omitempty"`
}

func toResponse(e Entry) entryResponse {
	return entryResponse{
		ID:          e.ID,
		Date:        e.CreatedAt.Format(time.RFC3339),
		Type:        e.Type,
		Amount:      e.Amount.StringFixed(2),
		FromAccount: e.FromAccount,
		ToAccount:   e.ToAccount,
		Merchant:    e.Merchant,
	}
}

// Deposit handles a customer deposit.
func (h *Handler) Deposit(c *fiber.Ctx) error {
	var req depositRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	entry, err := h.service.Deposit(c.UserContext(), DepositInput{
		AccountNumber: req.AccountNumber,
		PIN:           req.PIN,
		Amount:        req.Amount,
	})
	if err != nil {
		return mapError(err)
	}
	return c.Status(http.StatusCreated).JSON(toResponse(entry))
}

// WithdrawWallet handles a bank-to-wallet withdrawal.
func (h *Handler) WithdrawWallet(c *fiber.Ctx) error {
	var req withdrawRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	entry, err := h.service.WithdrawToWallet(c.UserContext(), WithdrawInput{
		AccountNumber: req.AccountNumber,
		PIN:           req.PIN,
		Amount:        req.Amount,
	})
	if err != nil {
		return mapError(err)
	}
	return c.Status(http.StatusCreated).JSON(toResponse(entry))
}

// Transfer handles an account-to-account transfer.
func (h *Handler) Transfer(c *fiber.Ctx) error {
	var req transferRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	entry, err := h.service.Transfer(c.UserContext(), TransferInput{
		FromAccountNumber: req.FromAccountNumber,
		ToAccountNumber:   req.ToAccountNumber,
		PIN:               req.PIN,
		Amount:            req.Amount,
	})
	if err != nil {
		return mapError(err)
	}
	return c.Status(http.StatusCreated).JSON(toResponse(entry))
}

// WalletPay handles a merchant payment from the wallet balance.
func (h *Handler) WalletPay(c *fiber.Ctx) error {
	var req walletPayRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	entry, err := h.service.WalletPay(c.UserContext(), WalletPayInput{
		AccountNumber: req.AccountNumber,
		Merchant:      req.Merchant,
		Amount:        req.Amount,
	})
	if err != nil {
		return mapError(err)
	}
	return c.Status(http.StatusCreated).JSON(toResponse(entry))
}

// AdminDeposit handles a PIN-less administrative deposit. Admin-gated route.
func (h *Handler) AdminDeposit(c *fiber.Ctx) error {
	var req adminDepositRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	entry, err := h.service.AdminDeposit(c.UserContext(), req.AccountNumber, req.Amount)
	if err != nil {
		return mapError(err)
	}
	return c.Status(http.StatusCreated).JSON(toResponse(entry))
}

// List returns filtered transaction history, newest first.
func (h *Handler) List(c *fiber.Ctx) error {
	f := Filter{AccountNumber: c.Query("account_number")}

	if v := c.Query("start_date"); v != "" {
		d, err := time.Parse(dateLayout, v)
		if err != nil {
			return fiber.NewError(http.StatusBadRequest, "start_date must be YYYY-MM-DD")
		}
		f.StartDate = d
	}
	if v := c.Query("end_date"); v != "" {
		d, err := time.Parse(dateLayout, v)
		if err != nil {
			return fiber.NewError(http.StatusBadRequest, "end_date must be YYYY-MM-DD")
		}
		f.EndDate = d
	}

	entries, err := h.service.ListTransactions(c.UserContext(), f)
	if err != nil {
		return mapError(err)
	}
	out := make([]entryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, toResponse(e))
	}
	return c.Status(http.StatusOK).JSON(out)
}

func mapError(err error) error {
	switch {
	case errors.Is(err, account.ErrNotFound):
		return fiber.NewError(http.StatusNotFound, err.Error())
	case errors.Is(err, account.ErrInvalidPin):
		return fiber.NewError(http.StatusUnauthorized, err.Error())
	case errors.Is(err, ErrInvalidAmount),
		errors.Is(err, ErrSameAccount),
		errors.Is(err, ErrMerchantRequired),
		errors.Is(err, ErrInsufficientFunds):
		return fiber.NewError(http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrConflict):
		return fiber.NewError(http.StatusConflict, err.Error())
	default:
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
}

package account

import (
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
)

const dateLayout = "2006-01-02"

// Handler exposes account HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler builds an account HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type createRequest struct {
	Name       string `json:"name"`
	Mobile     string `json:"mobile"`
	Address    string `json:"address"`
	DOB        string `json:"dob"`
	NationalID string `json:"national_id"`
	PIN        string `json:"pin"`
}

type updateRequest struct {
	Address *string `json:"address"`
	PIN     *string `json:"pin"`
}

type accountResponse struct {
	AccountNumber string `json:"account_number"`
	Name          string `json:"name"`
	Mobile        string `json:"mobile"`
	Address       string `json:"address"`
	DOB           string `json:"dob"`
	NationalID    string `json:"national_id"`
	Balance       string `json:"balance"`
	WalletBalance string `json:"wallet_balance"`
}

func toResponse(a Account) accountResponse {
	return accountResponse{
		AccountNumber: a.AccountNumber,
		Name:          a.Name,
		Mobile:        a.Mobile,
		Address:       a.Address,
		DOB:           a.DOB.Format(dateLayout),
		NationalID:    a.NationalID,
		Balance:       a.Balance.StringFixed(2),
		WalletBalance: a.WalletBalance.StringFixed(2),
	}
}

// Create opens a new account. Reached only through the admin-gated group.
func (h *Handler) Create(c *fiber.Ctx) error {
	var req createRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	dob, err := time.Parse(dateLayout, req.DOB)
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "dob must be YYYY-MM-DD")
	}
	acct, err := h.service.Create(c.UserContext(), CreateInput{
		Name:       req.Name,
		Mobile:     req.Mobile,
		Address:    req.Address,
		DOB:        dob,
		NationalID: req.NationalID,
		PIN:        req.PIN,
	})
	if err != nil {
		return mapError(err)
	}
	return c.Status(http.StatusCreated).JSON(toResponse(acct))
}

// Get fetches a single account by number.
func (h *Handler) Get(c *fiber.Ctx) error {
	acct, err := h.service.GetByNumber(c.UserContext(), c.Params("accountNumber"))
	if err != nil {
		return mapError(err)
	}
	return c.Status(http.StatusOK).JSON(toResponse(acct))
}

// Update patches address and/or PIN.
func (h *Handler) Update(c *fiber.Ctx) error {
	var req updateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	acct, err := h.service.UpdateProfile(c.UserContext(), c.Params("accountNumber"), ProfilePatch{
		Address: req.Address,
		PIN:     req.PIN,
	})
	if err != nil {
		return mapError(err)
	}
	return c.Status(http.StatusOK).JSON(toResponse(acct))
}

// List returns all accounts in creation order.
func (h *Handler) List(c *fiber.Ctx) error {
	accounts, err := h.service.List(c.UserContext())
	if err != nil {
		return mapError(err)
	}
	out := make([]accountResponse, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, toResponse(a))
	}
	return c.Status(http.StatusOK).JSON(out)
}

// Stats returns aggregate totals over all accounts.
func (h *Handler) Stats(c *fiber.Ctx) error {
	stats, err := h.service.Stats(c.UserContext())
	if err != nil {
		return mapError(err)
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"total_customers":      stats.TotalAccounts,
		"total_bank_balance":   stats.TotalBankBalance.StringFixed(2),
		"total_wallet_balance": stats.TotalWalletBalance.StringFixed(2),
	})
}

func mapError(err error) error {
	switch {
	case errors.Is(err, ErrNotFound):
		return fiber.NewError(http.StatusNotFound, err.Error())
	case errors.Is(err, ErrDuplicateMobile):
		return fiber.NewError(http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrInvalidPin):
		return fiber.NewError(http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrExhaustedKeyspace):
		return fiber.NewError(http.StatusServiceUnavailable, err.Error())
	default:
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
}

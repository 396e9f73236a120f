package auth

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// Handler exposes login endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs an auth HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type customerLoginRequest struct {
	Mobile string `json:"mobile"`
	PIN    string `json:"pin"`
}

type adminLoginRequest struct {
	AdminID  string `json:"admin_id"`
	Password string `json:"password"`
}

// LoginCustomer authenticates an account holder by mobile and PIN.
func (h *Handler) LoginCustomer(c *fiber.Ctx) error {
	var req customerLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	acct, token, err := h.service.LoginCustomer(c.UserContext(), req.Mobile, req.PIN)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			return fiber.NewError(http.StatusUnauthorized, err.Error())
		}
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"account_number": acct.AccountNumber,
		"name":           acct.Name,
		"mobile":         acct.Mobile,
		"access_token":   token.AccessToken,
		"expires_in":     token.ExpiresIn,
	})
}

// LoginAdmin authenticates the administrative caller.
func (h *Handler) LoginAdmin(c *fiber.Ctx) error {
	var req adminLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	token, err := h.service.LoginAdmin(req.AdminID, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidAdminCredentials) {
			return fiber.NewError(http.StatusUnauthorized, err.Error())
		}
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.Status(http.StatusOK).JSON(token)
}

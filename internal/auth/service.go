package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"time"

	"github.com/ebank/ebank/internal/account"
	"github.com/ebank/ebank/internal/config"
)

const (
	// RoleCustomer marks tokens issued to account holders.
	RoleCustomer = "customer"
	// RoleAdmin marks tokens issued through the administrative login.
	RoleAdmin = "admin"
)

var (
	// ErrInvalidCredentials occurs when the mobile/PIN pair does not match.
	ErrInvalidCredentials = errors.New("invalid mobile or PIN")

	// ErrInvalidAdminCredentials occurs when the admin id/password pair does not match.
	ErrInvalidAdminCredentials = errors.New("invalid admin credentials")
)

// Service issues short-lived tokens for customers and administrators.
type Service struct {
	cfg      config.Config
	accounts *account.Service
}

// NewService creates an auth service.
func NewService(cfg config.Config, accounts *account.Service) *Service {
	return &Service{cfg: cfg, accounts: accounts}
}

// Token carries an issued access token.
type Token struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

// LoginCustomer verifies mobile plus PIN and issues a customer token.
func (s *Service) LoginCustomer(ctx context.Context, mobile, pin string) (account.Account, Token, error) {
	acct, err := s.accounts.GetByMobile(ctx, mobile)
	if err != nil {
		if errors.Is(err, account.ErrNotFound) {
			return account.Account{}, Token{}, ErrInvalidCredentials
		}
		return account.Account{}, Token{}, err
	}
	if err := account.VerifyPIN(acct, pin); err != nil {
		return account.Account{}, Token{}, ErrInvalidCredentials
	}

	token, err := s.sign(acct.AccountNumber, RoleCustomer)
	if err != nil {
		return account.Account{}, Token{}, err
	}
	return acct, token, nil
}

// LoginAdmin verifies the configured administrative credentials in constant
// time and issues an admin token.
func (s *Service) LoginAdmin(adminID, password string) (Token, error) {
	idOK := subtle.ConstantTimeCompare([]byte(adminID), []byte(s.cfg.AdminID))
	pwOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.cfg.AdminPassword))
	if idOK&pwOK != 1 {
		return Token{}, ErrInvalidAdminCredentials
	}
	return s.sign(s.cfg.AdminID, RoleAdmin)
}

func (s *Service) sign(subject, role string) (Token, error) {
	now := time.Now()
	exp := now.Add(s.cfg.TokenTTL)
	claims := map[string]any{
		"sub":  subject,
		"role": role,
		"iat":  now.Unix(),
		"exp":  exp.Unix(),
	}
	signed, err := SignHS256(claims, []byte(s.cfg.JWTSecret))
	if err != nil {
		return Token{}, err
	}
	return Token{AccessToken: signed, ExpiresIn: int64(s.cfg.TokenTTL.Seconds())}, nil
}

// VerifyToken checks signature and expiry and returns subject and role.
func VerifyToken(token, secret string) (subject, role string, err error) {
	claims, err := ParseAndVerifyHS256(token, []byte(secret))
	if err != nil {
		return "", "", err
	}
	exp, _ := claims["exp"].(float64)
	if int64(exp) < time.Now().Unix() {
		return "", "", errors.New("token expired")
	}
	subject, _ = claims["sub"].(string)
	role, _ = claims["role"].(string)
	return subject, role, nil
}

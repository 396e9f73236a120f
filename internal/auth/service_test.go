package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ebank/ebank/internal/account"
	"github.com/ebank/ebank/internal/config"
)

func testConfig() config.Config {
	return config.Config{
		JWTSecret:     "test-secret",
		TokenTTL:      time.Minute,
		AdminID:       "admin",
		AdminPassword: "a123",
	}
}

func TestSignAndVerifyRoundTrip(t *testing.T) {
	claims := map[string]any{"sub": "12345678", "role": RoleCustomer, "exp": time.Now().Add(time.Minute).Unix()}
	token, err := SignHS256(claims, []byte("test-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	subject, role, err := VerifyToken(token, "test-secret")
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if subject != "12345678" || role != RoleCustomer {
		t.Fatalf("unexpected claims: %s/%s", subject, role)
	}

	if _, _, err := VerifyToken(token, "other-secret"); err == nil {
		t.Fatalf("expected verification failure with wrong secret")
	}
}

func TestVerifyTokenExpired(t *testing.T) {
	claims := map[string]any{"sub": "12345678", "role": RoleCustomer, "exp": time.Now().Add(-time.Minute).Unix()}
	token, err := SignHS256(claims, []byte("test-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, _, err := VerifyToken(token, "test-secret"); err == nil {
		t.Fatalf("expected expiry failure")
	}
}

func TestLoginCustomer(t *testing.T) {
	repo := account.NewMemoryRepository()
	svc := NewService(testConfig(), account.NewService(repo))
	ctx := context.Background()

	account.SeedTestAccount(t, repo, "12345678", "1234567890", "1234", decimal.Zero, decimal.Zero)

	acct, token, err := svc.LoginCustomer(ctx, "1234567890", "1234")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if acct.AccountNumber != "12345678" || token.AccessToken == "" {
		t.Fatalf("unexpected login result: %+v", acct)
	}

	subject, role, err := VerifyToken(token.AccessToken, "test-secret")
	if err != nil {
		t.Fatalf("verify issued token: %v", err)
	}
	if subject != "12345678" || role != RoleCustomer {
		t.Fatalf("unexpected token claims: %s/%s", subject, role)
	}

	if _, _, err := svc.LoginCustomer(ctx, "1234567890", "9999"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong PIN, got %v", err)
	}
	if _, _, err := svc.LoginCustomer(ctx, "0000000000", "1234"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown mobile, got %v", err)
	}
}

func TestLoginAdmin(t *testing.T) {
	svc := NewService(testConfig(), nil)

	token, err := svc.LoginAdmin("admin", "a123")
	if err != nil {
		t.Fatalf("admin login: %v", err)
	}
	_, role, err := VerifyToken(token.AccessToken, "test-secret")
	if err != nil {
		t.Fatalf("verify admin token: %v", err)
	}
	if role != RoleAdmin {
		t.Fatalf("expected admin role, got %s", role)
	}

	if _, err := svc.LoginAdmin("admin", "wrong"); !errors.Is(err, ErrInvalidAdminCredentials) {
		t.Fatalf("expected ErrInvalidAdminCredentials, got %v", err)
	}
	if _, err := svc.LoginAdmin("root", "a123"); !errors.Is(err, ErrInvalidAdminCredentials) {
		t.Fatalf("expected ErrInvalidAdminCredentials, got %v", err)
	}
}

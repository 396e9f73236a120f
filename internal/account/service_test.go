package account

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func testInput(mobile string) CreateInput {
	return CreateInput{
		Name:       "kavi",
		Mobile:     mobile,
		Address:    "123 Main Street",
		DOB:        time.Date(1990, time.January, 15, 0, 0, 0, 0, time.UTC),
		NationalID: "123456789012",
		PIN:        "1234",
	}
}

func TestCreateAndFetch(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	acct, err := svc.Create(ctx, testInput("1234567890"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if len(acct.AccountNumber) != 8 {
		t.Fatalf("expected 8-digit account number, got %q", acct.AccountNumber)
	}
	if acct.AccountNumber[0] == '0' {
		t.Fatalf("account number must not start with zero, got %q", acct.AccountNumber)
	}
	if !acct.Balance.IsZero() || !acct.WalletBalance.IsZero() {
		t.Fatalf("new account must start with zero balances, got %s/%s", acct.Balance, acct.WalletBalance)
	}

	if err := VerifyPIN(acct, "1234"); err != nil {
		t.Fatalf("correct PIN rejected: %v", err)
	}
	if err := VerifyPIN(acct, "9999"); !errors.Is(err, ErrInvalidPin) {
		t.Fatalf("expected ErrInvalidPin for wrong PIN, got %v", err)
	}
	if err := VerifyPIN(acct, ""); !errors.Is(err, ErrInvalidPin) {
		t.Fatalf("expected ErrInvalidPin for missing PIN, got %v", err)
	}

	byMobile, err := svc.GetByMobile(ctx, "1234567890")
	if err != nil {
		t.Fatalf("get by mobile: %v", err)
	}
	if byMobile.AccountNumber != acct.AccountNumber {
		t.Fatalf("mobile lookup returned %s, want %s", byMobile.AccountNumber, acct.AccountNumber)
	}

	if _, err := svc.GetByNumber(ctx, "00000000"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCreateDuplicateMobile(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	if _, err := svc.Create(ctx, testInput("1234567890")); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if _, err := svc.Create(ctx, testInput("1234567890")); !errors.Is(err, ErrDuplicateMobile) {
		t.Fatalf("expected ErrDuplicateMobile, got %v", err)
	}
}

func TestCreateDefaultsPIN(t *testing.T) {
	svc := NewService(NewMemoryRepository())

	input := testInput("5551234567")
	input.PIN = ""
	acct, err := svc.Create(context.Background(), input)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := VerifyPIN(acct, "0000"); err != nil {
		t.Fatalf("default PIN should verify: %v", err)
	}
}

func TestCreateRejectsMalformedPIN(t *testing.T) {
	svc := NewService(NewMemoryRepository())

	for _, pin := range []string{"12", "12345", "12a4"} {
		input := testInput("5550001111")
		input.PIN = pin
		if _, err := svc.Create(context.Background(), input); !errors.Is(err, ErrInvalidPin) {
			t.Fatalf("pin %q: expected ErrInvalidPin, got %v", pin, err)
		}
	}
}

func TestUpdateProfile(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	acct, err := svc.Create(ctx, testInput("1234567890"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	address := "456 Oak Avenue"
	pin := "4321"
	updated, err := svc.UpdateProfile(ctx, acct.AccountNumber, ProfilePatch{Address: &address, PIN: &pin})
	if err != nil {
		t.Fatalf("update profile: %v", err)
	}
	if updated.Address != address {
		t.Fatalf("address not updated, got %q", updated.Address)
	}
	if err := VerifyPIN(updated, "4321"); err != nil {
		t.Fatalf("new PIN should verify: %v", err)
	}
	if err := VerifyPIN(updated, "1234"); !errors.Is(err, ErrInvalidPin) {
		t.Fatalf("old PIN must stop working, got %v", err)
	}

	bad := "12ab"
	if _, err := svc.UpdateProfile(ctx, acct.AccountNumber, ProfilePatch{PIN: &bad}); !errors.Is(err, ErrInvalidPin) {
		t.Fatalf("expected ErrInvalidPin for malformed PIN, got %v", err)
	}

	if _, err := svc.UpdateProfile(ctx, "00000000", ProfilePatch{Address: &address}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListAndStats(t *testing.T) {
	repo := NewMemoryRepository()
	svc := NewService(repo)
	ctx := context.Background()

	first := SeedTestAccount(t, repo, "12345678", "1234567890", "1234", decimal.RequireFromString("5000.00"), decimal.RequireFromString("500.00"))
	second := SeedTestAccount(t, repo, "87654321", "9876543210", "5678", decimal.RequireFromString("7500.00"), decimal.RequireFromString("750.00"))

	accounts, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(accounts) != 2 {
		t.Fatalf("expected 2 accounts, got %d", len(accounts))
	}
	if accounts[0].AccountNumber != first.AccountNumber || accounts[1].AccountNumber != second.AccountNumber {
		t.Fatalf("list not in creation order: %s, %s", accounts[0].AccountNumber, accounts[1].AccountNumber)
	}

	stats, err := svc.Stats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.TotalAccounts != 2 {
		t.Fatalf("expected 2 customers, got %d", stats.TotalAccounts)
	}
	if !stats.TotalBankBalance.Equal(decimal.RequireFromString("12500.00")) {
		t.Fatalf("expected total bank balance 12500.00, got %s", stats.TotalBankBalance)
	}
	if !stats.TotalWalletBalance.Equal(decimal.RequireFromString("1250.00")) {
		t.Fatalf("expected total wallet balance 1250.00, got %s", stats.TotalWalletBalance)
	}
}

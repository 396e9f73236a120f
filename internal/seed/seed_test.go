package seed

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/ebank/ebank/internal/account"
	"github.com/ebank/ebank/internal/logging"
)

func TestDemoSeedsEmptyStoreOnce(t *testing.T) {
	repo := account.NewMemoryRepository()
	ctx := context.Background()
	logger := logging.Discard()

	if err := Demo(ctx, repo, logger); err != nil {
		t.Fatalf("seed: %v", err)
	}

	accounts, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(accounts) != 3 {
		t.Fatalf("expected 3 demo accounts, got %d", len(accounts))
	}

	kavi, err := repo.FindByNumber(ctx, "12345678")
	if err != nil {
		t.Fatalf("find kavi: %v", err)
	}
	if kavi.Name != "kavi" || kavi.Mobile != "1234567890" {
		t.Fatalf("unexpected demo account: %+v", kavi)
	}
	if !kavi.Balance.Equal(decimal.RequireFromString("5000.00")) || !kavi.WalletBalance.Equal(decimal.RequireFromString("500.00")) {
		t.Fatalf("unexpected opening balances: %s/%s", kavi.Balance, kavi.WalletBalance)
	}
	if err := account.VerifyPIN(kavi, "1234"); err != nil {
		t.Fatalf("demo PIN should verify: %v", err)
	}

	// Second run is a no-op against a populated store.
	if err := Demo(ctx, repo, logger); err != nil {
		t.Fatalf("reseed: %v", err)
	}
	accounts, err = repo.List(ctx)
	if err != nil {
		t.Fatalf("list after reseed: %v", err)
	}
	if len(accounts) != 3 {
		t.Fatalf("reseed must not duplicate accounts, got %d", len(accounts))
	}
}

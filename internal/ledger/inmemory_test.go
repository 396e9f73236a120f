package ledger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ebank/ebank/internal/account"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestInMemoryCreditRejectsNonPositive(t *testing.T) {
	repo := account.NewMemoryRepository()
	store := NewInMemory(repo)
	ctx := context.Background()

	account.SeedTestAccount(t, repo, "12345678", "1234567890", "1234", dec("100.00"), dec("0.00"))

	for _, amount := range []string{"0", "-10.00"} {
		if _, err := store.Credit(ctx, "12345678", dec(amount), TypeDeposit); !errors.Is(err, ErrInvalidAmount) {
			t.Fatalf("amount %s: expected ErrInvalidAmount, got %v", amount, err)
		}
	}
}

func TestInMemoryWithdrawInsufficientLeavesBalancesUnchanged(t *testing.T) {
	repo := account.NewMemoryRepository()
	store := NewInMemory(repo)
	ctx := context.Background()

	account.SeedTestAccount(t, repo, "12345678", "1234567890", "1234", dec("100.00"), dec("50.00"))

	if _, err := store.WithdrawToWallet(ctx, "12345678", dec("150.00")); !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}

	acct, err := repo.FindByNumber(ctx, "12345678")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if !acct.Balance.Equal(dec("100.00")) || !acct.WalletBalance.Equal(dec("50.00")) {
		t.Fatalf("balances changed after failed withdrawal: %s/%s", acct.Balance, acct.WalletBalance)
	}

	entries, err := store.List(ctx, Filter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("failed operation must not append a transaction, got %d", len(entries))
	}
}

func TestInMemoryTransferConservesTotal(t *testing.T) {
	repo := account.NewMemoryRepository()
	store := NewInMemory(repo)
	ctx := context.Background()

	account.SeedTestAccount(t, repo, "12345678", "1234567890", "1234", dec("800.00"), dec("0.00"))
	account.SeedTestAccount(t, repo, "87654321", "9876543210", "5678", dec("200.00"), dec("0.00"))

	entry, err := store.Transfer(ctx, "12345678", "87654321", dec("300.00"))
	if err != nil {
		t.Fatalf("transfer: %v", err)
	}
	if entry.FromAccount != "12345678" || entry.ToAccount != "87654321" {
		t.Fatalf("entry references wrong accounts: %+v", entry)
	}

	from, _ := repo.FindByNumber(ctx, "12345678")
	to, _ := repo.FindByNumber(ctx, "87654321")
	if !from.Balance.Equal(dec("500.00")) || !to.Balance.Equal(dec("500.00")) {
		t.Fatalf("unexpected balances: %s/%s", from.Balance, to.Balance)
	}
	if !from.Balance.Add(to.Balance).Equal(dec("1000.00")) {
		t.Fatalf("transfer did not conserve total: %s", from.Balance.Add(to.Balance))
	}
}

func TestInMemoryTransferSameAccountRejected(t *testing.T) {
	repo := account.NewMemoryRepository()
	store := NewInMemory(repo)
	ctx := context.Background()

	account.SeedTestAccount(t, repo, "12345678", "1234567890", "1234", dec("100.00"), dec("0.00"))

	if _, err := store.Transfer(ctx, "12345678", "12345678", dec("40.00")); !errors.Is(err, ErrSameAccount) {
		t.Fatalf("expected ErrSameAccount, got %v", err)
	}

	acct, err := repo.FindByNumber(ctx, "12345678")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if !acct.Balance.Equal(dec("100.00")) {
		t.Fatalf("balance changed after rejected self-transfer: %s", acct.Balance)
	}

	entries, err := store.List(ctx, Filter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("rejected self-transfer must not append a transaction, got %d", len(entries))
	}
}

func TestInMemoryWalletPay(t *testing.T) {
	repo := account.NewMemoryRepository()
	store := NewInMemory(repo)
	ctx := context.Background()

	account.SeedTestAccount(t, repo, "12345678", "1234567890", "1234", dec("100.00"), dec("50.00"))

	entry, err := store.WalletPay(ctx, "12345678", "corner store", dec("20.00"))
	if err != nil {
		t.Fatalf("wallet pay: %v", err)
	}
	if entry.Merchant != "corner store" || entry.ToAccount != "" {
		t.Fatalf("unexpected entry: %+v", entry)
	}

	acct, _ := repo.FindByNumber(ctx, "12345678")
	if !acct.WalletBalance.Equal(dec("30.00")) || !acct.Balance.Equal(dec("100.00")) {
		t.Fatalf("unexpected balances after wallet pay: %s/%s", acct.Balance, acct.WalletBalance)
	}

	if _, err := store.WalletPay(ctx, "12345678", "corner store", dec("31.00")); !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}
}

func TestInMemoryUnknownAccount(t *testing.T) {
	store := NewInMemory(account.NewMemoryRepository())
	ctx := context.Background()

	if _, err := store.Credit(ctx, "99999999", dec("10.00"), TypeDeposit); !errors.Is(err, account.ErrNotFound) {
		t.Fatalf("expected account.ErrNotFound, got %v", err)
	}
}

func TestInMemoryListFilterAndOrder(t *testing.T) {
	repo := account.NewMemoryRepository()
	store := NewInMemory(repo)
	ctx := context.Background()

	day := func(d int, hour int) time.Time {
		return time.Date(2024, time.June, d, hour, 0, 0, 0, time.UTC)
	}

	SeedEntry(t, store, Entry{ID: "a", CreatedAt: day(1, 9), Type: TypeDeposit, Amount: dec("10.00"), ToAccount: "12345678"})
	SeedEntry(t, store, Entry{ID: "b", CreatedAt: day(2, 0), Type: TypeTransfer, Amount: dec("20.00"), FromAccount: "12345678", ToAccount: "87654321"})
	SeedEntry(t, store, Entry{ID: "c", CreatedAt: day(2, 23), Type: TypeWalletPay, Amount: dec("5.00"), FromAccount: "87654321", Merchant: "kiosk"})
	SeedEntry(t, store, Entry{ID: "d", CreatedAt: day(4, 12), Type: TypeAdminDeposit, Amount: dec("30.00"), ToAccount: "87654321"})

	// Inclusive calendar-day range picks up both edges of June 2.
	entries, err := store.List(ctx, Filter{StartDate: day(2, 0), EndDate: day(2, 0)})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 2 || entries[0].ID != "c" || entries[1].ID != "b" {
		t.Fatalf("expected [c b], got %+v", entries)
	}

	// Account filter matches source or destination.
	entries, err = store.List(ctx, Filter{AccountNumber: "12345678"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 2 || entries[0].ID != "b" || entries[1].ID != "a" {
		t.Fatalf("expected [b a], got %+v", entries)
	}

	// Unfiltered listing is newest first.
	entries, err = store.List(ctx, Filter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 4 || entries[0].ID != "d" || entries[3].ID != "a" {
		t.Fatalf("expected newest first, got %+v", entries)
	}
}

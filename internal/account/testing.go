package account

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

// SeedTestAccount inserts an account with preset balances, bypassing the
// creation flow. Opening balances seeded this way predate the transaction log.
func SeedTestAccount(tb testing.TB, repo Repository, number, mobile, pin string, balance, walletBalance decimal.Decimal) Account {
	tb.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.MinCost)
	if err != nil {
		tb.Fatalf("hash pin: %v", err)
	}

	acct := Account{
		ID:            uuid.New().String(),
		Name:          "test-" + number,
		Mobile:        mobile,
		Address:       "1 Test Street",
		DOB:           time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
		NationalID:    "000000000000",
		AccountNumber: number,
		PINHash:       hash,
		Balance:       balance,
		WalletBalance: walletBalance,
		CreatedAt:     time.Now().UTC(),
	}

	if err := repo.Create(context.Background(), acct); err != nil {
		tb.Fatalf("seed account %s: %v", number, err)
	}
	return acct
}

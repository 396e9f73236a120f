package seed

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/ebank/ebank/internal/account"
)

type demoAccount struct {
	name          string
	mobile        string
	address       string
	dob           time.Time
	nationalID    string
	accountNumber string
	pin           string
	balance       string
	walletBalance string
}

var demoAccounts = []demoAccount{
	{
		name:          "kavi",
		mobile:        "1234567890",
		address:       "123 Main Street, New York, NY 10001",
		dob:           time.Date(1990, time.January, 15, 0, 0, 0, 0, time.UTC),
		nationalID:    "123456789012",
		accountNumber: "12345678",
		pin:           "1234",
		balance:       "5000.00",
		walletBalance: "500.00",
	},
	{
		name:          "arun",
		mobile:        "9876543210",
		address:       "456 Oak Avenue, Los Angeles, CA 90210",
		dob:           time.Date(1985, time.March, 22, 0, 0, 0, 0, time.UTC),
		nationalID:    "987654321098",
		accountNumber: "87654321",
		pin:           "5678",
		balance:       "7500.00",
		walletBalance: "750.00",
	},
	{
		name:          "gokul",
		mobile:        "5551234567",
		address:       "789 Pine Road, Chicago, IL 60601",
		dob:           time.Date(1992, time.July, 8, 0, 0, 0, 0, time.UTC),
		nationalID:    "456789123456",
		accountNumber: "45678912",
		pin:           "9876",
		balance:       "3200.00",
		walletBalance: "320.00",
	},
}

// Demo inserts the demo accounts when the store is empty and is a no-op
// otherwise. It runs as a deployment-side bootstrap step, not as part of the
// ledger engine: the seeded opening balances predate the transaction log.
func Demo(ctx context.Context, repo account.Repository, logger *slog.Logger) error {
	existing, err := repo.List(ctx)
	if err != nil {
		return fmt.Errorf("check existing accounts: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	for _, d := range demoAccounts {
		hash, err := bcrypt.GenerateFromPassword([]byte(d.pin), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hash demo pin: %w", err)
		}
		balance, err := decimal.NewFromString(d.balance)
		if err != nil {
			return err
		}
		walletBalance, err := decimal.NewFromString(d.walletBalance)
		if err != nil {
			return err
		}

		acct := account.Account{
			ID:            uuid.New().String(),
			Name:          d.name,
			Mobile:        d.mobile,
			Address:       d.address,
			DOB:           d.dob,
			NationalID:    d.nationalID,
			AccountNumber: d.accountNumber,
			PINHash:       hash,
			Balance:       balance,
			WalletBalance: walletBalance,
			CreatedAt:     time.Now().UTC(),
		}
		if err := repo.Create(ctx, acct); err != nil {
			return fmt.Errorf("seed account %s: %w", d.accountNumber, err)
		}
		logger.Info("seeded demo account", "account_number", d.accountNumber, "name", d.name)
	}
	return nil
}

package account

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account represents a customer bank account with its auxiliary wallet balance.
type Account struct {
	ID            string
	Name          string
	Mobile        string
	Address       string
	DOB           time.Time
	NationalID    string
	AccountNumber string
	PINHash       []byte
	Balance       decimal.Decimal
	WalletBalance decimal.Decimal
	CreatedAt     time.Time
}

// Stats aggregates totals across all accounts.
type Stats struct {
	TotalAccounts      int64
	TotalBankBalance   decimal.Decimal
	TotalWalletBalance decimal.Decimal
}

// ProfilePatch carries the mutable profile fields. Nil means leave unchanged.
type ProfilePatch struct {
	Address *string
	PIN     *string
}

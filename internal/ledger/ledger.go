package ledger

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrInsufficientFunds occurs when the debited balance cannot cover the
	// requested amount.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrInvalidAmount occurs when a movement amount is zero or negative.
	ErrInvalidAmount = errors.New("amount must be positive")

	// ErrSameAccount occurs when a transfer names the same account on both sides.
	ErrSameAccount = errors.New("cannot transfer to same account")

	// ErrMerchantRequired occurs when a wallet payment carries no merchant label.
	ErrMerchantRequired = errors.New("merchant is required")

	// ErrConflict indicates the operation lost a lock or serialization race.
	// It is the only failure callers may retry.
	ErrConflict = errors.New("conflicting concurrent operation, retry")
)

// Type tags a transaction row with the operation that produced it.
type Type string

const (
	TypeDeposit          Type = "deposit"
	TypeWithdrawToWallet Type = "withdrawal-to-wallet"
	TypeTransfer         Type = "transfer"
	TypeWalletPay        Type = "wallet-payment"
	TypeAdminDeposit     Type = "admin-deposit"
)

// Entry is an immutable transaction record. FromAccount/ToAccount hold
// account numbers; at least one is always set.
type Entry struct {
	ID          string
	CreatedAt   time.Time
	Type        Type
	Amount      decimal.Decimal
	FromAccount string
	ToAccount   string
	Merchant    string
}

// Filter narrows a transaction history query. Zero-value dates are unbounded;
// set dates bound the creation timestamp to the inclusive calendar-day range.
type Filter struct {
	AccountNumber string
	StartDate     time.Time
	EndDate       time.Time
}

// Store is the atomic backend behind the ledger engine. Every mutating call
// applies its balance delta(s) and appends the explaining transaction row as
// one unit: either both are durably committed or neither is. Concurrent calls
// touching the same account are serialized against each other.
type Store interface {
	Credit(ctx context.Context, accountNumber string, amount decimal.Decimal, typ Type) (Entry, error)
	WithdrawToWallet(ctx context.Context, accountNumber string, amount decimal.Decimal) (Entry, error)
	Transfer(ctx context.Context, fromNumber, toNumber string, amount decimal.Decimal) (Entry, error)
	WalletPay(ctx context.Context, accountNumber, merchant string, amount decimal.Decimal) (Entry, error)
	List(ctx context.Context, f Filter) ([]Entry, error)
}

func dayStart(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location())
}

func dayEnd(d time.Time) time.Time {
	return dayStart(d).Add(24*time.Hour - time.Millisecond)
}

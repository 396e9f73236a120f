package ledger

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ebank/ebank/internal/account"
)

// inMemoryStore serializes every mutation behind a single mutex, which makes
// each operation trivially equivalent to a serial schedule. Useful for unit
// tests; the Postgres store is the durable backend.
type inMemoryStore struct {
	mu       sync.Mutex
	accounts account.Repository
	entries  []Entry
}

// NewInMemory creates a concurrency-safe in-memory ledger store over the
// given account repository.
func NewInMemory(accounts account.Repository) Store {
	return &inMemoryStore{accounts: accounts}
}

func (s *inMemoryStore) Credit(ctx context.Context, accountNumber string, amount decimal.Decimal, typ Type) (Entry, error) {
	if amount.Sign() <= 0 {
		return Entry{}, ErrInvalidAmount
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	acct, err := s.accounts.FindByNumber(ctx, accountNumber)
	if err != nil {
		return Entry{}, err
	}
	if err := s.accounts.UpdateBalances(ctx, accountNumber, acct.Balance.Add(amount), acct.WalletBalance); err != nil {
		return Entry{}, err
	}
	return s.append(Entry{Type: typ, Amount: amount, ToAccount: accountNumber}), nil
}

func (s *inMemoryStore) WithdrawToWallet(ctx context.Context, accountNumber string, amount decimal.Decimal) (Entry, error) {
	if amount.Sign() <= 0 {
		return Entry{}, ErrInvalidAmount
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	acct, err := s.accounts.FindByNumber(ctx, accountNumber)
	if err != nil {
		return Entry{}, err
	}
	if acct.Balance.LessThan(amount) {
		return Entry{}, ErrInsufficientFunds
	}
	if err := s.accounts.UpdateBalances(ctx, accountNumber, acct.Balance.Sub(amount), acct.WalletBalance.Add(amount)); err != nil {
		return Entry{}, err
	}
	return s.append(Entry{Type: TypeWithdrawToWallet, Amount: amount, FromAccount: accountNumber}), nil
}

func (s *inMemoryStore) Transfer(ctx context.Context, fromNumber, toNumber string, amount decimal.Decimal) (Entry, error) {
	if amount.Sign() <= 0 {
		return Entry{}, ErrInvalidAmount
	}
	if fromNumber == toNumber {
		return Entry{}, ErrSameAccount
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	from, err := s.accounts.FindByNumber(ctx, fromNumber)
	if err != nil {
		return Entry{}, err
	}
	to, err := s.accounts.FindByNumber(ctx, toNumber)
	if err != nil {
		return Entry{}, err
	}
	if from.Balance.LessThan(amount) {
		return Entry{}, ErrInsufficientFunds
	}
	if err := s.accounts.UpdateBalances(ctx, fromNumber, from.Balance.Sub(amount), from.WalletBalance); err != nil {
		return Entry{}, err
	}
	if err := s.accounts.UpdateBalances(ctx, toNumber, to.Balance.Add(amount), to.WalletBalance); err != nil {
		return Entry{}, err
	}
	return s.append(Entry{Type: TypeTransfer, Amount: amount, FromAccount: fromNumber, ToAccount: toNumber}), nil
}

func (s *inMemoryStore) WalletPay(ctx context.Context, accountNumber, merchant string, amount decimal.Decimal) (Entry, error) {
	if amount.Sign() <= 0 {
		return Entry{}, ErrInvalidAmount
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	acct, err := s.accounts.FindByNumber(ctx, accountNumber)
	if err != nil {
		return Entry{}, err
	}
	if acct.WalletBalance.LessThan(amount) {
		return Entry{}, ErrInsufficientFunds
	}
	if err := s.accounts.UpdateBalances(ctx, accountNumber, acct.Balance, acct.WalletBalance.Sub(amount)); err != nil {
		return Entry{}, err
	}
	return s.append(Entry{Type: TypeWalletPay, Amount: amount, FromAccount: accountNumber, Merchant: merchant}), nil
}

func (s *inMemoryStore) List(_ context.Context, f Filter) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []Entry
	// Entries are appended in timestamp order, so reverse iteration yields
	// newest first.
	for i := len(s.entries) - 1; i >= 0; i-- {
		e := s.entries[i]
		if f.AccountNumber != "" && e.FromAccount != f.AccountNumber && e.ToAccount != f.AccountNumber {
			continue
		}
		if !f.StartDate.IsZero() && e.CreatedAt.Before(dayStart(f.StartDate)) {
			continue
		}
		if !f.EndDate.IsZero() && e.CreatedAt.After(dayEnd(f.EndDate)) {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (s *inMemoryStore) append(e Entry) Entry {
	e.ID = uuid.New().String()
	e.CreatedAt = time.Now().UTC()
	s.entries = append(s.entries, e)
	return e
}

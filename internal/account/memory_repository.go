package account

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"
)

type memoryRepository struct {
	mu       sync.RWMutex
	byNumber map[string]Account
	byMobile map[string]string
	order    []string
}

// NewMemoryRepository builds an in-memory account store for testing.
func NewMemoryRepository() Repository {
	return &memoryRepository{
		byNumber: make(map[string]Account),
		byMobile: make(map[string]string),
	}
}

func (r *memoryRepository) Create(_ context.Context, acct Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byMobile[acct.Mobile]; exists {
		return ErrDuplicateMobile
	}
	if _, exists := r.byNumber[acct.AccountNumber]; exists {
		return ErrNumberTaken
	}
	r.byNumber[acct.AccountNumber] = acct
	r.byMobile[acct.Mobile] = acct.AccountNumber
	r.order = append(r.order, acct.AccountNumber)
	return nil
}

func (r *memoryRepository) FindByNumber(_ context.Context, number string) (Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	acct, ok := r.byNumber[number]
	if !ok {
		return Account{}, ErrNotFound
	}
	return acct, nil
}

func (r *memoryRepository) FindByMobile(_ context.Context, mobile string) (Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	number, ok := r.byMobile[mobile]
	if !ok {
		return Account{}, ErrNotFound
	}
	return r.byNumber[number], nil
}

func (r *memoryRepository) UpdateProfile(_ context.Context, number string, address *string, pinHash []byte) (Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	acct, ok := r.byNumber[number]
	if !ok {
		return Account{}, ErrNotFound
	}
	if address != nil {
		acct.Address = *address
	}
	if pinHash != nil {
		acct.PINHash = pinHash
	}
	r.byNumber[number] = acct
	return acct, nil
}

func (r *memoryRepository) UpdateBalances(_ context.Context, number string, balance, walletBalance decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	acct, ok := r.byNumber[number]
	if !ok {
		return ErrNotFound
	}
	acct.Balance = balance
	acct.WalletBalance = walletBalance
	r.byNumber[number] = acct
	return nil
}

func (r *memoryRepository) List(_ context.Context) ([]Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	accounts := make([]Account, 0, len(r.order))
	for _, number := range r.order {
		accounts = append(accounts, r.byNumber[number])
	}
	return accounts, nil
}

func (r *memoryRepository) Stats(_ context.Context) (Stats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	stats := Stats{
		TotalAccounts:      int64(len(r.byNumber)),
		TotalBankBalance:   decimal.Zero,
		TotalWalletBalance: decimal.Zero,
	}
	for _, acct := range r.byNumber {
		stats.TotalBankBalance = stats.TotalBankBalance.Add(acct.Balance)
		stats.TotalWalletBalance = stats.TotalWalletBalance.Add(acct.WalletBalance)
	}
	return stats, nil
}

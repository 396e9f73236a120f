package ledger

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ebank/ebank/internal/account"
)

// Service is the ledger engine. It validates preconditions (PIN, amount,
// distinct accounts) before handing the balance mutation and transaction
// append to the store as one atomic unit.
type Service struct {
	store    Store
	accounts *account.Service
}

// NewService builds a ledger service over the given store and account service.
func NewService(store Store, accounts *account.Service) *Service {
	return &Service{store: store, accounts: accounts}
}

// DepositInput captures a customer deposit. The PIN is always verified; the
// PIN-less deposit path is AdminDeposit.
type DepositInput struct {
	AccountNumber string
	PIN           string
	Amount        decimal.Decimal
}

// Deposit credits the bank balance of the target account.
func (s *Service) Deposit(ctx context.Context, input DepositInput) (Entry, error) {
	if input.Amount.Sign() <= 0 {
		return Entry{}, ErrInvalidAmount
	}
	acct, err := s.accounts.GetByNumber(ctx, input.AccountNumber)
	if err != nil {
		return Entry{}, err
	}
	if err := account.VerifyPIN(acct, input.PIN); err != nil {
		return Entry{}, err
	}
	return s.store.Credit(ctx, input.AccountNumber, input.Amount, TypeDeposit)
}

// AdminDeposit credits an account on behalf of a trusted administrative
// caller. The route carrying it is admin-gated; no PIN is checked here.
func (s *Service) AdminDeposit(ctx context.Context, accountNumber string, amount decimal.Decimal) (Entry, error) {
	if amount.Sign() <= 0 {
		return Entry{}, ErrInvalidAmount
	}
	if _, err := s.accounts.GetByNumber(ctx, accountNumber); err != nil {
		return Entry{}, err
	}
	return s.store.Credit(ctx, accountNumber, amount, TypeAdminDeposit)
}

// WithdrawInput captures a bank-to-wallet withdrawal.
type WithdrawInput struct {
	AccountNumber string
	PIN           string
	Amount        decimal.Decimal
}

// WithdrawToWallet moves funds from the bank balance into the wallet balance.
func (s *Service) WithdrawToWallet(ctx context.Context, input WithdrawInput) (Entry, error) {
	if input.Amount.Sign() <= 0 {
		return Entry{}, ErrInvalidAmount
	}
	acct, err := s.accounts.GetByNumber(ctx, input.AccountNumber)
	if err != nil {
		return Entry{}, err
	}
	if err := account.VerifyPIN(acct, input.PIN); err != nil {
		return Entry{}, err
	}
	return s.store.WithdrawToWallet(ctx, input.AccountNumber, input.Amount)
}

// TransferInput captures a bank-balance transfer between two accounts.
type TransferInput struct {
	FromAccountNumber string
	ToAccountNumber   string
	PIN               string
	Amount            decimal.Decimal
}

// Transfer moves funds between the bank balances of two distinct accounts.
// The PIN is validated against the source account only.
func (s *Service) Transfer(ctx context.Context, input TransferInput) (Entry, error) {
	if input.Amount.Sign() <= 0 {
		return Entry{}, ErrInvalidAmount
	}
	if input.FromAccountNumber == input.ToAccountNumber {
		return Entry{}, ErrSameAccount
	}
	from, err := s.accounts.GetByNumber(ctx, input.FromAccountNumber)
	if err != nil {
		return Entry{}, err
	}
	if err := account.VerifyPIN(from, input.PIN); err != nil {
		return Entry{}, err
	}
	if _, err := s.accounts.GetByNumber(ctx, input.ToAccountNumber); err != nil {
		return Entry{}, err
	}
	return s.store.Transfer(ctx, input.FromAccountNumber, input.ToAccountNumber, input.Amount)
}

// WalletPayInput captures a merchant payment from the wallet balance.
type WalletPayInput struct {
	AccountNumber string
	Merchant      string
	Amount        decimal.Decimal
}

// WalletPay deducts a merchant payment from the wallet balance. No PIN by
// design: wallet payments are the low-friction path, capped by whatever the
// holder chose to move into the wallet.
func (s *Service) WalletPay(ctx context.Context, input WalletPayInput) (Entry, error) {
	if input.Amount.Sign() <= 0 {
		return Entry{}, ErrInvalidAmount
	}
	if strings.TrimSpace(input.Merchant) == "" {
		return Entry{}, ErrMerchantRequired
	}
	if _, err := s.accounts.GetByNumber(ctx, input.AccountNumber); err != nil {
		return Entry{}, err
	}
	return s.store.WalletPay(ctx, input.AccountNumber, input.Merchant, input.Amount)
}

// ListTransactions returns filtered history, newest first. Filtering by an
// unknown account number fails with account.ErrNotFound.
func (s *Service) ListTransactions(ctx context.Context, f Filter) ([]Entry, error) {
	if f.AccountNumber != "" {
		if _, err := s.accounts.GetByNumber(ctx, f.AccountNumber); err != nil {
			return nil, err
		}
	}
	return s.store.List(ctx, f)
}

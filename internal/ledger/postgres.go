package ledger

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/ebank/ebank/internal/account"
)

// PostgresStore persists balance mutations and their transaction rows in a
// single database transaction per operation. Touched account rows are locked
// with SELECT ... FOR UPDATE; lock waits are bounded by lock_timeout and
// surface as ErrConflict.
type PostgresStore struct {
	db *pgxpool.Pool
}

// NewPostgresStore constructs a Postgres-backed ledger store.
func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

const lockTimeout = `SET LOCAL lock_timeout = '2s'`

type lockedAccount struct {
	id            uuid.UUID
	balance       decimal.Decimal
	walletBalance decimal.Decimal
}

// Credit adds amount to the bank balance and appends a credit-typed row.
// Covers both customer deposits and admin deposits.
func (s *PostgresStore) Credit(ctx context.Context, accountNumber string, amount decimal.Decimal, typ Type) (Entry, error) {
	if amount.Sign() <= 0 {
		return Entry{}, ErrInvalidAmount
	}

	tx, err := s.begin(ctx)
	if err != nil {
		return Entry{}, err
	}
	defer tx.Rollback(ctx) // nolint:errcheck

	acct, err := lockAccount(ctx, tx, accountNumber)
	if err != nil {
		return Entry{}, err
	}

	if err := setBalances(ctx, tx, acct.id, acct.balance.Add(amount), acct.walletBalance); err != nil {
		return Entry{}, err
	}

	entry := Entry{Type: typ, Amount: amount, ToAccount: accountNumber}
	if entry, err = insertEntry(ctx, tx, entry, nil, &acct.id); err != nil {
		return Entry{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return Entry{}, mapPgErr(err)
	}
	return entry, nil
}

// WithdrawToWallet moves amount from the bank balance into the wallet balance.
func (s *PostgresStore) WithdrawToWallet(ctx context.Context, accountNumber string, amount decimal.Decimal) (Entry, error) {
	if amount.Sign() <= 0 {
		return Entry{}, ErrInvalidAmount
	}

	tx, err := s.begin(ctx)
	if err != nil {
		return Entry{}, err
	}
	defer tx.Rollback(ctx) // nolint:errcheck

	acct, err := lockAccount(ctx, tx, accountNumber)
	if err != nil {
		return Entry{}, err
	}
	if acct.balance.LessThan(amount) {
		return Entry{}, ErrInsufficientFunds
	}

	if err := setBalances(ctx, tx, acct.id, acct.balance.Sub(amount), acct.walletBalance.Add(amount)); err != nil {
		return Entry{}, err
	}

	entry := Entry{Type: TypeWithdrawToWallet, Amount: amount, FromAccount: accountNumber}
	if entry, err = insertEntry(ctx, tx, entry, &acct.id, nil); err != nil {
		return Entry{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return Entry{}, mapPgErr(err)
	}
	return entry, nil
}

// Transfer moves amount between the bank balances of two accounts. Both rows
// are locked in ascending account-number order so two opposing transfers
// cannot deadlock each other.
func (s *PostgresStore) Transfer(ctx context.Context, fromNumber, toNumber string, amount decimal.Decimal) (Entry, error) {
	if amount.Sign() <= 0 {
		return Entry{}, ErrInvalidAmount
	}
	if fromNumber == toNumber {
		return Entry{}, ErrSameAccount
	}

	tx, err := s.begin(ctx)
	if err != nil {
		return Entry{}, err
	}
	defer tx.Rollback(ctx) // nolint:errcheck

	first, second := fromNumber, toNumber
	if second < first {
		first, second = second, first
	}

	locked := make(map[string]lockedAccount, 2)
	for _, number := range []string{first, second} {
		acct, err := lockAccount(ctx, tx, number)
		if err != nil {
			return Entry{}, err
		}
		locked[number] = acct
	}

	from, to := locked[fromNumber], locked[toNumber]
	if from.balance.LessThan(amount) {
		return Entry{}, ErrInsufficientFunds
	}

	if err := setBalances(ctx, tx, from.id, from.balance.Sub(amount), from.walletBalance); err != nil {
		return Entry{}, err
	}
	if err := setBalances(ctx, tx, to.id, to.balance.Add(amount), to.walletBalance); err != nil {
		return Entry{}, err
	}

	entry := Entry{Type: TypeTransfer, Amount: amount, FromAccount: fromNumber, ToAccount: toNumber}
	if entry, err = insertEntry(ctx, tx, entry, &from.id, &to.id); err != nil {
		return Entry{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return Entry{}, mapPgErr(err)
	}
	return entry, nil
}

// WalletPay deducts amount from the wallet balance for a merchant payment.
func (s *PostgresStore) WalletPay(ctx context.Context, accountNumber, merchant string, amount decimal.Decimal) (Entry, error) {
	if amount.Sign() <= 0 {
		return Entry{}, ErrInvalidAmount
	}

	tx, err := s.begin(ctx)
	if err != nil {
		return Entry{}, err
	}
	defer tx.Rollback(ctx) // nolint:errcheck

	acct, err := lockAccount(ctx, tx, accountNumber)
	if err != nil {
		return Entry{}, err
	}
	if acct.walletBalance.LessThan(amount) {
		return Entry{}, ErrInsufficientFunds
	}

	if err := setBalances(ctx, tx, acct.id, acct.balance, acct.walletBalance.Sub(amount)); err != nil {
		return Entry{}, err
	}

	entry := Entry{Type: TypeWalletPay, Amount: amount, FromAccount: accountNumber, Merchant: merchant}
	if entry, err = insertEntry(ctx, tx, entry, &acct.id, nil); err != nil {
		return Entry{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return Entry{}, mapPgErr(err)
	}
	return entry, nil
}

// List returns transaction history, newest first, optionally narrowed to one
// account and an inclusive calendar-day range.
func (s *PostgresStore) List(ctx context.Context, f Filter) ([]Entry, error) {
	var start, end *time.Time
	if !f.StartDate.IsZero() {
		v := dayStart(f.StartDate)
		start = &v
	}
	if !f.EndDate.IsZero() {
		v := dayEnd(f.EndDate)
		end = &v
	}

	const query = `
        SELECT t.id, t.created_at, t.type, t.amount, fa.account_number, ta.account_number, t.merchant
        FROM transactions t
        LEFT JOIN accounts fa ON fa.id = t.from_account_id
        LEFT JOIN accounts ta ON ta.id = t.to_account_id
        WHERE ($1 = '' OR fa.account_number = $1 OR ta.account_number = $1)
          AND ($2::timestamptz IS NULL OR t.created_at >= $2)
          AND ($3::timestamptz IS NULL OR t.created_at <= $3)
        ORDER BY t.created_at DESC, t.seq DESC`

	rows, err := s.db.Query(ctx, query, f.AccountNumber, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			id        uuid.UUID
			createdAt time.Time
			from      *string
			to        *string
			merchant  *string
			e         Entry
		)
		if err := rows.Scan(&id, &createdAt, &e.Type, &e.Amount, &from, &to, &merchant); err != nil {
			return nil, err
		}
		e.ID = id.String()
		e.CreatedAt = createdAt.UTC()
		if from != nil {
			e.FromAccount = *from
		}
		if to != nil {
			e.ToAccount = *to
		}
		if merchant != nil {
			e.Merchant = *merchant
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *PostgresStore) begin(ctx context.Context) (pgx.Tx, error) {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	if _, err := tx.Exec(ctx, lockTimeout); err != nil {
		tx.Rollback(ctx) // nolint:errcheck
		return nil, err
	}
	return tx, nil
}

func lockAccount(ctx context.Context, tx pgx.Tx, number string) (lockedAccount, error) {
	const query = `SELECT id, balance, wallet_balance FROM accounts WHERE account_number = $1 FOR UPDATE`
	var acct lockedAccount
	if err := tx.QueryRow(ctx, query, number).Scan(&acct.id, &acct.balance, &acct.walletBalance); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return lockedAccount{}, account.ErrNotFound
		}
		return lockedAccount{}, mapPgErr(err)
	}
	return acct, nil
}

func setBalances(ctx context.Context, tx pgx.Tx, id uuid.UUID, balance, walletBalance decimal.Decimal) error {
	_, err := tx.Exec(ctx, `UPDATE accounts SET balance = $2, wallet_balance = $3 WHERE id = $1`,
		id, balance, walletBalance)
	return mapPgErr(err)
}

func insertEntry(ctx context.Context, tx pgx.Tx, entry Entry, fromID, toID *uuid.UUID) (Entry, error) {
	id := uuid.New()
	var merchant *string
	if entry.Merchant != "" {
		merchant = &entry.Merchant
	}
	var createdAt time.Time
	err := tx.QueryRow(ctx, `INSERT INTO transactions (id, type, amount, from_account_id, to_account_id, merchant)
        VALUES ($1, $2, $3, $4, $5, $6) RETURNING created_at`,
		id, entry.Type, entry.Amount, fromID, toID, merchant).Scan(&createdAt)
	if err != nil {
		return Entry{}, mapPgErr(err)
	}
	entry.ID = id.String()
	entry.CreatedAt = createdAt.UTC()
	return entry, nil
}

// Lock waits exceeding lock_timeout (55P03) and serialization or deadlock
// failures (40001, 40P01) are retryable and map to ErrConflict.
func mapPgErr(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "55P03", "40001", "40P01":
			return ErrConflict
		}
	}
	return err
}

package account

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

var (
	// ErrNotFound occurs when no account matches the given identifier.
	ErrNotFound = errors.New("account not found")

	// ErrDuplicateMobile occurs when the mobile number is already registered.
	ErrDuplicateMobile = errors.New("mobile already registered")

	// ErrNumberTaken occurs when a freshly drawn account number collides with
	// an existing one. Callers redraw and retry.
	ErrNumberTaken = errors.New("account number taken")
)

// Repository persists accounts. UpdateBalances is reserved for the ledger
// engine, which is the sole writer of balance columns.
type Repository interface {
	Create(ctx context.Context, acct Account) error
	FindByNumber(ctx context.Context, number string) (Account, error)
	FindByMobile(ctx context.Context, mobile string) (Account, error)
	UpdateProfile(ctx context.Context, number string, address *string, pinHash []byte) (Account, error)
	UpdateBalances(ctx context.Context, number string, balance, walletBalance decimal.Decimal) error
	List(ctx context.Context) ([]Account, error)
	Stats(ctx context.Context) (Stats, error)
}

const uniqueViolation = "23505"

// PostgresRepository implements Repository using PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a Postgres-backed account repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a new account. Uniqueness of mobile and account number is
// enforced by the database so concurrent creations cannot slip past.
func (r *PostgresRepository) Create(ctx context.Context, acct Account) error {
	id, err := uuid.Parse(acct.ID)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `INSERT INTO accounts
        (id, name, mobile, address, dob, national_id, account_number, pin_hash, balance, wallet_balance, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		id, acct.Name, acct.Mobile, acct.Address, acct.DOB, acct.NationalID,
		acct.AccountNumber, acct.PINHash, acct.Balance, acct.WalletBalance, acct.CreatedAt.UTC())
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			if strings.Contains(pgErr.ConstraintName, "mobile") {
				return ErrDuplicateMobile
			}
			return ErrNumberTaken
		}
		return err
	}
	return nil
}

const accountColumns = `id, name, mobile, address, dob, national_id, account_number, pin_hash, balance, wallet_balance, created_at`

// FindByNumber fetches an account by its external account number.
func (r *PostgresRepository) FindByNumber(ctx context.Context, number string) (Account, error) {
	row := r.db.QueryRow(ctx, `SELECT `+accountColumns+` FROM accounts WHERE account_number = $1`, number)
	return scanAccount(row)
}

// FindByMobile fetches an account by mobile number.
func (r *PostgresRepository) FindByMobile(ctx context.Context, mobile string) (Account, error) {
	row := r.db.QueryRow(ctx, `SELECT `+accountColumns+` FROM accounts WHERE mobile = $1`, mobile)
	return scanAccount(row)
}

// UpdateProfile patches address and/or PIN hash and returns the updated record.
func (r *PostgresRepository) UpdateProfile(ctx context.Context, number string, address *string, pinHash []byte) (Account, error) {
	row := r.db.QueryRow(ctx, `UPDATE accounts SET
        address = COALESCE($2, address),
        pin_hash = COALESCE($3, pin_hash)
        WHERE account_number = $1
        RETURNING `+accountColumns, number, address, pinHash)
	return scanAccount(row)
}

// UpdateBalances overwrites both balance columns for the given account.
func (r *PostgresRepository) UpdateBalances(ctx context.Context, number string, balance, walletBalance decimal.Decimal) error {
	cmd, err := r.db.Exec(ctx, `UPDATE accounts SET balance = $2, wallet_balance = $3 WHERE account_number = $1`,
		number, balance, walletBalance)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns all accounts in creation order.
func (r *PostgresRepository) List(ctx context.Context) ([]Account, error) {
	rows, err := r.db.Query(ctx, `SELECT `+accountColumns+` FROM accounts ORDER BY created_at, account_number`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []Account
	for rows.Next() {
		acct, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, acct)
	}
	return accounts, rows.Err()
}

// Stats computes account count and balance totals in a single pass.
func (r *PostgresRepository) Stats(ctx context.Context) (Stats, error) {
	row := r.db.QueryRow(ctx, `SELECT COUNT(*),
        COALESCE(SUM(balance), 0),
        COALESCE(SUM(wallet_balance), 0) FROM accounts`)
	var s Stats
	if err := row.Scan(&s.TotalAccounts, &s.TotalBankBalance, &s.TotalWalletBalance); err != nil {
		return Stats{}, err
	}
	return s, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (Account, error) {
	var (
		id        uuid.UUID
		dob       time.Time
		createdAt time.Time
		acct      Account
	)
	err := row.Scan(&id, &acct.Name, &acct.Mobile, &acct.Address, &dob, &acct.NationalID,
		&acct.AccountNumber, &acct.PINHash, &acct.Balance, &acct.WalletBalance, &createdAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Account{}, ErrNotFound
		}
		return Account{}, fmt.Errorf("scan account: %w", err)
	}
	acct.ID = id.String()
	acct.DOB = dob
	acct.CreatedAt = createdAt.UTC()
	return acct, nil
}

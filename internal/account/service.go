package account

import (
	"context"
	"crypto/rand"
	"errors"
	"math/big"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidPin occurs when a PIN is missing, malformed, or does not match.
	ErrInvalidPin = errors.New("invalid PIN")

	// ErrExhaustedKeyspace occurs when repeated account number draws all
	// collided with existing accounts.
	ErrExhaustedKeyspace = errors.New("account number keyspace exhausted")
)

// Account numbers are drawn from [10000000, 99999999]. With 90 million
// candidates a handful of redraws is already overwhelming odds.
const (
	numberFloor   = 10_000_000
	numberSpan    = 90_000_000
	maxNumberDraw = 16

	defaultPIN = "0000"
	pinLength  = 4
)

// Service manages account lifecycle and PIN verification.
type Service struct {
	repo Repository
}

// NewService creates a new account service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CreateInput captures the profile data required to open an account.
type CreateInput struct {
	Name       string
	Mobile     string
	Address    string
	DOB        time.Time
	NationalID string
	PIN        string
}

// Create opens a new account with zero balances and a freshly drawn account
// number. The number is re-checked for uniqueness on insert, so a concurrent
// creation that wins the same draw forces a redraw here.
func (s *Service) Create(ctx context.Context, input CreateInput) (Account, error) {
	pin := input.PIN
	if pin == "" {
		pin = defaultPIN
	}
	if !validPIN(pin) {
		return Account{}, ErrInvalidPin
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return Account{}, err
	}

	acct := Account{
		ID:            uuid.New().String(),
		Name:          input.Name,
		Mobile:        input.Mobile,
		Address:       input.Address,
		DOB:           input.DOB,
		NationalID:    input.NationalID,
		PINHash:       hash,
		Balance:       decimal.Zero,
		WalletBalance: decimal.Zero,
		CreatedAt:     time.Now().UTC(),
	}

	for attempt := 0; attempt < maxNumberDraw; attempt++ {
		number, err := drawAccountNumber()
		if err != nil {
			return Account{}, err
		}
		acct.AccountNumber = number

		err = s.repo.Create(ctx, acct)
		if errors.Is(err, ErrNumberTaken) {
			continue
		}
		if err != nil {
			return Account{}, err
		}
		return acct, nil
	}

	return Account{}, ErrExhaustedKeyspace
}

// GetByNumber fetches an account by its account number.
func (s *Service) GetByNumber(ctx context.Context, number string) (Account, error) {
	return s.repo.FindByNumber(ctx, number)
}

// GetByMobile fetches an account by mobile number.
func (s *Service) GetByMobile(ctx context.Context, mobile string) (Account, error) {
	return s.repo.FindByMobile(ctx, mobile)
}

// UpdateProfile applies a profile patch. A supplied PIN must be exactly four
// numeric digits and is stored as a fresh bcrypt hash.
func (s *Service) UpdateProfile(ctx context.Context, number string, patch ProfilePatch) (Account, error) {
	var pinHash []byte
	if patch.PIN != nil {
		if !validPIN(*patch.PIN) {
			return Account{}, ErrInvalidPin
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*patch.PIN), bcrypt.DefaultCost)
		if err != nil {
			return Account{}, err
		}
		pinHash = hash
	}
	return s.repo.UpdateProfile(ctx, number, patch.Address, pinHash)
}

// List returns all accounts in creation order.
func (s *Service) List(ctx context.Context) ([]Account, error) {
	return s.repo.List(ctx)
}

// Stats returns aggregate account totals, computed fresh on each call.
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	return s.repo.Stats(ctx)
}

// VerifyPIN checks the supplied PIN against the stored hash in constant time.
func VerifyPIN(acct Account, pin string) error {
	if pin == "" {
		return ErrInvalidPin
	}
	if err := bcrypt.CompareHashAndPassword(acct.PINHash, []byte(pin)); err != nil {
		return ErrInvalidPin
	}
	return nil
}

func validPIN(pin string) bool {
	if len(pin) != pinLength {
		return false
	}
	for _, c := range pin {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

func drawAccountNumber() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(numberSpan))
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(n.Int64()+numberFloor, 10), nil
}

package ledger

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestMapPgErrRetryableCodes(t *testing.T) {
	for _, code := range []string{"55P03", "40001", "40P01"} {
		pgErr := &pgconn.PgError{Code: code}
		if err := mapPgErr(pgErr); !errors.Is(err, ErrConflict) {
			t.Fatalf("code %s: expected ErrConflict, got %v", code, err)
		}
		// Wrapped errors must still map: pgx surfaces them wrapped.
		wrapped := fmt.Errorf("exec: %w", pgErr)
		if err := mapPgErr(wrapped); !errors.Is(err, ErrConflict) {
			t.Fatalf("wrapped code %s: expected ErrConflict, got %v", code, err)
		}
	}
}

func TestMapPgErrPassthrough(t *testing.T) {
	if err := mapPgErr(nil); err != nil {
		t.Fatalf("nil must pass through, got %v", err)
	}

	unique := &pgconn.PgError{Code: "23505"}
	if err := mapPgErr(unique); !errors.Is(err, unique) {
		t.Fatalf("unrelated SQLSTATE must pass through, got %v", err)
	}

	plain := errors.New("connection reset")
	if err := mapPgErr(plain); !errors.Is(err, plain) {
		t.Fatalf("non-postgres error must pass through, got %v", err)
	}
}

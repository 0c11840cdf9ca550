package db

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrImmutableRecord is returned when attempting to modify an append-only row.
var ErrImmutableRecord = errors.New("record is immutable and cannot be modified")

// WrapError wraps database errors with operation context. The snapshots
// trigger rejects UPDATE and DELETE with a raised exception, which maps to
// ErrImmutableRecord; everything else keeps the driver error wrapped.
func WrapError(err error, operation string) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "P0001" { // raise_exception (from the snapshots trigger)
			return fmt.Errorf("%s: %w: %s", operation, ErrImmutableRecord, pgErr.Message)
		}
		return fmt.Errorf("%s: database error [%s]: %w", operation, pgErr.Code, err)
	}

	return fmt.Errorf("%s: %w", operation, err)
}

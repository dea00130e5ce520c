package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// isDuplicateError reports a unique constraint violation (23505).
func isDuplicateError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

func isNoRowsError(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// bumpUpdatedAt advances updated_at by at least one microsecond on every write,
// so two writes inside the same clock tick still produce distinct stamps.
const bumpUpdatedAt = `GREATEST(clock_timestamp(), updated_at + INTERVAL '1 microsecond')`

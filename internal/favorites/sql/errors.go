package favoritessql

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/cinegram/cinegram/internal/serviceerr"
)

func handlePgError(err error) (error, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return serviceerr.ErrDuplicate, true
		case "23503": // foreign_key_violation: the user row is missing
			return serviceerr.ErrNotFound, true
		}
	}

	return err, false
}

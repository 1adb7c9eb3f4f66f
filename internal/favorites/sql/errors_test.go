package favoritessql

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/cinegram/cinegram/internal/serviceerr"
)

var errUnknown = errors.New("unknown error")

func Test_handlePgError(t *testing.T) {
	tests := []struct {
		name      string
		inputErr  error
		errTarget error
		wantOk    bool
	}{
		{
			name:      "23505 error",
			inputErr:  &pgconn.PgError{Code: "23505"},
			errTarget: serviceerr.ErrDuplicate,
			wantOk:    true,
		},
		{
			name:      "23503 error",
			inputErr:  &pgconn.PgError{Code: "23503"},
			errTarget: serviceerr.ErrNotFound,
			wantOk:    true,
		},
		{
			name:      "Other pg error",
			inputErr:  &pgconn.PgError{Code: "42703"},
			errTarget: nil,
			wantOk:    false,
		},
		{
			name:      "Unknown error",
			inputErr:  errUnknown,
			errTarget: errUnknown,
			wantOk:    false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotErr, ok := handlePgError(tt.inputErr)

			if tt.errTarget != nil {
				assert.ErrorIs(t, gotErr, tt.errTarget)
			}
			assert.Equal(t, tt.wantOk, ok)
		})
	}
}

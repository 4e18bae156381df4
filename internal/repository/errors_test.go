package repository

import (
	"errors"
	"testing"

	"github.com/Domenick1991/flightmate/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestMapPgError(t *testing.T) {
	tests := []struct {
		name string
		in   error
		want error
	}{
		{"nil", nil, nil},
		{"no rows", pgx.ErrNoRows, domain.ErrNotFound},
		{"lock timeout", &pgconn.PgError{Code: "55P03"}, domain.ErrTransient},
		{"serialization failure", &pgconn.PgError{Code: "40001"}, domain.ErrTransient},
		{"pnr collision", &pgconn.PgError{Code: "23505", ConstraintName: "bookings_pnr_key"}, domain.ErrDuplicatePNR},
		{"email taken", &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}, domain.ErrEmailTaken},
		{"flight code collision", &pgconn.PgError{Code: "23505", ConstraintName: "flights_flight_number_key"}, domain.ErrDuplicateFlightNumber},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapPgError(tt.in)
			if tt.want == nil {
				assert.NoError(t, got)
				return
			}
			assert.ErrorIs(t, got, tt.want)
		})
	}
}

func TestMapPgError_PassesThroughUnknown(t *testing.T) {
	err := errors.New("connection refused")
	assert.Equal(t, err, mapPgError(err))
}

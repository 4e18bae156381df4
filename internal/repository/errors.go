package repository

import (
	"errors"

	"github.com/Domenick1991/flightmate/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	uniqueViolationCode      = "23505"
	lockNotAvailableCode     = "55P03"
	serializationFailureCode = "40001"
)

// mapPgError translates driver-level failures into domain errors. Unique
// violations are resolved by constraint name so callers can tell a PNR
// collision from a taken email or flight code.
func mapPgError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case lockNotAvailableCode, serializationFailureCode:
		return domain.ErrTransient
	case uniqueViolationCode:
		switch pgErr.ConstraintName {
		case "bookings_pnr_key":
			return domain.ErrDuplicatePNR
		case "users_email_key":
			return domain.ErrEmailTaken
		case "flights_flight_number_key":
			return domain.ErrDuplicateFlightNumber
		}
	}
	return err
}

package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Domenick1991/flightmate/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// BookingRepository is the seat ledger: the only component that mutates a
// flight's seat counter or a booking's status, always inside WithTx so a
// decrement and its booking row are observed together or not at all.
type BookingRepository interface {
	WithTx(ctx context.Context, fn func(tx pgx.Tx) error) error

	GetFlightForUpdate(ctx context.Context, tx pgx.Tx, flightID int64) (*domain.Flight, error)
	DecrementSeats(ctx context.Context, tx pgx.Tx, flightID int64) error
	IncrementSeats(ctx context.Context, tx pgx.Tx, flightID int64) error
	InsertBooking(ctx context.Context, tx pgx.Tx, booking *domain.Booking) error
	GetByPNRForUpdate(ctx context.Context, tx pgx.Tx, pnr string, userID int64) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, tx pgx.Tx, bookingID int64, status domain.BookingStatus) error

	ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error)
	GetByPNR(ctx context.Context, pnr string, userID int64) (*domain.Booking, error)
}

type PGBookingRepository struct {
	db          *pgxpool.Pool
	lockTimeout time.Duration
}

func NewBookingRepository(db *pgxpool.Pool, lockTimeout time.Duration) BookingRepository {
	return &PGBookingRepository{db: db, lockTimeout: lockTimeout}
}

// WithTx runs fn in a transaction with a bounded row-lock wait. A request
// that cannot take the flight lock in time fails with ErrTransient instead
// of queueing behind the writer; nothing partial is ever committed.
func (r *PGBookingRepository) WithTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if r.lockTimeout > 0 {
		if _, err := tx.Exec(ctx, fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", r.lockTimeout.Milliseconds())); err != nil {
			return err
		}
	}

	if err := fn(tx); err != nil {
		return mapPgError(err)
	}
	return tx.Commit(ctx)
}

func (r *PGBookingRepository) GetFlightForUpdate(ctx context.Context, tx pgx.Tx, flightID int64) (*domain.Flight, error) {
	row := tx.QueryRow(ctx, `SELECT `+flightColumns+` FROM flights WHERE id=$1 FOR UPDATE`, flightID)
	var f domain.Flight
	if err := row.Scan(&f.ID, &f.FlightNumber, &f.Origin, &f.Destination, &f.DepartureTime, &f.ArrivalTime, &f.TotalSeats, &f.AvailableSeats, &f.BasePriceCents, &f.CreatedAt, &f.UpdatedAt); err != nil {
		return nil, mapPgError(err)
	}
	return &f, nil
}

func (r *PGBookingRepository) DecrementSeats(ctx context.Context, tx pgx.Tx, flightID int64) error {
	res, err := tx.Exec(ctx, `UPDATE flights SET available_seats = available_seats - 1, updated_at = now()
		WHERE id=$1 AND available_seats > 0`, flightID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return domain.ErrSoldOut
	}
	return nil
}

func (r *PGBookingRepository) IncrementSeats(ctx context.Context, tx pgx.Tx, flightID int64) error {
	res, err := tx.Exec(ctx, `UPDATE flights SET available_seats = available_seats + 1, updated_at = now()
		WHERE id=$1 AND available_seats < total_seats`, flightID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PGBookingRepository) InsertBooking(ctx context.Context, tx pgx.Tx, booking *domain.Booking) error {
	err := tx.QueryRow(ctx, `INSERT INTO bookings (pnr, user_id, flight_id, passenger_name, passenger_email, seat_number, price_paid_cents, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at`,
		booking.PNR, booking.UserID, booking.FlightID, booking.PassengerName, booking.PassengerEmail, booking.SeatNumber, booking.PricePaidCents, booking.Status).
		Scan(&booking.ID, &booking.CreatedAt)
	return mapPgError(err)
}

const bookingColumns = `id, pnr, user_id, flight_id, passenger_name, passenger_email, seat_number, price_paid_cents, status, created_at`

// GetByPNRForUpdate locks the booking row scoped to its owner. A PNR held by
// another user is indistinguishable from a missing one.
func (r *PGBookingRepository) GetByPNRForUpdate(ctx context.Context, tx pgx.Tx, pnr string, userID int64) (*domain.Booking, error) {
	row := tx.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE pnr=$1 AND user_id=$2 FOR UPDATE`, pnr, userID)
	var b domain.Booking
	if err := row.Scan(&b.ID, &b.PNR, &b.UserID, &b.FlightID, &b.PassengerName, &b.PassengerEmail, &b.SeatNumber, &b.PricePaidCents, &b.Status, &b.CreatedAt); err != nil {
		return nil, mapPgError(err)
	}
	return &b, nil
}

func (r *PGBookingRepository) UpdateStatus(ctx context.Context, tx pgx.Tx, bookingID int64, status domain.BookingStatus) error {
	res, err := tx.Exec(ctx, `UPDATE bookings SET status=$1 WHERE id=$2`, status, bookingID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PGBookingRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE user_id=$1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := make([]domain.Booking, 0)
	for rows.Next() {
		var b domain.Booking
		if err := rows.Scan(&b.ID, &b.PNR, &b.UserID, &b.FlightID, &b.PassengerName, &b.PassengerEmail, &b.SeatNumber, &b.PricePaidCents, &b.Status, &b.CreatedAt); err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

func (r *PGBookingRepository) GetByPNR(ctx context.Context, pnr string, userID int64) (*domain.Booking, error) {
	row := r.db.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE pnr=$1 AND user_id=$2`, pnr, userID)
	var b domain.Booking
	if err := row.Scan(&b.ID, &b.PNR, &b.UserID, &b.FlightID, &b.PassengerName, &b.PassengerEmail, &b.SeatNumber, &b.PricePaidCents, &b.Status, &b.CreatedAt); err != nil {
		return nil, mapPgError(err)
	}
	return &b, nil
}

var _ BookingRepository = (*PGBookingRepository)(nil)

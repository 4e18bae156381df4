package repository

import (
	"context"
	"time"

	"github.com/Domenick1991/flightmate/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type FlightRepository interface {
	List(ctx context.Context) ([]domain.Flight, error)
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)
	Search(ctx context.Context, origin, destination string, dayStart, dayEnd time.Time) ([]domain.Flight, error)
	Create(ctx context.Context, flight *domain.Flight) error
	AuditInventory(ctx context.Context) ([]domain.InventoryAudit, error)
}

type PGFlightRepository struct {
	db *pgxpool.Pool
}

func NewFlightRepository(db *pgxpool.Pool) FlightRepository {
	return &PGFlightRepository{db: db}
}

const flightColumns = `id, flight_number, origin, destination, departure_time, arrival_time, total_seats, available_seats, base_price_cents, created_at, updated_at`

func (r *PGFlightRepository) List(ctx context.Context) ([]domain.Flight, error) {
	rows, err := r.db.Query(ctx, `SELECT `+flightColumns+` FROM flights ORDER BY departure_time`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	flights := make([]domain.Flight, 0)
	for rows.Next() {
		var f domain.Flight
		if err := rows.Scan(&f.ID, &f.FlightNumber, &f.Origin, &f.Destination, &f.DepartureTime, &f.ArrivalTime, &f.TotalSeats, &f.AvailableSeats, &f.BasePriceCents, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, err
		}
		flights = append(flights, f)
	}
	return flights, rows.Err()
}

func (r *PGFlightRepository) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	row := r.db.QueryRow(ctx, `SELECT `+flightColumns+` FROM flights WHERE id=$1`, id)
	var f domain.Flight
	if err := row.Scan(&f.ID, &f.FlightNumber, &f.Origin, &f.Destination, &f.DepartureTime, &f.ArrivalTime, &f.TotalSeats, &f.AvailableSeats, &f.BasePriceCents, &f.CreatedAt, &f.UpdatedAt); err != nil {
		return nil, mapPgError(err)
	}
	return &f, nil
}

// Search matches origin and destination by case-insensitive substring and the
// departure calendar day by the [dayStart, dayEnd) window, cheapest first.
func (r *PGFlightRepository) Search(ctx context.Context, origin, destination string, dayStart, dayEnd time.Time) ([]domain.Flight, error) {
	rows, err := r.db.Query(ctx, `SELECT `+flightColumns+` FROM flights
		WHERE origin ILIKE '%' || $1 || '%'
		  AND destination ILIKE '%' || $2 || '%'
		  AND departure_time >= $3 AND departure_time < $4
		ORDER BY base_price_cents`, origin, destination, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	flights := make([]domain.Flight, 0)
	for rows.Next() {
		var f domain.Flight
		if err := rows.Scan(&f.ID, &f.FlightNumber, &f.Origin, &f.Destination, &f.DepartureTime, &f.ArrivalTime, &f.TotalSeats, &f.AvailableSeats, &f.BasePriceCents, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, err
		}
		flights = append(flights, f)
	}
	return flights, rows.Err()
}

func (r *PGFlightRepository) Create(ctx context.Context, flight *domain.Flight) error {
	err := r.db.QueryRow(ctx, `INSERT INTO flights (flight_number, origin, destination, departure_time, arrival_time, total_seats, available_seats, base_price_cents)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at`,
		flight.FlightNumber, flight.Origin, flight.Destination, flight.DepartureTime, flight.ArrivalTime, flight.TotalSeats, flight.AvailableSeats, flight.BasePriceCents).
		Scan(&flight.ID, &flight.CreatedAt, &flight.UpdatedAt)
	return mapPgError(err)
}

// AuditInventory reports, per flight, the seat counter next to the number of
// confirmed bookings so the worker can verify conservation.
func (r *PGFlightRepository) AuditInventory(ctx context.Context) ([]domain.InventoryAudit, error) {
	rows, err := r.db.Query(ctx, `SELECT f.id, f.flight_number, f.total_seats, f.available_seats,
			COUNT(b.id) FILTER (WHERE b.status = 'CONFIRMED')
		FROM flights f
		LEFT JOIN bookings b ON b.flight_id = f.id
		GROUP BY f.id, f.flight_number, f.total_seats, f.available_seats
		ORDER BY f.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	audits := make([]domain.InventoryAudit, 0)
	for rows.Next() {
		var a domain.InventoryAudit
		if err := rows.Scan(&a.FlightID, &a.FlightNumber, &a.TotalSeats, &a.AvailableSeats, &a.ConfirmedBookings); err != nil {
			return nil, err
		}
		audits = append(audits, a)
	}
	return audits, rows.Err()
}

var _ FlightRepository = (*PGFlightRepository)(nil)

package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Domenick1991/flightmate/internal/domain"
	"github.com/Domenick1991/flightmate/internal/kafka"
	"github.com/Domenick1991/flightmate/internal/observability"
	"github.com/Domenick1991/flightmate/internal/pnr"
	"github.com/Domenick1991/flightmate/internal/pricing"
	"github.com/Domenick1991/flightmate/internal/repository"
	"github.com/google/uuid"
	pgx "github.com/jackc/pgx/v5"
)

type BookingUseCase interface {
	CreateBooking(ctx context.Context, input CreateBookingInput) (*domain.Booking, error)
	ListBookings(ctx context.Context, userID int64) ([]domain.Booking, error)
	GetBooking(ctx context.Context, userID int64, pnr string) (*domain.Booking, error)
	CancelBooking(ctx context.Context, userID int64, pnr string) (*domain.Booking, error)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type CreateBookingInput struct {
	UserID     int64
	FlightID   int64
	SeatNumber string
}

const defaultPNRAttempts = 5

// BookingService orchestrates pricing, the PNR generator and the seat ledger
// for the booking lifecycle. All seat mutation happens inside ledger
// transactions; a booking and its seat decrement commit as one unit.
type BookingService struct {
	bookings           repository.BookingRepository
	flights            repository.FlightRepository
	users              repository.UserRepository
	gen                *pnr.Generator
	producer           Producer
	eventsTopic        string
	notificationsTopic string
	pnrAttempts        int
	now                func() time.Time
	log                observability.Logger
}

type BookingServiceOption func(*BookingService)

func WithNotificationsTopic(topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.notificationsTopic = topic
	}
}

func WithClock(now func() time.Time) BookingServiceOption {
	return func(s *BookingService) {
		s.now = now
	}
}

func WithPNRAttempts(attempts int) BookingServiceOption {
	return func(s *BookingService) {
		s.pnrAttempts = attempts
	}
}

func NewBookingService(
	bookings repository.BookingRepository,
	flights repository.FlightRepository,
	users repository.UserRepository,
	gen *pnr.Generator,
	producer Producer,
	eventsTopic string,
	log observability.Logger,
	opts ...BookingServiceOption,
) *BookingService {
	service := &BookingService{
		bookings:    bookings,
		flights:     flights,
		users:       users,
		gen:         gen,
		producer:    producer,
		eventsTopic: eventsTopic,
		pnrAttempts: defaultPNRAttempts,
		now:         time.Now,
		log:         log,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// CreateBooking books one seat on the flight for the user. The fare is
// computed once, against the flight row as seen under its exclusive lock,
// and frozen into the booking. A PNR collision gets a fresh draw; after
// pnrAttempts draws the request fails as transient.
func (s *BookingService) CreateBooking(ctx context.Context, input CreateBookingInput) (*domain.Booking, error) {
	if input.SeatNumber == "" {
		return nil, fmt.Errorf("%w: seat number is required", domain.ErrInvalidInput)
	}
	if input.FlightID <= 0 {
		return nil, fmt.Errorf("%w: flight id is required", domain.ErrInvalidInput)
	}

	user, err := s.users.GetByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	if _, err := s.flights.GetByID(ctx, input.FlightID); err != nil {
		return nil, err
	}

	for attempt := 0; attempt < s.pnrAttempts; attempt++ {
		booking := &domain.Booking{
			PNR:            s.gen.Generate(),
			UserID:         user.ID,
			FlightID:       input.FlightID,
			PassengerName:  user.Name,
			PassengerEmail: user.Email,
			SeatNumber:     input.SeatNumber,
			Status:         domain.BookingStatusConfirmed,
		}

		start := time.Now()
		err := s.bookings.WithTx(ctx, func(tx pgx.Tx) error {
			flight, err := s.bookings.GetFlightForUpdate(ctx, tx, input.FlightID)
			if err != nil {
				return err
			}
			if flight.AvailableSeats <= 0 {
				return domain.ErrSoldOut
			}

			booking.PricePaidCents = pricing.Price(flight, s.now()).TotalCents

			if err := s.bookings.DecrementSeats(ctx, tx, flight.ID); err != nil {
				return err
			}
			return s.bookings.InsertBooking(ctx, tx, booking)
		})
		observability.LedgerTxDuration.Observe(time.Since(start).Seconds())

		if errors.Is(err, domain.ErrDuplicatePNR) {
			continue
		}
		if errors.Is(err, domain.ErrSoldOut) {
			observability.BookingsSoldOut.Inc()
			return nil, err
		}
		if err != nil {
			return nil, err
		}

		observability.BookingsCreated.Inc()
		s.publish(ctx, "booking_created", booking)
		return booking, nil
	}

	return nil, fmt.Errorf("%w: pnr attempts exhausted", domain.ErrTransient)
}

func (s *BookingService) ListBookings(ctx context.Context, userID int64) ([]domain.Booking, error) {
	return s.bookings.ListByUser(ctx, userID)
}

// GetBooking is always scoped by owner: a PNR belonging to another user
// reads as not found.
func (s *BookingService) GetBooking(ctx context.Context, userID int64, pnr string) (*domain.Booking, error) {
	return s.bookings.GetByPNR(ctx, pnr, userID)
}

// CancelBooking flips the owner's confirmed booking to CANCELLED and returns
// the seat to the flight, atomically. Cancelling twice fails with
// ErrAlreadyCancelled and changes nothing.
func (s *BookingService) CancelBooking(ctx context.Context, userID int64, code string) (*domain.Booking, error) {
	var cancelled *domain.Booking

	start := time.Now()
	err := s.bookings.WithTx(ctx, func(tx pgx.Tx) error {
		current, err := s.bookings.GetByPNRForUpdate(ctx, tx, code, userID)
		if err != nil {
			return err
		}
		if current.Status == domain.BookingStatusCancelled {
			return domain.ErrAlreadyCancelled
		}

		if err := s.bookings.UpdateStatus(ctx, tx, current.ID, domain.BookingStatusCancelled); err != nil {
			return err
		}
		if err := s.bookings.IncrementSeats(ctx, tx, current.FlightID); err != nil {
			return err
		}

		current.Status = domain.BookingStatusCancelled
		cancelled = current
		return nil
	})
	observability.LedgerTxDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, err
	}

	observability.BookingsCancelled.Inc()
	s.publish(ctx, "booking_cancelled", cancelled)
	return cancelled, nil
}

func (s *BookingService) publish(ctx context.Context, eventType string, booking *domain.Booking) {
	if s.producer == nil || s.eventsTopic == "" {
		return
	}
	event := kafka.NewBookingEvent(uuid.NewString(), eventType, booking)
	if err := s.producer.Publish(ctx, s.eventsTopic, booking.PNR, event); err != nil {
		s.log.WithField("pnr", booking.PNR).Warn(fmt.Sprintf("publish %s event: %v", eventType, err))
	}
	if s.notificationsTopic != "" {
		if err := s.producer.Publish(ctx, s.notificationsTopic, booking.PNR, event); err != nil {
			s.log.WithField("pnr", booking.PNR).Warn(fmt.Sprintf("publish %s notification: %v", eventType, err))
		}
	}
}

var _ BookingUseCase = (*BookingService)(nil)

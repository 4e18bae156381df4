package flights

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/Domenick1991/flightmate/internal/domain"
	"github.com/Domenick1991/flightmate/internal/observability"
	"github.com/Domenick1991/flightmate/internal/repository"
)

type FlightUseCase interface {
	List(ctx context.Context) ([]domain.Flight, error)
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)
	Search(ctx context.Context, origin, destination string, date time.Time) ([]domain.Flight, error)
}

type Cache interface {
	GetFlights(ctx context.Context) ([]domain.Flight, error)
	SetFlights(ctx context.Context, flights []domain.Flight) error
	InvalidateFlights(ctx context.Context) error
}

const (
	standardCapacity  = 180
	provisionAttempts = 4
)

// FlightService answers catalog queries and synthesizes a bookable flight
// when a searched route/date has no inventory.
type FlightService struct {
	repo  repository.FlightRepository
	cache Cache
	now   func() time.Time

	mu  sync.Mutex
	rnd *rand.Rand
}

type FlightServiceOption func(*FlightService)

func WithClock(now func() time.Time) FlightServiceOption {
	return func(s *FlightService) {
		s.now = now
	}
}

func WithRand(rnd *rand.Rand) FlightServiceOption {
	return func(s *FlightService) {
		s.rnd = rnd
	}
}

func NewFlightService(repo repository.FlightRepository, cache Cache, opts ...FlightServiceOption) *FlightService {
	service := &FlightService{
		repo:  repo,
		cache: cache,
		now:   time.Now,
		rnd:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

func (s *FlightService) List(ctx context.Context) ([]domain.Flight, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetFlights(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	flights, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.SetFlights(ctx, flights)
	}
	return flights, nil
}

func (s *FlightService) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	return s.repo.GetByID(ctx, id)
}

// Search returns the route's flights for the given calendar day, cheapest
// first. A day already in the past is clamped forward to tomorrow. When
// nothing matches, exactly one synthetic flight is inserted and returned;
// it is a permanent, bookable record, not a cache entry.
func (s *FlightService) Search(ctx context.Context, origin, destination string, date time.Time) ([]domain.Flight, error) {
	if origin == "" || destination == "" {
		return nil, fmt.Errorf("%w: origin and destination are required", domain.ErrInvalidInput)
	}

	day := startOfDay(date)
	if today := startOfDay(s.now()); day.Before(today) {
		day = today.AddDate(0, 0, 1)
	}

	flights, err := s.repo.Search(ctx, origin, destination, day, day.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}
	if len(flights) > 0 {
		return flights, nil
	}

	provisioned, err := s.provision(ctx, origin, destination, day)
	if err != nil {
		return nil, err
	}
	return []domain.Flight{*provisioned}, nil
}

func (s *FlightService) provision(ctx context.Context, origin, destination string, day time.Time) (*domain.Flight, error) {
	for attempt := 0; attempt < provisionAttempts; attempt++ {
		flight := s.synthesize(origin, destination, day, attempt > 0)
		err := s.repo.Create(ctx, flight)
		if errors.Is(err, domain.ErrDuplicateFlightNumber) {
			continue
		}
		if err != nil {
			return nil, err
		}

		observability.FlightsAutoProvisioned.Inc()
		if s.cache != nil {
			_ = s.cache.InvalidateFlights(ctx)
		}
		return flight, nil
	}
	return nil, fmt.Errorf("%w: could not allocate a free flight number", domain.ErrTransient)
}

// synthesize draws a plausible flight: business-hours departure, 3-6h
// duration, base fare derived from duration plus jitter, standard capacity.
// wideSuffix widens the flight-number range after a collision.
func (s *FlightService) synthesize(origin, destination string, day time.Time, wideSuffix bool) *domain.Flight {
	s.mu.Lock()
	defer s.mu.Unlock()

	departure := day.Add(time.Duration(8+s.rnd.Intn(13))*time.Hour +
		time.Duration(15*s.rnd.Intn(4))*time.Minute)
	duration := time.Duration(3+s.rnd.Intn(3))*time.Hour + time.Duration(s.rnd.Intn(60))*time.Minute

	number := 100 + s.rnd.Intn(900)
	if wideSuffix {
		number = 1000 + s.rnd.Intn(9000)
	}
	code := fmt.Sprintf("%c%c%d", 'A'+rune(s.rnd.Intn(26)), 'A'+rune(s.rnd.Intn(26)), number)

	return &domain.Flight{
		FlightNumber:   code,
		Origin:         origin,
		Destination:    destination,
		DepartureTime:  departure,
		ArrivalTime:    departure.Add(duration),
		TotalSeats:     standardCapacity,
		AvailableSeats: standardCapacity,
		BasePriceCents: int64(duration.Minutes())*90 + int64(s.rnd.Intn(5000)),
	}
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

var _ FlightUseCase = (*FlightService)(nil)

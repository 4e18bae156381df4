package flights

import (
	"context"
	"errors"
	"math/rand"
	"regexp"
	"testing"
	"time"

	"github.com/Domenick1991/flightmate/internal/domain"
	"github.com/Domenick1991/flightmate/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockFlightRepository struct {
	mock.Mock
}

func (m *MockFlightRepository) List(ctx context.Context) ([]domain.Flight, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *MockFlightRepository) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flight), args.Error(1)
}

func (m *MockFlightRepository) Search(ctx context.Context, origin, destination string, dayStart, dayEnd time.Time) ([]domain.Flight, error) {
	args := m.Called(ctx, origin, destination, dayStart, dayEnd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *MockFlightRepository) Create(ctx context.Context, flight *domain.Flight) error {
	args := m.Called(ctx, flight)
	return args.Error(0)
}

func (m *MockFlightRepository) AuditInventory(ctx context.Context) ([]domain.InventoryAudit, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.InventoryAudit), args.Error(1)
}

var _ repository.FlightRepository = (*MockFlightRepository)(nil)

type MockCache struct {
	mock.Mock
}

func (m *MockCache) GetFlights(ctx context.Context) ([]domain.Flight, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *MockCache) SetFlights(ctx context.Context, flights []domain.Flight) error {
	args := m.Called(ctx, flights)
	return args.Error(0)
}

func (m *MockCache) InvalidateFlights(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

var _ Cache = (*MockCache)(nil)

var (
	testNow        = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	flightCodeRe   = regexp.MustCompile(`^[A-Z]{2}\d{3,4}$`)
	testFlightList = []domain.Flight{{ID: 1, FlightNumber: "AA100", Origin: "New York (JFK)", Destination: "Los Angeles (LAX)"}}
)

func newTestService(repo *MockFlightRepository, cache Cache) *FlightService {
	return NewFlightService(repo, cache,
		WithClock(func() time.Time { return testNow }),
		WithRand(rand.New(rand.NewSource(1))))
}

func TestList_CacheHit(t *testing.T) {
	repo := &MockFlightRepository{}
	cache := &MockCache{}
	service := newTestService(repo, cache)

	ctx := context.Background()
	cache.On("GetFlights", ctx).Return(testFlightList, nil).Once()

	result, err := service.List(ctx)

	assert.NoError(t, err)
	assert.Equal(t, testFlightList, result)
	repo.AssertNotCalled(t, "List")
}

func TestList_CacheMissFillsCache(t *testing.T) {
	repo := &MockFlightRepository{}
	cache := &MockCache{}
	service := newTestService(repo, cache)

	ctx := context.Background()
	cache.On("GetFlights", ctx).Return(nil, errors.New("redis: nil")).Once()
	repo.On("List", ctx).Return(testFlightList, nil).Once()
	cache.On("SetFlights", ctx, testFlightList).Return(nil).Once()

	result, err := service.List(ctx)

	assert.NoError(t, err)
	assert.Equal(t, testFlightList, result)
	cache.AssertExpectations(t)
}

func TestList_WithoutCache(t *testing.T) {
	repo := &MockFlightRepository{}
	service := newTestService(repo, nil)

	ctx := context.Background()
	repo.On("List", ctx).Return(testFlightList, nil).Once()

	result, err := service.List(ctx)

	assert.NoError(t, err)
	assert.Equal(t, testFlightList, result)
}

func TestSearch_RequiresRoute(t *testing.T) {
	service := newTestService(&MockFlightRepository{}, nil)

	_, err := service.Search(context.Background(), "", "Los Angeles (LAX)", testNow)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = service.Search(context.Background(), "New York (JFK)", "", testNow)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSearch_ReturnsExistingInventory(t *testing.T) {
	repo := &MockFlightRepository{}
	service := newTestService(repo, nil)

	ctx := context.Background()
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	repo.On("Search", ctx, "New York (JFK)", "Los Angeles (LAX)", day, day.AddDate(0, 0, 1)).
		Return(testFlightList, nil).Once()

	result, err := service.Search(ctx, "New York (JFK)", "Los Angeles (LAX)", day.Add(5*time.Hour))

	assert.NoError(t, err)
	assert.Equal(t, testFlightList, result)
	repo.AssertNotCalled(t, "Create")
}

func TestSearch_PastDateClampedToTomorrow(t *testing.T) {
	repo := &MockFlightRepository{}
	service := newTestService(repo, nil)

	ctx := context.Background()
	tomorrow := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	repo.On("Search", ctx, "New York (JFK)", "Los Angeles (LAX)", tomorrow, tomorrow.AddDate(0, 0, 1)).
		Return(testFlightList, nil).Once()

	_, err := service.Search(ctx, "New York (JFK)", "Los Angeles (LAX)", testNow.AddDate(0, 0, -30))

	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestSearch_ProvisionsWhenEmpty(t *testing.T) {
	repo := &MockFlightRepository{}
	cache := &MockCache{}
	service := newTestService(repo, cache)

	ctx := context.Background()
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	repo.On("Search", ctx, "Austin (AUS)", "Denver (DEN)", day, day.AddDate(0, 0, 1)).
		Return([]domain.Flight{}, nil).Once()
	repo.On("Create", ctx, mock.AnythingOfType("*domain.Flight")).Return(nil).Once()
	cache.On("InvalidateFlights", ctx).Return(nil).Once()

	result, err := service.Search(ctx, "Austin (AUS)", "Denver (DEN)", day)

	assert.NoError(t, err)
	assert.Len(t, result, 1)

	created := result[0]
	assert.Regexp(t, flightCodeRe, created.FlightNumber)
	assert.Equal(t, "Austin (AUS)", created.Origin)
	assert.Equal(t, "Denver (DEN)", created.Destination)
	assert.Equal(t, standardCapacity, created.TotalSeats)
	assert.Equal(t, standardCapacity, created.AvailableSeats)
	assert.Greater(t, created.BasePriceCents, int64(0))
	assert.False(t, created.DepartureTime.Before(day.Add(8*time.Hour)))
	assert.True(t, created.DepartureTime.Before(day.Add(21*time.Hour)))
	assert.True(t, created.ArrivalTime.After(created.DepartureTime))

	cache.AssertExpectations(t)
}

func TestSearch_ProvisionRetriesOnCodeCollision(t *testing.T) {
	repo := &MockFlightRepository{}
	service := newTestService(repo, nil)

	ctx := context.Background()
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	repo.On("Search", ctx, "Austin (AUS)", "Denver (DEN)", day, day.AddDate(0, 0, 1)).
		Return([]domain.Flight{}, nil).Once()

	var codes []string
	repo.On("Create", ctx, mock.AnythingOfType("*domain.Flight")).
		Run(func(args mock.Arguments) {
			codes = append(codes, args.Get(1).(*domain.Flight).FlightNumber)
		}).
		Return(domain.ErrDuplicateFlightNumber).Once()
	repo.On("Create", ctx, mock.AnythingOfType("*domain.Flight")).
		Run(func(args mock.Arguments) {
			codes = append(codes, args.Get(1).(*domain.Flight).FlightNumber)
		}).
		Return(nil).Once()

	result, err := service.Search(ctx, "Austin (AUS)", "Denver (DEN)", day)

	assert.NoError(t, err)
	assert.Len(t, result, 1)
	assert.Len(t, codes, 2)
	assert.NotEqual(t, codes[0], codes[1])
	// retries widen the numeric suffix to four digits
	assert.Regexp(t, `^[A-Z]{2}\d{4}$`, codes[1])
}

func TestSearch_ProvisionExhaustionIsTransient(t *testing.T) {
	repo := &MockFlightRepository{}
	service := newTestService(repo, nil)

	ctx := context.Background()
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	repo.On("Search", ctx, "Austin (AUS)", "Denver (DEN)", day, day.AddDate(0, 0, 1)).
		Return([]domain.Flight{}, nil).Once()
	repo.On("Create", ctx, mock.AnythingOfType("*domain.Flight")).
		Return(domain.ErrDuplicateFlightNumber).Times(provisionAttempts)

	result, err := service.Search(ctx, "Austin (AUS)", "Denver (DEN)", day)

	assert.ErrorIs(t, err, domain.ErrTransient)
	assert.Nil(t, result)
	repo.AssertExpectations(t)
}

func TestGetByID_Delegates(t *testing.T) {
	repo := &MockFlightRepository{}
	service := newTestService(repo, nil)

	ctx := context.Background()
	repo.On("GetByID", ctx, int64(404)).Return(nil, domain.ErrNotFound).Once()

	result, err := service.GetByID(ctx, 404)

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Nil(t, result)
}

package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Domenick1991/flightmate/internal/domain"
	"github.com/Domenick1991/flightmate/internal/service/flights"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockFlightUseCase struct {
	mock.Mock
}

func (m *MockFlightUseCase) List(ctx context.Context) ([]domain.Flight, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *MockFlightUseCase) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flight), args.Error(1)
}

func (m *MockFlightUseCase) Search(ctx context.Context, origin, destination string, date time.Time) ([]domain.Flight, error) {
	args := m.Called(ctx, origin, destination, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Flight), args.Error(1)
}

var _ flights.FlightUseCase = (*MockFlightUseCase)(nil)

func newFlightRouter(service flights.FlightUseCase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewFlightHandler(service).Register(router.Group("/api/flights"))
	return router
}

func sampleFlight() domain.Flight {
	departure := time.Now().Add(10 * 24 * time.Hour).UTC()
	return domain.Flight{
		ID:             4,
		FlightNumber:   "AA100",
		Origin:         "New York (JFK)",
		Destination:    "Los Angeles (LAX)",
		DepartureTime:  departure,
		ArrivalTime:    departure.Add(6 * time.Hour),
		TotalSeats:     100,
		AvailableSeats: 40,
		BasePriceCents: 10000,
	}
}

func TestFlightList(t *testing.T) {
	service := &MockFlightUseCase{}
	service.On("List", mock.Anything).Return([]domain.Flight{sampleFlight()}, nil).Once()
	router := newFlightRouter(service)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/flights/", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp []flightResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp, 1)
	assert.Equal(t, "AA100", resp[0].FlightNumber)
	assert.Equal(t, 40, resp[0].SeatsAvailable)
	assert.Greater(t, resp[0].Price.TotalCents, resp[0].BasePriceCents)
}

func TestFlightSearch_MissingParams(t *testing.T) {
	service := &MockFlightUseCase{}
	router := newFlightRouter(service)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/flights/search?origin=JFK", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	service.AssertNotCalled(t, "Search")
}

func TestFlightSearch_BadDate(t *testing.T) {
	router := newFlightRouter(&MockFlightUseCase{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/flights/search?origin=JFK&destination=LAX&date=03-10-2026", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFlightSearch_OK(t *testing.T) {
	service := &MockFlightUseCase{}
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	service.On("Search", mock.Anything, "JFK", "LAX", day).Return([]domain.Flight{sampleFlight()}, nil).Once()
	router := newFlightRouter(service)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/flights/search?origin=JFK&destination=LAX&date=2026-03-10", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	service.AssertExpectations(t)
}

func TestFlightSearch_TransientMapsTo503(t *testing.T) {
	service := &MockFlightUseCase{}
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	service.On("Search", mock.Anything, "JFK", "LAX", day).Return(nil, domain.ErrTransient).Once()
	router := newFlightRouter(service)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/flights/search?origin=JFK&destination=LAX&date=2026-03-10", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestFlightGet_InvalidID(t *testing.T) {
	router := newFlightRouter(&MockFlightUseCase{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/flights/abc", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFlightGet_NotFound(t *testing.T) {
	service := &MockFlightUseCase{}
	service.On("GetByID", mock.Anything, int64(999)).Return(nil, domain.ErrNotFound).Once()
	router := newFlightRouter(service)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/flights/999", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

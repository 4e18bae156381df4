package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Domenick1991/flightmate/internal/domain"
	"github.com/Domenick1991/flightmate/internal/pricing"
	"github.com/Domenick1991/flightmate/internal/service/flights"
	"github.com/gin-gonic/gin"
)

type FlightHandler struct {
	service flights.FlightUseCase
	now     func() time.Time
}

type flightResponse struct {
	ID             int64         `json:"id"`
	FlightNumber   string        `json:"flight_number"`
	Origin         string        `json:"origin"`
	Destination    string        `json:"destination"`
	DepartureTime  string        `json:"departure_time"`
	ArrivalTime    string        `json:"arrival_time"`
	TotalSeats     int           `json:"total_seats"`
	SeatsAvailable int           `json:"seats_available"`
	BasePriceCents int64         `json:"base_price_cents"`
	Price          pricing.Quote `json:"price"`
}

func NewFlightHandler(service flights.FlightUseCase) *FlightHandler {
	return &FlightHandler{service: service, now: time.Now}
}

func (h *FlightHandler) Register(router *gin.RouterGroup) {
	router.GET("/", h.list)
	router.GET("/search", h.search)
	router.GET("/:id", h.get)
}

// Quotes in these responses are advisory: they are recomputed on every call
// and may differ from the fare frozen at booking time.
func (h *FlightHandler) toResponse(f domain.Flight) flightResponse {
	return flightResponse{
		ID:             f.ID,
		FlightNumber:   f.FlightNumber,
		Origin:         f.Origin,
		Destination:    f.Destination,
		DepartureTime:  f.DepartureTime.Format(time.RFC3339),
		ArrivalTime:    f.ArrivalTime.Format(time.RFC3339),
		TotalSeats:     f.TotalSeats,
		SeatsAvailable: f.AvailableSeats,
		BasePriceCents: f.BasePriceCents,
		Price:          pricing.Price(&f, h.now()),
	}
}

func (h *FlightHandler) list(c *gin.Context) {
	result, err := h.service.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]flightResponse, 0, len(result))
	for _, f := range result {
		resp = append(resp, h.toResponse(f))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *FlightHandler) search(c *gin.Context) {
	origin := c.Query("origin")
	destination := c.Query("destination")
	dateStr := c.Query("date")
	if origin == "" || destination == "" || dateStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "origin, destination and date are required"})
		return
	}

	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return
	}

	result, err := h.service.Search(c.Request.Context(), origin, destination, date)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]flightResponse, 0, len(result))
	for _, f := range result {
		resp = append(resp, h.toResponse(f))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *FlightHandler) get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	flight, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.toResponse(*flight))
}

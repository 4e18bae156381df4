package api

import (
	"net/http"
	"time"

	"github.com/Domenick1991/flightmate/internal/domain"
	"github.com/Domenick1991/flightmate/internal/service/booking"
	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	service booking.BookingUseCase
}

type createBookingRequest struct {
	FlightID   int64  `json:"flight_id"`
	SeatNumber string `json:"seat_number"`
}

type bookingResponse struct {
	PNR            string `json:"pnr"`
	Status         string `json:"status"`
	FlightID       int64  `json:"flight_id"`
	SeatNumber     string `json:"seat_number"`
	PassengerName  string `json:"passenger_name"`
	PassengerEmail string `json:"passenger_email"`
	PricePaidCents int64  `json:"price_paid_cents"`
	CreatedAt      string `json:"created_at"`
}

func NewBookingHandler(service booking.BookingUseCase) *BookingHandler {
	return &BookingHandler{service: service}
}

// Register wires the booking routes; the group must carry AuthRequired.
func (h *BookingHandler) Register(router *gin.RouterGroup) {
	router.POST("/", h.create)
	router.GET("/", h.list)
	router.GET("/:pnr", h.get)
	router.POST("/:pnr/cancel", h.cancel)
}

func toBookingResponse(b *domain.Booking) bookingResponse {
	return bookingResponse{
		PNR:            b.PNR,
		Status:         string(b.Status),
		FlightID:       b.FlightID,
		SeatNumber:     b.SeatNumber,
		PassengerName:  b.PassengerName,
		PassengerEmail: b.PassengerEmail,
		PricePaidCents: b.PricePaidCents,
		CreatedAt:      b.CreatedAt.Format(time.RFC3339),
	}
}

func (h *BookingHandler) create(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.service.CreateBooking(c.Request.Context(), booking.CreateBookingInput{
		UserID:     currentUserID(c),
		FlightID:   req.FlightID,
		SeatNumber: req.SeatNumber,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toBookingResponse(result))
}

func (h *BookingHandler) list(c *gin.Context) {
	result, err := h.service.ListBookings(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]bookingResponse, 0, len(result))
	for i := range result {
		resp = append(resp, toBookingResponse(&result[i]))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *BookingHandler) get(c *gin.Context) {
	result, err := h.service.GetBooking(c.Request.Context(), currentUserID(c), c.Param("pnr"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponse(result))
}

func (h *BookingHandler) cancel(c *gin.Context) {
	result, err := h.service.CancelBooking(c.Request.Context(), currentUserID(c), c.Param("pnr"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponse(result))
}

package domain

import "time"

type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
)

type Booking struct {
	ID             int64
	PNR            string
	UserID         int64
	FlightID       int64
	PassengerName  string
	PassengerEmail string
	SeatNumber     string
	PricePaidCents int64
	Status         BookingStatus
	CreatedAt      time.Time
}

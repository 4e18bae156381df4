package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Domenick1991/flightmate/internal/domain"
	"github.com/segmentio/kafka-go"
)

type BookingEvent struct {
	ID             string    `json:"id"`
	Type           string    `json:"type"`
	PNR            string    `json:"pnr"`
	FlightID       int64     `json:"flight_id"`
	UserID         int64     `json:"user_id"`
	PassengerEmail string    `json:"passenger_email"`
	SeatNumber     string    `json:"seat_number"`
	PricePaidCents int64     `json:"price_paid_cents"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}

// NewBookingEvent snapshots a booking into an event payload. The event id is
// assigned by the caller so retries keep the same identity.
func NewBookingEvent(id, eventType string, b *domain.Booking) BookingEvent {
	return BookingEvent{
		ID:             id,
		Type:           eventType,
		PNR:            b.PNR,
		FlightID:       b.FlightID,
		UserID:         b.UserID,
		PassengerEmail: b.PassengerEmail,
		SeatNumber:     b.SeatNumber,
		PricePaidCents: b.PricePaidCents,
		Status:         string(b.Status),
		CreatedAt:      b.CreatedAt,
	}
}

type Producer struct {
	writer *kafka.Writer
}

func NewProducer(brokers []string) *Producer {
	return &Producer{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Balancer:     &kafka.LeastBytes{},
			BatchTimeout: 50 * time.Millisecond,
			RequiredAcks: kafka.RequireOne,
		},
	}
}

func (p *Producer) Publish(ctx context.Context, topic, key string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: data,
		Time:  time.Now(),
	})
}

func (p *Producer) Close() error {
	if p.writer != nil {
		return p.writer.Close()
	}
	return nil
}

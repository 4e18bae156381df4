package email

import (
	"context"
	"fmt"

	"github.com/Domenick1991/flightmate/internal/kafka"
	"github.com/Domenick1991/flightmate/internal/observability"
)

// Sender turns booking events into passenger notifications. Delivery is a
// stand-in that only logs; the worker wires it to the notifications topic.
type Sender struct {
	log observability.Logger
}

func NewSender(log observability.Logger) *Sender {
	return &Sender{log: log}
}

func (s *Sender) Send(ctx context.Context, event kafka.BookingEvent) error {
	s.log.WithField("pnr", event.PNR).
		WithField("type", event.Type).
		Info(fmt.Sprintf("notify %s about booking %s", event.PassengerEmail, event.PNR))
	return nil
}

package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/flightmate/config"
	"github.com/Domenick1991/flightmate/internal/email"
	"github.com/Domenick1991/flightmate/internal/kafka"
	"github.com/Domenick1991/flightmate/internal/observability"
	"github.com/Domenick1991/flightmate/internal/repository"
	"github.com/jackc/pgx/v5/pgxpool"
	kafkaGo "github.com/segmentio/kafka-go"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	logger := observability.NewLogger()
	flightRepo := repository.NewFlightRepository(pool)

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.NotificationsTopic)
	defer consumer.Close()

	sender := email.NewSender(logger)

	go func() {
		err := consumer.Consume(ctx, func(ctx context.Context, msg kafkaGo.Message) error {
			var event kafka.BookingEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				logger.Warn("decode event: ", err)
				return nil
			}
			return sender.Send(ctx, event)
		})
		if err != nil && ctx.Err() == nil {
			logger.Error("consumer stopped: ", err)
		}
	}()

	auditTicker := time.NewTicker(time.Duration(cfg.Worker.AuditSweepMinutes) * time.Minute)
	defer auditTicker.Stop()

	for {
		select {
		case <-auditTicker.C:
			runAudit(ctx, flightRepo, logger)
		case <-ctx.Done():
			logger.Info("shutting down")
			return
		}
	}
}

// runAudit checks seat conservation across all flights: available seats plus
// confirmed bookings must equal capacity. Drift means a ledger bug and is
// surfaced loudly rather than repaired.
func runAudit(ctx context.Context, repo repository.FlightRepository, logger observability.Logger) {
	audits, err := repo.AuditInventory(ctx)
	if err != nil {
		logger.Error("inventory audit: ", err)
		return
	}

	drift := 0
	for _, a := range audits {
		if !a.Consistent() {
			drift++
			logger.WithField("flight", a.FlightNumber).
				WithField("available", a.AvailableSeats).
				WithField("confirmed", a.ConfirmedBookings).
				WithField("total", a.TotalSeats).
				Error("seat conservation violated")
		}
	}
	observability.InventoryDrift.Set(float64(drift))
}

package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/flightmate/config"
	"github.com/Domenick1991/flightmate/internal/bootstrap"
	"github.com/Domenick1991/flightmate/internal/cache"
	"github.com/Domenick1991/flightmate/internal/database"
	"github.com/Domenick1991/flightmate/internal/kafka"
	"github.com/Domenick1991/flightmate/internal/observability"
	"github.com/Domenick1991/flightmate/internal/pnr"
	"github.com/Domenick1991/flightmate/internal/repository"
	"github.com/Domenick1991/flightmate/internal/service/auth"
	"github.com/Domenick1991/flightmate/internal/service/booking"
	"github.com/Domenick1991/flightmate/internal/service/flights"
	"github.com/jackc/pgx/v5/pgxpool"
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

	if err := database.RunMigrations(cfg.Database.MigrateURL()); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	logger := observability.NewLogger()
	redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Booking.FlightsCacheTTL)*time.Second)
	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	flightRepo := repository.NewFlightRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool, time.Duration(cfg.Booking.LockTimeoutMS)*time.Millisecond)
	userRepo := repository.NewUserRepository(pool)

	authService := auth.NewAuthService(userRepo, cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTLMinutes)*time.Minute)
	flightService := flights.NewFlightService(flightRepo, redisCache)
	bookingService := booking.NewBookingService(
		bookingRepo,
		flightRepo,
		userRepo,
		pnr.NewGenerator(nil),
		producer,
		cfg.Kafka.BookingEventsTopic,
		logger,
		booking.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
		booking.WithPNRAttempts(cfg.Booking.PNRAttempts),
	)

	if err := bootstrap.Run(ctx, cfg, authService, flightService, bookingService); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

package main

import (
	"context"
	"errors"
	"log"
	"os"
	"time"

	"github.com/Domenick1991/flightmate/config"
	"github.com/Domenick1991/flightmate/internal/database"
	"github.com/Domenick1991/flightmate/internal/domain"
	"github.com/Domenick1991/flightmate/internal/repository"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Seeds a handful of flights on well-known routes for local runs. Existing
// flight numbers are left untouched.
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

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	repo := repository.NewFlightRepository(pool)
	base := time.Now().AddDate(0, 0, 14).Truncate(24 * time.Hour)

	flights := []domain.Flight{
		{
			FlightNumber:   "AA100",
			Origin:         "New York (JFK)",
			Destination:    "Los Angeles (LAX)",
			DepartureTime:  base.Add(9 * time.Hour),
			ArrivalTime:    base.Add(15 * time.Hour),
			TotalSeats:     160,
			AvailableSeats: 160,
			BasePriceCents: 35000,
		},
		{
			FlightNumber:   "UA200",
			Origin:         "Chicago (ORD)",
			Destination:    "Miami (MIA)",
			DepartureTime:  base.AddDate(0, 0, 1).Add(14*time.Hour + 30*time.Minute),
			ArrivalTime:    base.AddDate(0, 0, 1).Add(18 * time.Hour),
			TotalSeats:     140,
			AvailableSeats: 140,
			BasePriceCents: 22000,
		},
		{
			FlightNumber:   "DL300",
			Origin:         "Los Angeles (LAX)",
			Destination:    "New York (JFK)",
			DepartureTime:  base.Add(14 * time.Hour),
			ArrivalTime:    base.Add(20 * time.Hour),
			TotalSeats:     160,
			AvailableSeats: 160,
			BasePriceCents: 36000,
		},
		{
			FlightNumber:   "AA101",
			Origin:         "New York (JFK)",
			Destination:    "Los Angeles (LAX)",
			DepartureTime:  base.AddDate(0, 0, 2).Add(11 * time.Hour),
			ArrivalTime:    base.AddDate(0, 0, 2).Add(17 * time.Hour),
			TotalSeats:     160,
			AvailableSeats: 160,
			BasePriceCents: 34000,
		},
	}

	seeded := 0
	for i := range flights {
		if err := repo.Create(ctx, &flights[i]); err != nil {
			if errors.Is(err, domain.ErrDuplicateFlightNumber) {
				continue
			}
			log.Fatalf("seed flight %s: %v", flights[i].FlightNumber, err)
		}
		seeded++
	}
	log.Printf("seeded %d flights", seeded)
}

package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	BookingsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "flightmate_bookings_created_total",
			Help: "Total number of confirmed bookings",
		},
	)

	BookingsCancelled = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "flightmate_bookings_cancelled_total",
			Help: "Total number of cancelled bookings",
		},
	)

	BookingsSoldOut = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "flightmate_bookings_sold_out_total",
			Help: "Total booking attempts rejected because the flight was full",
		},
	)

	FlightsAutoProvisioned = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "flightmate_flights_auto_provisioned_total",
			Help: "Total flights synthesized on searches with no inventory",
		},
	)

	LedgerTxDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "flightmate_ledger_tx_seconds",
			Help:    "Duration of seat-ledger transactions",
			Buckets: prometheus.DefBuckets,
		},
	)

	InventoryDrift = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "flightmate_inventory_drift_flights",
			Help: "Flights whose seat counter disagrees with their confirmed bookings",
		},
	)

	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "flightmate_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"route", "code", "method"},
	)
)

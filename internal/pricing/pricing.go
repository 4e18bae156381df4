package pricing

import (
	"math"
	"time"

	"github.com/Domenick1991/flightmate/internal/domain"
)

// Surcharge reasons used as Quote.Surcharges keys.
const (
	ReasonOccupancy     = "occupancy"
	ReasonTimeProximity = "time_proximity"
	ReasonClassPremium  = "class_premium"
)

const (
	occupancyFactor = 0.8
	classPremiumPct = 10
)

// Quote is a priced fare breakdown. All values are in the smallest
// currency unit and rounded up, so the total never under-collects.
type Quote struct {
	BaseCents  int64            `json:"base_cents"`
	Surcharges map[string]int64 `json:"surcharges"`
	TotalCents int64            `json:"total_cents"`
}

// Price computes the fare for a flight at the given instant. It is a pure
// function of the flight's seat counters and departure time; callers that
// commit a booking must call it exactly once, against the flight state seen
// inside the ledger transaction, and freeze the resulting total.
func Price(f *domain.Flight, now time.Time) Quote {
	o := occupancyRatio(f)

	surcharges := map[string]int64{
		ReasonOccupancy:     int64(math.Ceil(float64(f.BasePriceCents) * o * o * occupancyFactor)),
		ReasonTimeProximity: ceilPercent(f.BasePriceCents, timeProximityPct(f.DepartureTime, now)),
		ReasonClassPremium:  ceilPercent(f.BasePriceCents, classPremiumPct),
	}

	total := f.BasePriceCents
	for _, s := range surcharges {
		total += s
	}

	return Quote{
		BaseCents:  f.BasePriceCents,
		Surcharges: surcharges,
		TotalCents: total,
	}
}

func occupancyRatio(f *domain.Flight) float64 {
	if f.TotalSeats <= 0 {
		// must not divide by zero even though capacity is positive by invariant
		return 1.0
	}
	o := 1.0 - float64(f.AvailableSeats)/float64(f.TotalSeats)
	if o < 0 {
		return 0
	}
	if o > 1 {
		return 1
	}
	return o
}

// timeProximityPct is a step function of whole days until departure.
func timeProximityPct(departure, now time.Time) int64 {
	days := int(departure.Sub(now).Hours() / 24)
	switch {
	case days < 2:
		return 35
	case days < 7:
		return 15
	case days < 30:
		return 5
	default:
		return 0
	}
}

func ceilPercent(cents int64, pct int64) int64 {
	return (cents*pct + 99) / 100
}

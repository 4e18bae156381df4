package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInventoryAuditConsistent(t *testing.T) {
	cases := []struct {
		name  string
		audit InventoryAudit
		want  bool
	}{
		{"fully available", InventoryAudit{TotalSeats: 100, AvailableSeats: 100, ConfirmedBookings: 0}, true},
		{"partially booked", InventoryAudit{TotalSeats: 100, AvailableSeats: 60, ConfirmedBookings: 40}, true},
		{"sold out", InventoryAudit{TotalSeats: 100, AvailableSeats: 0, ConfirmedBookings: 100}, true},
		{"seat leaked", InventoryAudit{TotalSeats: 100, AvailableSeats: 59, ConfirmedBookings: 40}, false},
		{"oversold", InventoryAudit{TotalSeats: 100, AvailableSeats: 0, ConfirmedBookings: 101}, false},
		{"negative available", InventoryAudit{TotalSeats: 100, AvailableSeats: -1, ConfirmedBookings: 101}, false},
		{"above capacity", InventoryAudit{TotalSeats: 100, AvailableSeats: 101, ConfirmedBookings: -1}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.audit.Consistent())
		})
	}
}

package domain

// InventoryAudit is one flight's conservation snapshot: at every observable
// instant available_seats + confirmed bookings must equal total_seats.
type InventoryAudit struct {
	FlightID          int64
	FlightNumber      string
	TotalSeats        int
	AvailableSeats    int
	ConfirmedBookings int
}

func (a InventoryAudit) Consistent() bool {
	return a.AvailableSeats+a.ConfirmedBookings == a.TotalSeats &&
		a.AvailableSeats >= 0 && a.AvailableSeats <= a.TotalSeats
}

package domain

import "time"

// AvailabilitySlot represents one cell of the booking grid for a service
type AvailabilitySlot struct {
	Start           time.Time // UTC
	End             time.Time // UTC
	Local           time.Time // Start in the caller's time zone
	IsPast          bool
	IsFull          bool
	CurrentBookings int
	MaxCapacity     int // 0 = unlimited
}

// IsAvailable returns true if the slot can still be booked
func (s *AvailabilitySlot) IsAvailable() bool {
	return !s.IsPast && !s.IsFull
}

// OccupancyRate returns the occupancy rate as a percentage (0-100)
// Unlimited slots always report 0
func (s *AvailabilitySlot) OccupancyRate() float64 {
	if s.MaxCapacity == 0 {
		return 0
	}
	return float64(s.CurrentBookings) / float64(s.MaxCapacity) * 100
}

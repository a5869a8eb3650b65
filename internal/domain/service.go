package domain

import (
	"fmt"
	"math"
	"time"
)

// Service represents a bookable catalog entry
// Capacity semantics:
// 0 - unlimited concurrent bookings
// 1 - exclusive, one booking per time range
// N - up to N overlapping bookings
type Service struct {
	ID            int64
	Name          string
	DurationHours float64
	Price         float64
	Currency      string
	Capacity      int
	ProductRef    *string // required to create a sale order
	Active        bool
}

// Duration converts the fractional hour duration to time.Duration rounded to seconds
func (s *Service) Duration() time.Duration {
	seconds := math.Round(s.DurationHours * 3600)
	return time.Duration(seconds) * time.Second
}

// IsUnlimited returns true if the service admits any number of overlapping bookings
func (s *Service) IsUnlimited() bool {
	return s.Capacity == 0
}

// IsExclusive returns true if only one booking may occupy a time range
func (s *Service) IsExclusive() bool {
	return s.Capacity == 1
}

// CanBeSold returns true if the service is linked to a sellable product
func (s *Service) CanBeSold() bool {
	return s.ProductRef != nil && *s.ProductRef != ""
}

// Validate checks catalog invariants
func (s *Service) Validate() error {
	if s.DurationHours <= 0 {
		return fmt.Errorf("%w: duration must be greater than zero", ErrInvalidService)
	}
	if s.Price < 0 {
		return fmt.Errorf("%w: price cannot be negative", ErrInvalidService)
	}
	if s.Capacity < 0 {
		return fmt.Errorf("%w: capacity cannot be negative", ErrInvalidService)
	}
	return nil
}

// EndFor derives the appointment end from its start and the service duration
func EndFor(start time.Time, svc *Service) time.Time {
	return start.Add(svc.Duration())
}

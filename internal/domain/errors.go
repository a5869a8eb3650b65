package domain

import "errors"

var (
	// ErrInvalidInterval returned when start is not strictly before end
	ErrInvalidInterval = errors.New("domain: invalid time interval")

	// ErrInvalidService returned when a catalog entry violates its invariants
	ErrInvalidService = errors.New("domain: invalid service")
)

package domain

import (
	"errors"
	"time"
)

// ErrUnknownTimezone returned when an IANA zone name cannot be loaded
var ErrUnknownTimezone = errors.New("domain: unknown timezone")

// ResolveLocation loads the caller's zone, falling back to def when name is empty
func ResolveLocation(name, def string) (*time.Location, error) {
	if name == "" {
		name = def
	}
	if name == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, ErrUnknownTimezone
	}
	return loc, nil
}

// ParseLocalDateTime reads a wall-clock value (LocalDateTimeFormat) in loc and returns it in UTC
func ParseLocalDateTime(value string, loc *time.Location) (time.Time, error) {
	local, err := time.ParseInLocation(LocalDateTimeFormat, value, loc)
	if err != nil {
		return time.Time{}, err
	}
	return local.UTC(), nil
}

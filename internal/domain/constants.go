package domain

import "time"

// Defaults applied when configuration leaves a value empty
const (
	DefaultReferencePrefix = "APT/"
	DefaultOpenHour        = 8
	DefaultCloseHour       = 17

	// DefaultCustomerCancelNotice is how long before the start a customer may still cancel
	DefaultCustomerCancelNotice = 24 * time.Hour
)

// Business validation constants
const (
	MaxNotesLength        = 2000
	MaxCustomerNameLength = 200
)

// Time format constants
const (
	LocalDateTimeFormat = "2006-01-02T15:04" // wall clock in the caller's zone
	DisplayTimeFormat   = "03:04 PM"
	DateFormat          = "2006-01-02" // YYYY-MM-DD
	TimeFormat          = "15:04"      // HH:MM
	EmailDateFormat     = "January 02, 2006 at 03:04 PM"
)

// CapacityStates states that occupy service capacity
var CapacityStates = []AppointmentState{
	StateDraft,
	StateConfirmed,
	StateDone,
}

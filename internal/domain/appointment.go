package domain

import (
	"fmt"
	"time"
)

// AppointmentState represents the lifecycle state of an appointment
type AppointmentState string

const (
	StateDraft     AppointmentState = "draft"
	StateConfirmed AppointmentState = "confirmed"
	StateDone      AppointmentState = "done"
	StateCancel    AppointmentState = "cancel"
)

// IsValid returns true for the four known states
func (s AppointmentState) IsValid() bool {
	switch s {
	case StateDraft, StateConfirmed, StateDone, StateCancel:
		return true
	}
	return false
}

// IsTerminal returns true for states that only an administrative reset can leave
func (s AppointmentState) IsTerminal() bool {
	return s == StateDone || s == StateCancel
}

// Appointment represents a booked service slot
type Appointment struct {
	ID         int64
	Reference  string // human readable, e.g. APT/00001
	CustomerID int64
	ServiceID  int64

	// Start and End are stored in UTC. End is always Start + service duration.
	Start time.Time
	End   time.Time
	State AppointmentState
	Notes *string

	// Write-once flags, flipped false -> true by the notification scheduler
	ReminderSent   bool
	CompletionSent bool

	SaleOrderRef *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// OccupiesCapacity returns true if the appointment counts against service capacity
func (a *Appointment) OccupiesCapacity() bool {
	return a.State != StateCancel
}

// IsPast reports whether the appointment has already started at now
func (a *Appointment) IsPast(now time.Time) bool {
	return a.Start.Before(now)
}

// CanBeRescheduled returns true while the appointment is not done or cancelled
func (a *Appointment) CanBeRescheduled() bool {
	return !a.State.IsTerminal()
}

// AppointmentDetails is an appointment joined with the customer and service data
// needed to render notifications
type AppointmentDetails struct {
	Appointment

	CustomerName  string
	CustomerEmail string
	CustomerPhone string

	ServiceName   string
	DurationHours float64
	Price         float64
	Currency      string
}

// HasEmail returns true if the customer can be reached by e-mail
func (d *AppointmentDetails) HasEmail() bool {
	return d.CustomerEmail != ""
}

// FormatReference builds the human readable reference from a sequence value
func FormatReference(prefix string, seq int64) string {
	return fmt.Sprintf("%s%05d", prefix, seq)
}

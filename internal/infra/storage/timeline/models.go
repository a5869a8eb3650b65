package timeline

import "time"

// Типы событий в outbox
const (
	EventAppointmentCreated      = "appointment.created.v1"
	EventAppointmentStateChanged = "appointment.state_changed.v1"
)

const aggregateAppointment = "appointment"

// Темы заметок в хронологии записи
const (
	SubjectNew       = "New Appointment"
	SubjectConfirmed = "Appointment Confirmed"
	SubjectCompleted = "Appointment Completed"
	SubjectCancelled = "Appointment Cancelled"
	SubjectReset     = "Appointment Reset"
	SubjectUpdated   = "Appointment Updated"
	SubjectQuotation = "Quotation Created"
)

// AppointmentEvent тело события о записи
type AppointmentEvent struct {
	AppointmentID int64     `json:"appointmentId"`
	Reference     string    `json:"reference"`
	ServiceID     int64     `json:"serviceId"`
	CustomerID    int64     `json:"customerId"`
	From          string    `json:"from,omitempty"`
	To            string    `json:"to"`
	Start         time.Time `json:"start"`
	End           time.Time `json:"end"`
	Note          string    `json:"note"`
	OccurredAt    time.Time `json:"occurredAt"`
}

// Record строка outbox_events
type Record struct {
	ID            int64
	EventID       string
	AggregateType string
	AggregateID   string
	EventType     string
	Payload       []byte
	CreatedAt     time.Time
}

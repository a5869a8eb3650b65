package reschedule_appointment

import (
	"time"

	rescheduleAppointment "github.com/TruongDHiep/Booking-Service-System/internal/usecase/reschedule_appointment"
)

// RescheduleRequest HTTP request model
type RescheduleRequest struct {
	BookingDate string  `json:"bookingDate,omitempty"`
	Timezone    string  `json:"timezone,omitempty"`
	Notes       *string `json:"notes,omitempty"`
}

// RescheduleResponse HTTP response model
type RescheduleResponse struct {
	ID        int64   `json:"id"`
	Reference string  `json:"reference"`
	State     string  `json:"state"`
	Start     string  `json:"start"`
	End       string  `json:"end"`
	Notes     *string `json:"notes,omitempty"`
}

func (r *RescheduleRequest) ToUseCaseRequest(appointmentID int64) *rescheduleAppointment.Request {
	return &rescheduleAppointment.Request{
		AppointmentID: appointmentID,
		BookingDate:   r.BookingDate,
		Timezone:      r.Timezone,
		Notes:         r.Notes,
	}
}

func FromUseCaseResponse(resp *rescheduleAppointment.Response) *RescheduleResponse {
	return &RescheduleResponse{
		ID:        resp.ID,
		Reference: resp.Reference,
		State:     resp.State,
		Start:     resp.Start.Format(time.RFC3339),
		End:       resp.End.Format(time.RFC3339),
		Notes:     resp.Notes,
	}
}

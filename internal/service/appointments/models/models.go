package models

import (
	"time"

	"github.com/TruongDHiep/Booking-Service-System/internal/domain"
)

// AppointmentResponse ответ с данными записи
type AppointmentResponse struct {
	ID             int64     `json:"id"`
	Reference      string    `json:"reference"`
	CustomerID     int64     `json:"customerId"`
	ServiceID      int64     `json:"serviceId"`
	Start          time.Time `json:"start"`
	End            time.Time `json:"end"`
	State          string    `json:"state"`
	Notes          *string   `json:"notes,omitempty"`
	ReminderSent   bool      `json:"reminderSent"`
	CompletionSent bool      `json:"completionSent"`
	SaleOrderRef   *string   `json:"saleOrderRef,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// TransitionResponse результат операции жизненного цикла
// Changed = false, если переход недопустим и был пропущен
type TransitionResponse struct {
	Appointment *AppointmentResponse `json:"appointment"`
	Changed     bool                 `json:"changed"`
	From        string               `json:"from"`
	To          string               `json:"to"`
}

// FromDomainAppointment конвертирует domain модель в response
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	return &AppointmentResponse{
		ID:             a.ID,
		Reference:      a.Reference,
		CustomerID:     a.CustomerID,
		ServiceID:      a.ServiceID,
		Start:          a.Start,
		End:            a.End,
		State:          string(a.State),
		Notes:          a.Notes,
		ReminderSent:   a.ReminderSent,
		CompletionSent: a.CompletionSent,
		SaleOrderRef:   a.SaleOrderRef,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}

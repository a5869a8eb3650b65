package create_appointment

import (
	"time"

	createAppointment "github.com/TruongDHiep/Booking-Service-System/internal/usecase/create_appointment"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	ServiceID     int64   `json:"serviceId"`
	CustomerName  string  `json:"customerName"`
	CustomerEmail string  `json:"customerEmail"`
	CustomerPhone string  `json:"customerPhone"`
	BookingDate   string  `json:"bookingDate"`        // "2030-06-01T10:00" в зоне клиента
	Timezone      string  `json:"timezone,omitempty"` // "Asia/Ho_Chi_Minh"
	Notes         *string `json:"notes,omitempty"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID               int64   `json:"id"`
	Reference        string  `json:"reference"`
	CustomerID       int64   `json:"customerId"`
	ServiceID        int64   `json:"serviceId"`
	ServiceName      string  `json:"serviceName"`
	Start            string  `json:"start"`
	End              string  `json:"end"`
	State            string  `json:"state"`
	Notes            *string `json:"notes,omitempty"`
	ConfirmationSent bool    `json:"confirmationSent"`
	CreatedAt        string  `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateAppointmentRequest) ToUseCaseRequest() *createAppointment.Request {
	return &createAppointment.Request{
		ServiceID:     r.ServiceID,
		CustomerName:  r.CustomerName,
		CustomerEmail: r.CustomerEmail,
		CustomerPhone: r.CustomerPhone,
		BookingDate:   r.BookingDate,
		Timezone:      r.Timezone,
		Notes:         r.Notes,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createAppointment.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:               resp.ID,
		Reference:        resp.Reference,
		CustomerID:       resp.CustomerID,
		ServiceID:        resp.ServiceID,
		ServiceName:      resp.ServiceName,
		Start:            resp.Start.Format(time.RFC3339),
		End:              resp.End.Format(time.RFC3339),
		State:            resp.State,
		Notes:            resp.Notes,
		ConfirmationSent: resp.ConfirmationSent,
		CreatedAt:        resp.CreatedAt.Format(time.RFC3339),
	}
}

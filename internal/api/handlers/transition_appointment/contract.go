package transition_appointment

import (
	"context"

	"github.com/TruongDHiep/Booking-Service-System/internal/service/appointments/models"
)

type AppointmentService interface {
	Confirm(ctx context.Context, id int64) (*models.TransitionResponse, error)
	Complete(ctx context.Context, id int64) (*models.TransitionResponse, error)
	Cancel(ctx context.Context, id int64) (*models.TransitionResponse, error)
}

type CustomerService interface {
	CustomerCancel(ctx context.Context, id int64) (*models.TransitionResponse, error)
}

type AdminService interface {
	ResetToDraft(ctx context.Context, id int64) (*models.TransitionResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package availability

import (
	"context"
	"time"

	"github.com/TruongDHiep/Booking-Service-System/internal/domain"
)

// ServiceCatalog источник услуг
type ServiceCatalog interface {
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
}

// AppointmentFinder выборка записей, пересекающихся с интервалом
type AppointmentFinder interface {
	FindConflicting(ctx context.Context, serviceID int64, start, end time.Time, excludeID *int64) ([]*domain.Appointment, error)
}

// Recorder учёт решений о допуске
type Recorder interface {
	RecordAdmission(admitted bool)
}

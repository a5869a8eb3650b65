package get_available_slots

import (
	"context"
	"time"

	"github.com/TruongDHiep/Booking-Service-System/internal/domain"
)

// ServiceCatalog каталог услуг
type ServiceCatalog interface {
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
}

// AppointmentFinder поиск записей, занимающих ёмкость услуги
type AppointmentFinder interface {
	// FindConflicting получает все активные записи услуги, пересекающиеся с [start, end)
	FindConflicting(ctx context.Context, serviceID int64, start, end time.Time, excludeID *int64) ([]*domain.Appointment, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

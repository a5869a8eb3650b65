package reschedule_appointment

import (
	"context"
	"time"

	"github.com/TruongDHiep/Booking-Service-System/internal/domain"
	"github.com/TruongDHiep/Booking-Service-System/internal/service/availability"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	LockService(ctx context.Context, serviceID int64) error
	Reschedule(ctx context.Context, id int64, start, end time.Time, notes *string) error
}

// ServiceCatalog каталог услуг
type ServiceCatalog interface {
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
}

// AvailabilityChecker проверка ёмкости услуги
type AvailabilityChecker interface {
	CheckService(ctx context.Context, svc *domain.Service, start, end time.Time, excludeID *int64) (*availability.Decision, error)
}

// Timeline заметки в хронологии записи
type Timeline interface {
	AddNote(ctx context.Context, appointmentID int64, subject, body string) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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

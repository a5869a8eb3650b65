package create_appointment

import (
	"context"
	"time"

	"github.com/TruongDHiep/Booking-Service-System/internal/domain"
	"github.com/TruongDHiep/Booking-Service-System/internal/service/availability"
)

// CustomerDirectory справочник клиентов
type CustomerDirectory interface {
	FindOrCreateByEmail(ctx context.Context, email, name, phone string) (*domain.Customer, error)
}

// ServiceCatalog каталог услуг
type ServiceCatalog interface {
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
}

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	LockService(ctx context.Context, serviceID int64) error
	NextReference(ctx context.Context) (int64, error)
	Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error)
	GetDetailsByID(ctx context.Context, id int64) (*domain.AppointmentDetails, error)
}

// AvailabilityChecker проверка ёмкости услуги
type AvailabilityChecker interface {
	CheckService(ctx context.Context, svc *domain.Service, start, end time.Time, excludeID *int64) (*availability.Decision, error)
}

// EventSink запись заметки о создании и события в outbox
type EventSink interface {
	OnTransition(ctx context.Context, appt *domain.Appointment, from, to domain.AppointmentState, note string) error
}

// Notifier отправка подтверждения бронирования
type Notifier interface {
	SendConfirmation(ctx context.Context, d *domain.AppointmentDetails) error
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

package appointments

import (
	"context"
	"time"

	"github.com/TruongDHiep/Booking-Service-System/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	UpdateState(ctx context.Context, id int64, from, to domain.AppointmentState) error
}

// EventSink получает каждую смену состояния (заметка в хронологии + событие)
type EventSink interface {
	OnTransition(ctx context.Context, appt *domain.Appointment, from, to domain.AppointmentState, note string) error
}

// CompletionSender прямая отправка уведомления о завершении
// Возвращает false, если письмо уже отправлено или запись занята другим обработчиком
type CompletionSender interface {
	SendCompletion(ctx context.Context, appointmentID int64) (bool, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Recorder учёт переходов
type Recorder interface {
	RecordTransition(from, to string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package notifications

import (
	"context"
	"time"

	"github.com/TruongDHiep/Booking-Service-System/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей для рассылки уведомлений
type AppointmentRepository interface {
	FindUpcomingConfirmed(ctx context.Context, from, to time.Time, limit int) ([]*domain.AppointmentDetails, error)
	FindRecentlyCompleted(ctx context.Context, from, to time.Time, limit int) ([]*domain.AppointmentDetails, error)
	ClaimForReminder(ctx context.Context, id int64) (*domain.AppointmentDetails, error)
	ClaimForCompletion(ctx context.Context, id int64) (*domain.AppointmentDetails, error)
	MarkReminderSent(ctx context.Context, id int64) error
	MarkCompletionSent(ctx context.Context, id int64) error
}

// Notifier отправка писем клиентам
type Notifier interface {
	CheckReminderTemplate() error
	CheckCompletionTemplate() error
	SendReminder(ctx context.Context, d *domain.AppointmentDetails) error
	SendCompletion(ctx context.Context, d *domain.AppointmentDetails) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Passes проходы планировщика, которые периодически запускает Runner
type Passes interface {
	ReminderPass(ctx context.Context) (int, error)
	CompletionPass(ctx context.Context) (int, error)
}

// Recorder учёт отправленных уведомлений
type Recorder interface {
	RecordNotification(kind, result string)
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

package create_sale_order

import (
	"context"

	"github.com/TruongDHiep/Booking-Service-System/internal/domain"
	"github.com/TruongDHiep/Booking-Service-System/internal/integrations/salesservice"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	GetDetailsByID(ctx context.Context, id int64) (*domain.AppointmentDetails, error)
	SetSaleOrder(ctx context.Context, id int64, ref string) error
}

// ServiceCatalog каталог услуг
type ServiceCatalog interface {
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
}

// SalesClient интерфейс клиента сервиса продаж
type SalesClient interface {
	CreateSaleOrder(ctx context.Context, order *salesservice.SaleOrderRequest) (*salesservice.SaleOrder, error)
}

// Timeline заметки в хронологии записи
type Timeline interface {
	AddNote(ctx context.Context, appointmentID int64, subject, body string) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

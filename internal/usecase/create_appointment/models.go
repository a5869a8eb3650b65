package create_appointment

import (
	"time"
)

// Request модель запроса на создание записи
type Request struct {
	ServiceID     int64
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	BookingDate   string  // Локальное время клиента, формат 2006-01-02T15:04
	Timezone      string  // IANA зона клиента, пусто - зона по умолчанию
	Notes         *string // Дополнительные заметки (опционально)
}

// Response модель ответа с созданной записью
type Response struct {
	ID          int64
	Reference   string
	CustomerID  int64
	ServiceID   int64
	ServiceName string
	Start       time.Time // UTC
	End         time.Time // UTC
	State       string
	Notes       *string
	CreatedAt   time.Time

	// Письмо-подтверждение отправлено
	ConfirmationSent bool
}

package get_available_slots

import (
	"github.com/TruongDHiep/Booking-Service-System/internal/domain"
)

// Request модель запроса на получение сетки слотов
type Request struct {
	ServiceID int64
	Date      string // YYYY-MM-DD в зоне клиента
	Timezone  string // IANA зона, пусто - зона по умолчанию
}

// Response модель ответа с сеткой слотов на день
type Response struct {
	Date          string
	ServiceID     int64
	ServiceName   string
	DurationHours float64
	Timezone      string
	Slots         []domain.AvailabilitySlot
}

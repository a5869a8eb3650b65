package reschedule_appointment

import "time"

// Request модель запроса на перенос записи
type Request struct {
	AppointmentID int64
	BookingDate   string  // Новое локальное время, формат 2006-01-02T15:04; пусто - время не меняется
	Timezone      string  // IANA зона клиента, пусто - зона по умолчанию
	Notes         *string // Новые заметки; nil - заметки не меняются
}

// Response модель ответа с перенесённой записью
type Response struct {
	ID        int64
	Reference string
	State     string
	Start     time.Time
	End       time.Time
	Notes     *string
}

package reschedule_appointment

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reschedule_appointment: invalid input data")

	// ErrInvalidDate возвращается, когда дату нельзя разобрать
	ErrInvalidDate = errors.New("reschedule_appointment: invalid booking date")

	// ErrInvalidTimezone возвращается при неизвестной временной зоне
	ErrInvalidTimezone = errors.New("reschedule_appointment: invalid timezone")

	// ErrStartInPast возвращается, когда новое начало в прошлом
	ErrStartInPast = errors.New("reschedule_appointment: cannot move appointment to the past")

	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("reschedule_appointment: appointment not found")

	// ErrCannotReschedule возвращается для завершённых и отменённых записей
	ErrCannotReschedule = errors.New("reschedule_appointment: only draft or confirmed appointments can be rescheduled")

	// ErrServiceNotFound возвращается, когда услуга записи больше не доступна
	ErrServiceNotFound = errors.New("reschedule_appointment: service not found")

	// ErrSlotNotAvailable возвращается, когда ёмкость услуги на новом интервале исчерпана
	ErrSlotNotAvailable = errors.New("reschedule_appointment: slot is not available")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reschedule_appointment: internal error")
)

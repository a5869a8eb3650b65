package create_appointment

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrInvalidDate возвращается, когда дату нельзя разобрать
	ErrInvalidDate = errors.New("create_appointment: invalid booking date")

	// ErrInvalidTimezone возвращается при неизвестной временной зоне
	ErrInvalidTimezone = errors.New("create_appointment: invalid timezone")

	// ErrStartInPast возвращается, когда начало записи в прошлом
	ErrStartInPast = errors.New("create_appointment: cannot book appointments in the past")

	// ErrServiceNotFound возвращается, когда услуга не найдена или неактивна
	ErrServiceNotFound = errors.New("create_appointment: service not found")

	// ErrSlotNotAvailable возвращается, когда ёмкость услуги на интервале исчерпана
	ErrSlotNotAvailable = errors.New("create_appointment: slot is not available")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment: internal error")
)

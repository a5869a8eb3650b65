package appointments

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("appointments: appointment not found")

	// ErrInvalidTransition возвращается в строгом режиме, когда переход недопустим из текущего состояния
	ErrInvalidTransition = errors.New("appointments: invalid state transition")

	// ErrConcurrentUpdate возвращается, когда состояние изменилось параллельно
	ErrConcurrentUpdate = errors.New("appointments: appointment was modified concurrently")

	// ErrCancellationTooLate возвращается, когда клиент отменяет запись позже допустимого срока
	ErrCancellationTooLate = errors.New("appointments: too late to cancel")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("appointments: internal error")
)

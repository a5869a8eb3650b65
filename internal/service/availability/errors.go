package availability

import (
	"errors"
	"fmt"

	"github.com/TruongDHiep/Booking-Service-System/internal/domain"
)

var (
	// ErrSlotNotAvailable возвращается, когда ёмкость услуги на интервале исчерпана
	ErrSlotNotAvailable = errors.New("availability: slot not available")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("availability: service not found")

	// ErrInternal возвращается при ошибках хранилища
	ErrInternal = errors.New("availability: internal error")
)

// ConflictError отказ в допуске с пояснением и первой конфликтующей записью
type ConflictError struct {
	Conflicting *domain.Appointment
	Explanation string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%v: %s", ErrSlotNotAvailable, e.Explanation)
}

func (e *ConflictError) Unwrap() error {
	return ErrSlotNotAvailable
}

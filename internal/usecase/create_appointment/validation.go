package create_appointment

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/TruongDHiep/Booking-Service-System/internal/domain"
)

var (
	// Код страны и номер, например "+84 912345678"
	phoneWithCodeRe = regexp.MustCompile(`^\+?\d{1,4}\s?\d{7,15}$`)
	// Только номер
	phoneNumberRe = regexp.MustCompile(`^\d{7,15}$`)
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: missing required field: service_id", ErrInvalidInput)
	}

	if strings.TrimSpace(req.CustomerName) == "" {
		return fmt.Errorf("%w: missing required field: customer_name", ErrInvalidInput)
	}

	if utf8.RuneCountInString(req.CustomerName) > domain.MaxCustomerNameLength {
		return fmt.Errorf("%w: customer_name is longer than %d characters", ErrInvalidInput, domain.MaxCustomerNameLength)
	}

	if strings.TrimSpace(req.CustomerEmail) == "" {
		return fmt.Errorf("%w: missing required field: customer_email", ErrInvalidInput)
	}

	if strings.TrimSpace(req.CustomerPhone) == "" {
		return fmt.Errorf("%w: missing required field: customer_phone", ErrInvalidInput)
	}

	if strings.TrimSpace(req.BookingDate) == "" {
		return fmt.Errorf("%w: missing required field: booking_date", ErrInvalidInput)
	}

	if err := validateEmail(req.CustomerEmail); err != nil {
		return err
	}

	if err := validatePhone(req.CustomerPhone); err != nil {
		return err
	}

	if req.Notes != nil && utf8.RuneCountInString(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes are longer than %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// validateEmail принимает только голый адрес без отображаемого имени
func validateEmail(email string) error {
	addr, err := mail.ParseAddress(strings.TrimSpace(email))
	if err != nil || addr.Address != strings.TrimSpace(email) {
		return fmt.Errorf("%w: invalid email address", ErrInvalidInput)
	}
	return nil
}

// validatePhone проверяет номер целиком или его последнюю часть после пробела
func validatePhone(phone string) error {
	phone = strings.TrimSpace(phone)

	number := phone
	if fields := strings.Fields(phone); len(fields) > 1 {
		number = fields[len(fields)-1]
	}

	if !phoneWithCodeRe.MatchString(phone) && !phoneNumberRe.MatchString(number) {
		return fmt.Errorf("%w: invalid phone number format, please enter a valid phone number with digits only", ErrInvalidInput)
	}
	return nil
}

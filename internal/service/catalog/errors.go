package catalog

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена или неактивна
	ErrServiceNotFound = errors.New("catalog: service not found")

	// ErrServiceMisconfigured возвращается, если услуга нарушает инварианты каталога
	ErrServiceMisconfigured = errors.New("catalog: service is misconfigured")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("catalog: internal error")
)

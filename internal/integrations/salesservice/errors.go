package salesservice

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("salesservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("salesservice client: invalid response")

	// ErrRejected возвращается, когда сервис продаж отклонил заказ (4xx)
	ErrRejected = errors.New("salesservice client: sale order rejected")
)

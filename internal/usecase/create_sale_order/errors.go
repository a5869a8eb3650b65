package create_sale_order

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("create_sale_order: appointment not found")

	// ErrNotConfirmed возвращается, когда запись не подтверждена
	ErrNotConfirmed = errors.New("create_sale_order: only confirmed appointments can generate quotations")

	// ErrAlreadyExists возвращается, когда заказ по записи уже создан
	ErrAlreadyExists = errors.New("create_sale_order: a quotation already exists for this appointment")

	// ErrServiceNotSellable возвращается, когда услуга не связана с товаром
	ErrServiceNotSellable = errors.New("create_sale_order: service is not linked to a product")

	// ErrSalesRejected возвращается, когда сервис продаж отклонил заказ
	ErrSalesRejected = errors.New("create_sale_order: sale order rejected")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_sale_order: internal error")
)

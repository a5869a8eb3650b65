package appointment

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("appointment.repository: appointment not found")

	// ErrStateConflict возвращается, когда запись уже не в ожидаемом состоянии (проиграна гонка)
	ErrStateConflict = errors.New("appointment.repository: appointment state changed concurrently")

	// ErrNotClaimable возвращается, когда запись заблокирована другим обработчиком
	// или уведомление по ней уже отправлено
	ErrNotClaimable = errors.New("appointment.repository: appointment cannot be claimed")

	// ErrAlreadySent возвращается, когда флаг уведомления уже выставлен
	ErrAlreadySent = errors.New("appointment.repository: notification already sent")

	// ErrSaleOrderExists возвращается, когда у записи уже есть заказ
	ErrSaleOrderExists = errors.New("appointment.repository: sale order already linked")

	// ErrTransactionRequired возвращается, когда операция вызвана вне транзакции
	ErrTransactionRequired = errors.New("appointment.repository: transaction required")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("appointment.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("appointment.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("appointment.repository: failed to scan row")
)

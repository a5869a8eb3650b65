package timeline

import "errors"

var (
	// ErrTransactionRequired возвращается, когда операция вызвана вне транзакции
	ErrTransactionRequired = errors.New("timeline.repository: transaction required")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("timeline.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("timeline.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("timeline.repository: failed to scan row")

	// ErrEncodePayload возвращается, если событие не удалось сериализовать
	ErrEncodePayload = errors.New("timeline.repository: failed to encode event payload")
)

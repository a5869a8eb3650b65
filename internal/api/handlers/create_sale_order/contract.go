package create_sale_order

import (
	"context"

	createSaleOrder "github.com/TruongDHiep/Booking-Service-System/internal/usecase/create_sale_order"
)

type CreateSaleOrderUseCase interface {
	Execute(ctx context.Context, appointmentID int64) (*createSaleOrder.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

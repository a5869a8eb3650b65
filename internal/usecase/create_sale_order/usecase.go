package create_sale_order

import (
	"context"
	"errors"
	"fmt"

	"github.com/TruongDHiep/Booking-Service-System/internal/domain"
	apptRepo "github.com/TruongDHiep/Booking-Service-System/internal/infra/storage/appointment"
	"github.com/TruongDHiep/Booking-Service-System/internal/infra/storage/catalog"
	"github.com/TruongDHiep/Booking-Service-System/internal/infra/storage/timeline"
	"github.com/TruongDHiep/Booking-Service-System/internal/integrations/salesservice"
	"github.com/TruongDHiep/Booking-Service-System/pkg/ptr"
)

const (
	orderNote     = "Generated from Appointment: %s\nBooking Date: %s"
	lineDesc      = "[%s] %s\nAppointment: %s\nDate: %s"
	quotationNote = "Sale Order %s created from this appointment."
)

// UseCase use case для создания заказа по подтверждённой записи
type UseCase struct {
	apptRepo  AppointmentRepository
	catalog   ServiceCatalog
	sales     SalesClient
	timeline  Timeline
	txManager TransactionManager
	logger    Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	apptRepo AppointmentRepository,
	catalog ServiceCatalog,
	sales SalesClient,
	timeline Timeline,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		apptRepo:  apptRepo,
		catalog:   catalog,
		sales:     sales,
		timeline:  timeline,
		txManager: txManager,
		logger:    logger,
	}
}

// Execute создаёт заказ в сервисе продаж и привязывает его к записи.
// Строка записи заблокирована на время вызова, поэтому второй заказ по той же записи не создаётся
func (uc *UseCase) Execute(ctx context.Context, appointmentID int64) (*Response, error) {
	uc.logger.Info("CreateSaleOrder: appointment id=%d", appointmentID)

	var resp *Response

	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 1. Блокируем запись
		appt, err := uc.apptRepo.GetByID(txCtx, appointmentID)
		if err != nil {
			if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
				return ErrAppointmentNotFound
			}
			return fmt.Errorf("%w: failed to get appointment: %v", ErrInternal, err)
		}

		// 2. Проверки
		if appt.State != domain.StateConfirmed {
			uc.logger.Warn("CreateSaleOrder: appointment %s is %s", appt.Reference, appt.State)
			return ErrNotConfirmed
		}
		if appt.SaleOrderRef != nil {
			uc.logger.Warn("CreateSaleOrder: appointment %s already has sale order %s", appt.Reference, *appt.SaleOrderRef)
			return fmt.Errorf("%w: sale order %s", ErrAlreadyExists, *appt.SaleOrderRef)
		}

		svc, err := uc.catalog.GetByID(txCtx, appt.ServiceID)
		if err != nil {
			if errors.Is(err, catalog.ErrServiceNotFound) {
				return fmt.Errorf("%w: service id=%d is not available", ErrServiceNotSellable, appt.ServiceID)
			}
			return fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
		}
		if !svc.CanBeSold() {
			uc.logger.Warn("CreateSaleOrder: service %q has no product", svc.Name)
			return fmt.Errorf("%w: service %q", ErrServiceNotSellable, svc.Name)
		}

		details, err := uc.apptRepo.GetDetailsByID(txCtx, appt.ID)
		if err != nil {
			return fmt.Errorf("%w: failed to get appointment details: %v", ErrInternal, err)
		}

		// 3. Создаём заказ
		order, err := uc.sales.CreateSaleOrder(txCtx, buildOrder(details, svc))
		if err != nil {
			if errors.Is(err, salesservice.ErrRejected) {
				uc.logger.Warn("CreateSaleOrder: rejected for %s: %v", appt.Reference, err)
				return fmt.Errorf("%w: %v", ErrSalesRejected, err)
			}
			return fmt.Errorf("%w: failed to create sale order: %v", ErrInternal, err)
		}

		// 4. Привязываем заказ и пишем заметку
		if err := uc.apptRepo.SetSaleOrder(txCtx, appt.ID, order.Name); err != nil {
			if errors.Is(err, apptRepo.ErrSaleOrderExists) {
				return ErrAlreadyExists
			}
			return fmt.Errorf("%w: failed to link sale order: %v", ErrInternal, err)
		}

		if err := uc.timeline.AddNote(txCtx, appt.ID, timeline.SubjectQuotation, fmt.Sprintf(quotationNote, order.Name)); err != nil {
			return fmt.Errorf("%w: failed to add note: %v", ErrInternal, err)
		}

		resp = &Response{
			AppointmentID: appt.ID,
			Reference:     appt.Reference,
			SaleOrderID:   order.ID,
			SaleOrderName: order.Name,
			State:         order.State,
		}
		return nil
	})

	if err != nil {
		if errors.Is(err, ErrInternal) {
			uc.logger.Error("CreateSaleOrder: appointment id=%d: %v", appointmentID, err)
		}
		return nil, err
	}

	uc.logger.Info("CreateSaleOrder: sale order %s linked to %s", resp.SaleOrderName, resp.Reference)
	return resp, nil
}

func buildOrder(d *domain.AppointmentDetails, svc *domain.Service) *salesservice.SaleOrderRequest {
	date := d.Start.Format(domain.DateFormat + " " + domain.TimeFormat)
	productRef := ptr.Value(svc.ProductRef)

	return &salesservice.SaleOrderRequest{
		CustomerID:           d.CustomerID,
		CustomerEmail:        d.CustomerEmail,
		AppointmentReference: d.Reference,
		Note:                 fmt.Sprintf(orderNote, d.Reference, date),
		Currency:             svc.Currency,
		Lines: []salesservice.SaleOrderLine{{
			ProductRef:  productRef,
			Quantity:    1,
			PriceUnit:   svc.Price,
			Description: fmt.Sprintf(lineDesc, productRef, svc.Name, d.Reference, date),
		}},
	}
}

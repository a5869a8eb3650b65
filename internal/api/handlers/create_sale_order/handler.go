package create_sale_order

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/TruongDHiep/Booking-Service-System/internal/api/handlers"
	createSaleOrder "github.com/TruongDHiep/Booking-Service-System/internal/usecase/create_sale_order"
)

const (
	msgInvalidAppointmentID = "некорректный ID записи"
	msgAppointmentNotFound  = "запись не найдена"
	msgNotConfirmed         = "заказ можно создать только для подтверждённой записи"
	msgAlreadyExists        = "для записи уже создан заказ"
	msgServiceNotSellable   = "у услуги нет товара для продажи"
	msgSalesRejected        = "сервис продаж отклонил заказ"
)

// SaleOrderResponse HTTP response model
type SaleOrderResponse struct {
	AppointmentID int64  `json:"appointmentId"`
	Reference     string `json:"reference"`
	SaleOrderID   int64  `json:"saleOrderId"`
	SaleOrderName string `json:"saleOrderName"`
	State         string `json:"state"`
}

type Handler struct {
	useCase CreateSaleOrderUseCase
	logger  Logger
}

func NewHandler(useCase CreateSaleOrderUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments/{appointmentId}/sale-order
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	appointmentID, err := strconv.ParseInt(mux.Vars(r)["appointmentId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /appointments/{id}/sale-order - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), appointmentID)
	if err != nil {
		switch {
		case errors.Is(err, createSaleOrder.ErrAppointmentNotFound):
			handlers.RespondNotFound(w, msgAppointmentNotFound)

		case errors.Is(err, createSaleOrder.ErrNotConfirmed):
			handlers.RespondConflict(w, msgNotConfirmed, "")

		case errors.Is(err, createSaleOrder.ErrAlreadyExists):
			handlers.RespondConflict(w, msgAlreadyExists, err.Error())

		case errors.Is(err, createSaleOrder.ErrServiceNotSellable):
			handlers.RespondJSON(w, http.StatusUnprocessableEntity, handlers.ErrorResponse{
				Code: http.StatusUnprocessableEntity, Message: msgServiceNotSellable,
			})

		case errors.Is(err, createSaleOrder.ErrSalesRejected):
			h.logger.Warn("POST /appointments/{id}/sale-order - Sales service rejected: appointment_id=%d, %v", appointmentID, err)
			handlers.RespondBadGateway(w, msgSalesRejected)

		default:
			h.logger.Error("POST /appointments/{id}/sale-order - Failed: appointment_id=%d, error=%v", appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments/{id}/sale-order - Sale order %s created for %s", result.SaleOrderName, result.Reference)
	handlers.RespondJSON(w, http.StatusCreated, &SaleOrderResponse{
		AppointmentID: result.AppointmentID,
		Reference:     result.Reference,
		SaleOrderID:   result.SaleOrderID,
		SaleOrderName: result.SaleOrderName,
		State:         result.State,
	})
}

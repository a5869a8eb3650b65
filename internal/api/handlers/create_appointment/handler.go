package create_appointment

import (
	"errors"
	"net/http"

	"github.com/TruongDHiep/Booking-Service-System/internal/api/handlers"
	"github.com/TruongDHiep/Booking-Service-System/internal/service/availability"
	createAppointment "github.com/TruongDHiep/Booking-Service-System/internal/usecase/create_appointment"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные данные записи"
	msgInvalidDate        = "некорректный формат даты записи, ожидается YYYY-MM-DDTHH:MM"
	msgInvalidTimezone    = "неизвестная временная зона"
	msgStartInPast        = "нельзя записаться на прошедшее время"
	msgServiceNotFound    = "услуга не найдена"
	msgSlotNotAvailable   = "выбранный временной слот недоступен"
)

type Handler struct {
	useCase CreateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase CreateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		var conflict *availability.ConflictError
		switch {
		case errors.As(err, &conflict):
			h.logger.Warn("POST /appointments - Slot not available: service_id=%d, %s", req.ServiceID, conflict.Explanation)
			handlers.RespondConflict(w, msgSlotNotAvailable, conflict.Explanation)

		case errors.Is(err, createAppointment.ErrSlotNotAvailable):
			h.logger.Warn("POST /appointments - Slot not available: service_id=%d", req.ServiceID)
			handlers.RespondConflict(w, msgSlotNotAvailable, "")

		case errors.Is(err, createAppointment.ErrServiceNotFound):
			h.logger.Warn("POST /appointments - Service not found: service_id=%d", req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createAppointment.ErrInvalidInput):
			h.logger.Warn("POST /appointments - Invalid input: %v", err)
			handlers.RespondJSON(w, http.StatusBadRequest, handlers.ErrorResponse{
				Code: http.StatusBadRequest, Message: msgInvalidInput, Details: err.Error(),
			})

		case errors.Is(err, createAppointment.ErrInvalidDate):
			h.logger.Warn("POST /appointments - Invalid date: %s", req.BookingDate)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, createAppointment.ErrInvalidTimezone):
			h.logger.Warn("POST /appointments - Invalid timezone: %s", req.Timezone)
			handlers.RespondBadRequest(w, msgInvalidTimezone)

		case errors.Is(err, createAppointment.ErrStartInPast):
			h.logger.Warn("POST /appointments - Start in the past: %s", req.BookingDate)
			handlers.RespondBadRequest(w, msgStartInPast)

		default:
			h.logger.Error("POST /appointments - Failed to create appointment: service_id=%d, error=%v", req.ServiceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments - Appointment created successfully: id=%d, reference=%s",
		result.ID, result.Reference)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}

package reschedule_appointment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/TruongDHiep/Booking-Service-System/internal/api/handlers"
	"github.com/TruongDHiep/Booking-Service-System/internal/service/availability"
	rescheduleAppointment "github.com/TruongDHiep/Booking-Service-System/internal/usecase/reschedule_appointment"
)

const (
	msgInvalidAppointmentID = "некорректный ID записи"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidDate          = "некорректный формат даты записи, ожидается YYYY-MM-DDTHH:MM"
	msgInvalidTimezone      = "неизвестная временная зона"
	msgStartInPast          = "нельзя перенести запись на прошедшее время"
	msgAppointmentNotFound  = "запись не найдена"
	msgServiceNotFound      = "услуга записи не найдена"
	msgCannotReschedule     = "запись в текущем состоянии нельзя перенести"
	msgSlotNotAvailable     = "выбранный временной слот недоступен"
)

type Handler struct {
	useCase RescheduleAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase RescheduleAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT /api/v1/appointments/{appointmentId}/schedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	appointmentID, err := strconv.ParseInt(mux.Vars(r)["appointmentId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /appointments/{id}/schedule - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	var req RescheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /appointments/{id}/schedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(appointmentID))
	if err != nil {
		var conflict *availability.ConflictError
		switch {
		case errors.As(err, &conflict):
			h.logger.Warn("PUT /appointments/{id}/schedule - Slot not available: appointment_id=%d, %s", appointmentID, conflict.Explanation)
			handlers.RespondConflict(w, msgSlotNotAvailable, conflict.Explanation)

		case errors.Is(err, rescheduleAppointment.ErrSlotNotAvailable):
			h.logger.Warn("PUT /appointments/{id}/schedule - Slot not available: appointment_id=%d", appointmentID)
			handlers.RespondConflict(w, msgSlotNotAvailable, "")

		case errors.Is(err, rescheduleAppointment.ErrCannotReschedule):
			h.logger.Warn("PUT /appointments/{id}/schedule - Cannot reschedule: appointment_id=%d", appointmentID)
			handlers.RespondConflict(w, msgCannotReschedule, "")

		case errors.Is(err, rescheduleAppointment.ErrAppointmentNotFound):
			h.logger.Warn("PUT /appointments/{id}/schedule - Appointment not found: appointment_id=%d", appointmentID)
			handlers.RespondNotFound(w, msgAppointmentNotFound)

		case errors.Is(err, rescheduleAppointment.ErrServiceNotFound):
			h.logger.Warn("PUT /appointments/{id}/schedule - Service not found: appointment_id=%d", appointmentID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, rescheduleAppointment.ErrInvalidDate):
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, rescheduleAppointment.ErrInvalidTimezone):
			handlers.RespondBadRequest(w, msgInvalidTimezone)

		case errors.Is(err, rescheduleAppointment.ErrStartInPast):
			handlers.RespondBadRequest(w, msgStartInPast)

		case errors.Is(err, rescheduleAppointment.ErrInvalidInput):
			h.logger.Warn("PUT /appointments/{id}/schedule - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("PUT /appointments/{id}/schedule - Failed to reschedule: appointment_id=%d, error=%v", appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /appointments/{id}/schedule - Appointment rescheduled: reference=%s", result.Reference)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

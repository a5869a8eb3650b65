package transition_appointment

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/TruongDHiep/Booking-Service-System/internal/api/handlers"
	"github.com/TruongDHiep/Booking-Service-System/internal/service/appointments"
	"github.com/TruongDHiep/Booking-Service-System/internal/service/appointments/models"
)

const (
	msgInvalidAppointmentID = "некорректный ID записи"
	msgAppointmentNotFound  = "запись не найдена"
	msgInvalidTransition    = "переход недопустим из текущего состояния записи"
	msgConcurrentUpdate     = "запись была изменена параллельно, повторите запрос"
	msgCancellationTooLate  = "отменить запись уже нельзя, обратитесь к оператору"
)

// Действия, доступные через {action}
const (
	ActionConfirm  = "confirm"
	ActionComplete = "complete"
	ActionCancel   = "cancel"
)

type transitionFunc func(ctx context.Context, id int64) (*models.TransitionResponse, error)

// Handler обслуживает переходы жизненного цикла записи
type Handler struct {
	action string
	apply  transitionFunc
	logger Logger
}

// NewHandler создает операторский обработчик для одного действия: confirm, complete или cancel
func NewHandler(service AppointmentService, action string, logger Logger) (*Handler, error) {
	var apply transitionFunc
	switch action {
	case ActionConfirm:
		apply = service.Confirm
	case ActionComplete:
		apply = service.Complete
	case ActionCancel:
		apply = service.Cancel
	default:
		return nil, fmt.Errorf("transition_appointment: unknown action %q", action)
	}
	return &Handler{action: action, apply: apply, logger: logger}, nil
}

// NewCustomerCancelHandler создает обработчик отмены клиентом с проверкой срока
func NewCustomerCancelHandler(service CustomerService, logger Logger) *Handler {
	return &Handler{action: ActionCancel, apply: service.CustomerCancel, logger: logger}
}

// NewResetHandler создает административный обработчик сброса в черновик
func NewResetHandler(service AdminService, logger Logger) *Handler {
	return &Handler{action: "reset-to-draft", apply: service.ResetToDraft, logger: logger}
}

// Handle PATCH /api/v1/appointments/{appointmentId}/cancel,
// PATCH /api/v1/admin/appointments/{appointmentId}/{action}
// и POST /api/v1/admin/appointments/{appointmentId}/reset-to-draft
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	route := fmt.Sprintf("%s /appointments/{id}/%s", r.Method, h.action)

	appointmentID, err := strconv.ParseInt(mux.Vars(r)["appointmentId"], 10, 64)
	if err != nil {
		h.logger.Warn("%s - Invalid appointment ID: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	result, err := h.apply(r.Context(), appointmentID)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrAppointmentNotFound):
			h.logger.Warn("%s - Appointment not found: appointment_id=%d", route, appointmentID)
			handlers.RespondNotFound(w, msgAppointmentNotFound)

		case errors.Is(err, appointments.ErrInvalidTransition):
			h.logger.Warn("%s - Invalid transition: appointment_id=%d, %v", route, appointmentID, err)
			handlers.RespondConflict(w, msgInvalidTransition, err.Error())

		case errors.Is(err, appointments.ErrCancellationTooLate):
			h.logger.Warn("%s - Cancellation too late: appointment_id=%d", route, appointmentID)
			handlers.RespondConflict(w, msgCancellationTooLate, err.Error())

		case errors.Is(err, appointments.ErrConcurrentUpdate):
			h.logger.Warn("%s - Concurrent update: appointment_id=%d", route, appointmentID)
			handlers.RespondConflict(w, msgConcurrentUpdate, "")

		default:
			h.logger.Error("%s - Failed: appointment_id=%d, error=%v", route, appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	if result.Changed {
		h.logger.Info("%s - Appointment %s moved %s -> %s", route, result.Appointment.Reference, result.From, result.To)
	} else {
		h.logger.Info("%s - Appointment %s left in %s", route, result.Appointment.Reference, result.From)
	}
	handlers.RespondJSON(w, http.StatusOK, result)
}

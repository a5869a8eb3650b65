package run_notifications

import (
	"context"
	"errors"
	"net/http"

	"github.com/TruongDHiep/Booking-Service-System/internal/api/handlers"
	"github.com/TruongDHiep/Booking-Service-System/internal/service/notifications"
)

const (
	msgTemplateNotFound = "шаблон письма не найден"

	KindReminders   = "reminders"
	KindCompletions = "completions"
)

type Scheduler interface {
	ReminderPass(ctx context.Context) (int, error)
	CompletionPass(ctx context.Context) (int, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// PassResponse HTTP response model
type PassResponse struct {
	Kind string `json:"kind"`
	Sent int    `json:"sent"`
}

// Handler запускает один проход рассылки по запросу внешнего планировщика
type Handler struct {
	kind   string
	pass   func(ctx context.Context) (int, error)
	logger Logger
}

func NewRemindersHandler(scheduler Scheduler, logger Logger) *Handler {
	return &Handler{kind: KindReminders, pass: scheduler.ReminderPass, logger: logger}
}

func NewCompletionsHandler(scheduler Scheduler, logger Logger) *Handler {
	return &Handler{kind: KindCompletions, pass: scheduler.CompletionPass, logger: logger}
}

// Handle POST /api/v1/admin/notifications/{kind}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sent, err := h.pass(r.Context())
	if err != nil {
		if errors.Is(err, notifications.ErrTemplateNotFound) {
			h.logger.Warn("POST /admin/notifications/%s - Template not found: %v", h.kind, err)
			handlers.RespondNotFound(w, msgTemplateNotFound)
			return
		}
		h.logger.Error("POST /admin/notifications/%s - Pass failed: %v", h.kind, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /admin/notifications/%s - Pass finished: sent=%d", h.kind, sent)
	handlers.RespondJSON(w, http.StatusOK, &PassResponse{Kind: h.kind, Sent: sent})
}

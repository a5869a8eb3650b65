package run_notifications

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TruongDHiep/Booking-Service-System/internal/service/notifications"
	"github.com/TruongDHiep/Booking-Service-System/pkg/logger"
)

type fakeScheduler struct {
	reminders, completions int
	err                    error
}

func (f *fakeScheduler) ReminderPass(context.Context) (int, error)   { return f.reminders, f.err }
func (f *fakeScheduler) CompletionPass(context.Context) (int, error) { return f.completions, f.err }

func post(h *Handler) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodPost, "/api/v1/admin/notifications/x", nil))
	return rec
}

func TestHandle_ReportsSentCount(t *testing.T) {
	s := &fakeScheduler{reminders: 3, completions: 1}

	rec := post(NewRemindersHandler(s, logger.NewNop()))
	require.Equal(t, http.StatusOK, rec.Code)
	var resp PassResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, PassResponse{Kind: KindReminders, Sent: 3}, resp)

	rec = post(NewCompletionsHandler(s, logger.NewNop()))
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, PassResponse{Kind: KindCompletions, Sent: 1}, resp)
}

func TestHandle_Errors(t *testing.T) {
	s := &fakeScheduler{err: fmt.Errorf("%w: appointment_reminder", notifications.ErrTemplateNotFound)}
	assert.Equal(t, http.StatusNotFound, post(NewRemindersHandler(s, logger.NewNop())).Code)

	s.err = errors.New("db down")
	assert.Equal(t, http.StatusInternalServerError, post(NewCompletionsHandler(s, logger.NewNop())).Code)
}

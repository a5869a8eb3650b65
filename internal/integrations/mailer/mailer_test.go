package mailer

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"text/template"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TruongDHiep/Booking-Service-System/internal/domain"
	"github.com/TruongDHiep/Booking-Service-System/pkg/logger"
)

type sentMail struct {
	to, subject, body string
}

type fakeSender struct {
	sent []sentMail
	err  error
}

func (f *fakeSender) Send(to, subject, body string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentMail{to, subject, body})
	return nil
}

func details() *domain.AppointmentDetails {
	return &domain.AppointmentDetails{
		Appointment: domain.Appointment{
			ID:        12,
			Reference: "APT/00012",
			Start:     time.Date(2030, 3, 4, 14, 30, 0, 0, time.UTC),
		},
		CustomerName:  "Jane",
		CustomerEmail: "jane@example.com",
		ServiceName:   "Massage",
		DurationHours: 1,
		Price:         50,
		Currency:      "USD",
	}
}

func TestLoadTemplates_ShippedSet(t *testing.T) {
	tpl, err := LoadTemplates(filepath.Join("..", "..", "..", "templates"))
	require.NoError(t, err)

	sender := &fakeSender{}
	m := New(sender, tpl, "https://portal.example.com/", logger.NewNop())

	for _, kind := range allKinds {
		assert.NoError(t, m.CheckTemplate(kind))
	}

	require.NoError(t, m.SendReminder(context.Background(), details()))
	require.Len(t, sender.sent, 1)
	assert.Equal(t, "jane@example.com", sender.sent[0].to)
	assert.Equal(t, "Reminder: Massage on March 04, 2030 at 02:30 PM", sender.sent[0].subject)
	assert.Contains(t, sender.sent[0].body, "https://portal.example.com/my/appointments/12")
}

func TestCheckTemplate_Missing(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "appointment_reminder.tmpl"),
		[]byte("Subject: hi {{.CustomerName}}\nbody"), 0o600))

	tpl, err := LoadTemplates(dir)
	require.NoError(t, err)
	m := New(&fakeSender{}, tpl, "", logger.NewNop())

	assert.NoError(t, m.CheckReminderTemplate())
	assert.ErrorIs(t, m.CheckCompletionTemplate(), ErrTemplateNotFound)
	assert.ErrorIs(t, m.SendCompletion(context.Background(), details()), ErrTemplateNotFound)
}

func TestSend_Errors(t *testing.T) {
	tpl := &Templates{byKind: make(map[Kind]*template.Template)}
	require.NoError(t, tpl.Add(KindCompletion, "Subject: done\nbye {{.CustomerName}}"))

	noEmail := details()
	noEmail.CustomerEmail = ""
	m := New(&fakeSender{}, tpl, "", logger.NewNop())
	assert.ErrorIs(t, m.SendCompletion(context.Background(), noEmail), ErrNoRecipient)

	failing := New(&fakeSender{err: errors.New("connection refused")}, tpl, "", logger.NewNop())
	assert.ErrorIs(t, failing.SendCompletion(context.Background(), details()), ErrSend)
}

func TestRender_RequiresSubjectLine(t *testing.T) {
	tpl := &Templates{byKind: make(map[Kind]*template.Template)}
	require.NoError(t, tpl.Add(KindReminder, "no subject here"))

	_, _, err := tpl.Render(KindReminder, EmailData{})
	assert.ErrorIs(t, err, ErrRender)
}

package mailer

import (
	"context"
	"fmt"
	"strings"

	"github.com/TruongDHiep/Booking-Service-System/internal/domain"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// EmailData данные, доступные в шаблонах писем
type EmailData struct {
	Reference     string
	CustomerName  string
	CustomerEmail string
	ServiceName   string
	BookingDate   string
	Duration      float64
	Price         float64
	Currency      string
	Notes         string
	PortalURL     string
}

// Mailer рендерит и отправляет письма о записях
type Mailer struct {
	sender    Sender
	templates *Templates
	portalURL string
	logger    Logger
}

// New создает Mailer. portalURL - базовый адрес клиентского портала
func New(sender Sender, templates *Templates, portalURL string, logger Logger) *Mailer {
	return &Mailer{
		sender:    sender,
		templates: templates,
		portalURL: strings.TrimRight(portalURL, "/"),
		logger:    logger,
	}
}

// CheckTemplate проверяет, что шаблон вида kind загружен
func (m *Mailer) CheckTemplate(kind Kind) error {
	if !m.templates.Has(kind) {
		return fmt.Errorf("%w: %s", ErrTemplateNotFound, kind)
	}
	return nil
}

func (m *Mailer) CheckReminderTemplate() error {
	return m.CheckTemplate(KindReminder)
}

func (m *Mailer) CheckCompletionTemplate() error {
	return m.CheckTemplate(KindCompletion)
}

// SendConfirmation отправляет подтверждение бронирования
func (m *Mailer) SendConfirmation(ctx context.Context, d *domain.AppointmentDetails) error {
	return m.send(ctx, KindConfirmation, d)
}

// SendReminder отправляет напоминание о записи
func (m *Mailer) SendReminder(ctx context.Context, d *domain.AppointmentDetails) error {
	return m.send(ctx, KindReminder, d)
}

// SendCompletion отправляет уведомление о завершении услуги
func (m *Mailer) SendCompletion(ctx context.Context, d *domain.AppointmentDetails) error {
	return m.send(ctx, KindCompletion, d)
}

func (m *Mailer) send(ctx context.Context, kind Kind, d *domain.AppointmentDetails) error {
	if !d.HasEmail() {
		return fmt.Errorf("%w: appointment %s", ErrNoRecipient, d.Reference)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	subject, body, err := m.templates.Render(kind, m.emailData(d))
	if err != nil {
		return err
	}

	if err := m.sender.Send(d.CustomerEmail, subject, body); err != nil {
		return fmt.Errorf("%w: %s to %s: %w", ErrSend, kind, d.CustomerEmail, err)
	}

	m.logger.Info("mailer: %s sent for appointment %s to %s", kind, d.Reference, d.CustomerEmail)
	return nil
}

func (m *Mailer) emailData(d *domain.AppointmentDetails) EmailData {
	notes := ""
	if d.Notes != nil {
		notes = *d.Notes
	}
	return EmailData{
		Reference:     d.Reference,
		CustomerName:  d.CustomerName,
		CustomerEmail: d.CustomerEmail,
		ServiceName:   d.ServiceName,
		BookingDate:   d.Start.Format(domain.EmailDateFormat),
		Duration:      d.DurationHours,
		Price:         d.Price,
		Currency:      d.Currency,
		Notes:         notes,
		PortalURL:     fmt.Sprintf("%s/my/appointments/%d", m.portalURL, d.ID),
	}
}

package mailer

import (
	"fmt"
	"net/smtp"
	"strings"
)

// Sender транспорт отправки писем
type Sender interface {
	Send(to, subject, body string) error
}

// SMTPSender отправляет письма через SMTP. Если указан username, используется PLAIN-аутентификация
type SMTPSender struct {
	addr string
	from string
	auth smtp.Auth
}

// NewSMTPSender создает SMTP отправителя
func NewSMTPSender(host string, port int, username, password, from string) *SMTPSender {
	host = strings.TrimSpace(host)
	from = strings.TrimSpace(from)
	if from == "" {
		from = "no-reply@booking.local"
	}

	var auth smtp.Auth
	if username != "" {
		auth = smtp.PlainAuth("", username, password, host)
	}

	return &SMTPSender{
		addr: fmt.Sprintf("%s:%d", host, port),
		from: from,
		auth: auth,
	}
}

func (s *SMTPSender) Send(to, subject, body string) error {
	msg := buildMessage(s.from, to, subject, body)
	return smtp.SendMail(s.addr, s.auth, s.from, []string{to}, []byte(msg))
}

func buildMessage(from, to, subject, body string) string {
	return fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n%s\r\n",
		from,
		to,
		subject,
		body,
	)
}

package mailer

import "errors"

var (
	// ErrTemplateNotFound возвращается, когда шаблон письма не загружен
	ErrTemplateNotFound = errors.New("mailer: template not found")

	// ErrNoRecipient возвращается, когда у клиента нет e-mail
	ErrNoRecipient = errors.New("mailer: customer has no email")

	// ErrRender возвращается при ошибке рендера шаблона
	ErrRender = errors.New("mailer: failed to render template")

	// ErrSend возвращается при ошибке отправки письма
	ErrSend = errors.New("mailer: failed to send email")
)

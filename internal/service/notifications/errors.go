package notifications

import "errors"

var (
	// ErrTemplateNotFound шаблон письма не загружен, проход не запускается
	ErrTemplateNotFound = errors.New("notifications: template not found")

	// ErrNoEmail у клиента нет адреса, письмо не отправляется
	ErrNoEmail = errors.New("notifications: customer has no email")

	// ErrInternal внутренняя ошибка планировщика
	ErrInternal = errors.New("notifications: internal error")
)

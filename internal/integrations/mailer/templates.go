package mailer

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"
)

// Kind вид письма, совпадает с именем файла шаблона без расширения
type Kind string

const (
	KindConfirmation Kind = "booking_confirmation"
	KindReminder     Kind = "appointment_reminder"
	KindCompletion   Kind = "completion_notification"
)

var allKinds = []Kind{KindConfirmation, KindReminder, KindCompletion}

const subjectPrefix = "Subject:"

// Templates набор загруженных шаблонов писем.
// Первая строка шаблона - тема письма ("Subject: ..."), остальное - тело
type Templates struct {
	byKind map[Kind]*template.Template
}

// LoadTemplates загружает шаблоны <kind>.tmpl из каталога.
// Отсутствующий файл не ошибка: письма этого вида будут отклоняться с ErrTemplateNotFound
func LoadTemplates(dir string) (*Templates, error) {
	t := &Templates{byKind: make(map[Kind]*template.Template)}

	for _, kind := range allKinds {
		path := filepath.Join(dir, string(kind)+".tmpl")
		raw, err := os.ReadFile(path)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("mailer: read template %s: %w", path, err)
		}
		if err := t.Add(kind, string(raw)); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// Add регистрирует шаблон из строки
func (t *Templates) Add(kind Kind, text string) error {
	tmpl, err := template.New(string(kind)).Option("missingkey=error").Parse(text)
	if err != nil {
		return fmt.Errorf("mailer: parse template %s: %w", kind, err)
	}
	t.byKind[kind] = tmpl
	return nil
}

// Has возвращает true, если шаблон загружен
func (t *Templates) Has(kind Kind) bool {
	_, ok := t.byKind[kind]
	return ok
}

// Render возвращает тему и тело письма
func (t *Templates) Render(kind Kind, data interface{}) (subject, body string, err error) {
	tmpl, ok := t.byKind[kind]
	if !ok {
		return "", "", fmt.Errorf("%w: %s", ErrTemplateNotFound, kind)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", "", fmt.Errorf("%w: %s: %w", ErrRender, kind, err)
	}

	text := strings.TrimLeft(buf.String(), "\r\n")
	first, rest, _ := strings.Cut(text, "\n")
	first = strings.TrimSpace(first)
	if !strings.HasPrefix(first, subjectPrefix) {
		return "", "", fmt.Errorf("%w: %s: first line must start with %q", ErrRender, kind, subjectPrefix)
	}

	subject = strings.TrimSpace(strings.TrimPrefix(first, subjectPrefix))
	body = strings.TrimSpace(rest)
	return subject, body, nil
}

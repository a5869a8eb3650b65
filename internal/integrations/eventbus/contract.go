package eventbus

import (
	"context"

	"github.com/segmentio/kafka-go"

	"github.com/TruongDHiep/Booking-Service-System/internal/infra/storage/timeline"
)

// OutboxStore источник неопубликованных событий
type OutboxStore interface {
	FetchUnpublished(ctx context.Context, limit int) ([]timeline.Record, error)
	MarkPublished(ctx context.Context, ids []int64) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// MessageWriter поддерживает *kafka.Writer
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

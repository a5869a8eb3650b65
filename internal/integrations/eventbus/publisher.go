package eventbus

import (
	"context"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

// Config настройки публикатора outbox
type Config struct {
	Brokers   []string
	Topic     string
	PollEvery time.Duration
	BatchSize int
}

// Publisher переносит события из outbox_events в Kafka.
// Выборка, отправка и отметка о публикации выполняются в одной транзакции:
// при ошибке отправки события остаются неопубликованными и уйдут на следующем тике
type Publisher struct {
	store     OutboxStore
	txManager TransactionManager
	writer    MessageWriter
	logger    Logger
	pollEvery time.Duration
	batchSize int
}

// NewKafkaWriter создаёт writer для топика событий
func NewKafkaWriter(cfg Config) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
	}
}

// NewPublisher создает публикатор
func NewPublisher(store OutboxStore, txManager TransactionManager, writer MessageWriter, logger Logger, cfg Config) *Publisher {
	if cfg.PollEvery <= 0 {
		cfg.PollEvery = 2 * time.Second
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 50
	}
	return &Publisher{
		store:     store,
		txManager: txManager,
		writer:    writer,
		logger:    logger,
		pollEvery: cfg.PollEvery,
		batchSize: cfg.BatchSize,
	}
}

// Run публикует события каждые pollEvery до отмены ctx
func (p *Publisher) Run(ctx context.Context) {
	defer func() {
		if err := p.writer.Close(); err != nil {
			p.logger.Warn("eventbus: close writer: %v", err)
		}
	}()

	ticker := time.NewTicker(p.pollEvery)
	defer ticker.Stop()

	p.logger.Info("eventbus: outbox publisher started (every %s, batch %d)", p.pollEvery, p.batchSize)
	for {
		select {
		case <-ctx.Done():
			p.logger.Info("eventbus: outbox publisher stopped")
			return
		case <-ticker.C:
			if _, err := p.PublishBatch(ctx); err != nil {
				p.logger.Error("eventbus: outbox publish failed: %v", err)
			}
		}
	}
}

// PublishBatch публикует одну пачку событий и возвращает их количество
func (p *Publisher) PublishBatch(ctx context.Context) (int, error) {
	published := 0

	err := p.txManager.Do(ctx, func(ctx context.Context) error {
		records, err := p.store.FetchUnpublished(ctx, p.batchSize)
		if err != nil {
			return err
		}
		if len(records) == 0 {
			return nil
		}

		msgs := make([]kafka.Message, 0, len(records))
		ids := make([]int64, 0, len(records))
		for _, r := range records {
			msgs = append(msgs, kafka.Message{
				Key:   []byte(r.AggregateID),
				Value: r.Payload,
				Headers: []kafka.Header{
					{Key: "event_id", Value: []byte(r.EventID)},
					{Key: "event_type", Value: []byte(r.EventType)},
					{Key: "aggregate_type", Value: []byte(r.AggregateType)},
				},
				Time: r.CreatedAt,
			})
			ids = append(ids, r.ID)
		}

		if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
			return fmt.Errorf("eventbus: write %d messages: %w", len(msgs), err)
		}
		if err := p.store.MarkPublished(ctx, ids); err != nil {
			return err
		}
		published = len(ids)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return published, nil
}

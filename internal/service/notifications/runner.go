package notifications

import (
	"context"
	"time"
)

const defaultRunnerInterval = 5 * time.Minute

// Runner периодически запускает оба прохода планировщика
type Runner struct {
	passes   Passes
	interval time.Duration
	logger   Logger
}

// NewRunner создает Runner. Интервал <= 0 заменяется значением по умолчанию
func NewRunner(passes Passes, interval time.Duration, logger Logger) *Runner {
	if interval <= 0 {
		interval = defaultRunnerInterval
	}
	return &Runner{
		passes:   passes,
		interval: interval,
		logger:   logger,
	}
}

// Run блокируется до отмены контекста
func (r *Runner) Run(ctx context.Context) {
	r.logger.Info("notifications runner started, interval=%s", r.interval)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("notifications runner stopped")
			return
		case <-ticker.C:
			r.RunOnce(ctx)
		}
	}
}

// RunOnce выполняет проход напоминаний, затем проход уведомлений о завершении.
// Ошибка одного прохода не мешает второму
func (r *Runner) RunOnce(ctx context.Context) (reminders, completions int) {
	reminders, err := r.passes.ReminderPass(ctx)
	if err != nil {
		r.logger.Error("notifications runner: reminder pass failed: %v", err)
	}

	completions, err = r.passes.CompletionPass(ctx)
	if err != nil {
		r.logger.Error("notifications runner: completion pass failed: %v", err)
	}

	return reminders, completions
}

package notifications

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"github.com/TruongDHiep/Booking-Service-System/internal/domain"
	apptRepo "github.com/TruongDHiep/Booking-Service-System/internal/infra/storage/appointment"
)

const (
	kindReminder   = "reminder"
	kindCompletion = "completion"

	resultSent    = "sent"
	resultSkipped = "skipped"
	resultFailed  = "failed"
)

const (
	defaultReminderWindow   = 24 * time.Hour
	defaultCompletionWindow = 24 * time.Hour
)

// Config параметры проходов планировщика
type Config struct {
	ReminderWindow    time.Duration
	CompletionWindow  time.Duration
	MaxPerPass        int
	PassTimeout       time.Duration
	SendRatePerSecond float64
	SendBurst         int
}

// delivery описывает один вид уведомления: как захватить запись, отправить письмо и выставить флаг
type delivery struct {
	kind  string
	claim func(ctx context.Context, id int64) (*domain.AppointmentDetails, error)
	send  func(ctx context.Context, d *domain.AppointmentDetails) error
	mark  func(ctx context.Context, id int64) error
}

// Scheduler рассылает напоминания и уведомления о завершении.
// Каждое письмо отправляется не более одного раза: захват строки, отправка и флаг в одной транзакции
type Scheduler struct {
	repo         AppointmentRepository
	notifier     Notifier
	txManager    TransactionManager
	recorder     Recorder
	timeProvider TimeProvider
	limiter      *rate.Limiter
	logger       Logger
	cfg          Config

	reminder   delivery
	completion delivery
}

// NewScheduler создает планировщик уведомлений
func NewScheduler(
	repo AppointmentRepository,
	notifier Notifier,
	txManager TransactionManager,
	recorder Recorder,
	logger Logger,
	cfg Config,
) *Scheduler {
	if cfg.ReminderWindow <= 0 {
		cfg.ReminderWindow = defaultReminderWindow
	}
	if cfg.CompletionWindow <= 0 {
		cfg.CompletionWindow = defaultCompletionWindow
	}

	limit := rate.Inf
	if cfg.SendRatePerSecond > 0 {
		limit = rate.Limit(cfg.SendRatePerSecond)
	}
	burst := cfg.SendBurst
	if burst <= 0 {
		burst = 1
	}

	s := &Scheduler{
		repo:         repo,
		notifier:     notifier,
		txManager:    txManager,
		recorder:     recorder,
		timeProvider: &RealTimeProvider{},
		limiter:      rate.NewLimiter(limit, burst),
		logger:       logger,
		cfg:          cfg,
	}
	s.reminder = delivery{
		kind:  kindReminder,
		claim: repo.ClaimForReminder,
		send:  notifier.SendReminder,
		mark:  repo.MarkReminderSent,
	}
	s.completion = delivery{
		kind:  kindCompletion,
		claim: repo.ClaimForCompletion,
		send:  notifier.SendCompletion,
		mark:  repo.MarkCompletionSent,
	}
	return s
}

// ReminderPass отправляет напоминания по подтверждённым записям, начинающимся в ближайшие сутки.
// Возвращает число отправленных писем
func (s *Scheduler) ReminderPass(ctx context.Context) (int, error) {
	if err := s.notifier.CheckReminderTemplate(); err != nil {
		s.logger.Error("ReminderPass: %v", err)
		return 0, fmt.Errorf("%w: %v", ErrTemplateNotFound, err)
	}

	ctx, cancel := s.passContext(ctx)
	defer cancel()

	now := s.timeProvider.Now()
	candidates, err := s.repo.FindUpcomingConfirmed(ctx, now, now.Add(s.cfg.ReminderWindow), s.cfg.MaxPerPass)
	if err != nil {
		s.logger.Error("ReminderPass: failed to find candidates: %v", err)
		return 0, fmt.Errorf("%w: ReminderPass - find candidates: %v", ErrInternal, err)
	}

	return s.runPass(ctx, "ReminderPass", s.reminder, candidates), nil
}

// CompletionPass отправляет уведомления по записям, завершённым за последние сутки
func (s *Scheduler) CompletionPass(ctx context.Context) (int, error) {
	if err := s.notifier.CheckCompletionTemplate(); err != nil {
		s.logger.Error("CompletionPass: %v", err)
		return 0, fmt.Errorf("%w: %v", ErrTemplateNotFound, err)
	}

	ctx, cancel := s.passContext(ctx)
	defer cancel()

	now := s.timeProvider.Now()
	candidates, err := s.repo.FindRecentlyCompleted(ctx, now.Add(-s.cfg.CompletionWindow), now, s.cfg.MaxPerPass)
	if err != nil {
		s.logger.Error("CompletionPass: failed to find candidates: %v", err)
		return 0, fmt.Errorf("%w: CompletionPass - find candidates: %v", ErrInternal, err)
	}

	return s.runPass(ctx, "CompletionPass", s.completion, candidates), nil
}

// SendCompletion прямая отправка уведомления о завершении сразу после перехода в done.
// Захват тот же, что и в CompletionPass, поэтому письмо не уйдёт дважды.
// false без ошибки: письмо уже отправлено, запись занята или у клиента нет адреса
func (s *Scheduler) SendCompletion(ctx context.Context, appointmentID int64) (bool, error) {
	if err := s.notifier.CheckCompletionTemplate(); err != nil {
		s.logger.Error("SendCompletion: %v", err)
		return false, fmt.Errorf("%w: %v", ErrTemplateNotFound, err)
	}

	sent, err := s.deliver(ctx, s.completion, appointmentID)
	if errors.Is(err, ErrNoEmail) {
		s.logger.Warn("SendCompletion: appointment id=%d has no customer email, skipping", appointmentID)
		s.record(kindCompletion, resultSkipped)
		return false, nil
	}
	if err != nil {
		s.record(kindCompletion, resultFailed)
		return false, err
	}

	if sent {
		s.record(kindCompletion, resultSent)
	} else {
		s.record(kindCompletion, resultSkipped)
	}
	return sent, nil
}

func (s *Scheduler) runPass(ctx context.Context, op string, d delivery, candidates []*domain.AppointmentDetails) int {
	sent := 0
	for _, c := range candidates {
		if err := ctx.Err(); err != nil {
			s.logger.Warn("%s: pass interrupted after %d sent: %v", op, sent, err)
			break
		}

		if !c.HasEmail() {
			s.logger.Warn("%s: appointment %s has no customer email, skipping", op, c.Reference)
			s.record(d.kind, resultSkipped)
			continue
		}

		ok, err := s.deliver(ctx, d, c.ID)
		switch {
		case err != nil:
			s.logger.Error("%s: failed to notify appointment %s: %v", op, c.Reference, err)
			s.record(d.kind, resultFailed)
		case ok:
			sent++
			s.record(d.kind, resultSent)
		default:
			s.record(d.kind, resultSkipped)
		}
	}

	s.logger.Info("%s: %d of %d candidates notified", op, sent, len(candidates))
	return sent
}

// deliver захватывает запись, отправляет письмо и выставляет флаг в одной транзакции.
// Ошибка отправки откатывает транзакцию, флаг остаётся false и запись попадёт в следующий проход
func (s *Scheduler) deliver(ctx context.Context, d delivery, id int64) (bool, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return false, fmt.Errorf("%w: %s - rate limiter: %v", ErrInternal, d.kind, err)
	}

	sent := false
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		details, err := d.claim(ctx, id)
		if err != nil {
			if errors.Is(err, apptRepo.ErrNotClaimable) {
				return nil
			}
			return fmt.Errorf("%w: %s - claim appointment id=%d: %v", ErrInternal, d.kind, id, err)
		}

		if !details.HasEmail() {
			return ErrNoEmail
		}

		if err := d.send(ctx, details); err != nil {
			return fmt.Errorf("%w: %s - send: %v", ErrInternal, d.kind, err)
		}

		if err := d.mark(ctx, id); err != nil {
			return fmt.Errorf("%w: %s - mark sent: %v", ErrInternal, d.kind, err)
		}

		sent = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return sent, nil
}

func (s *Scheduler) passContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.cfg.PassTimeout > 0 {
		return context.WithTimeout(ctx, s.cfg.PassTimeout)
	}
	return context.WithCancel(ctx)
}

func (s *Scheduler) record(kind, result string) {
	if s.recorder != nil {
		s.recorder.RecordNotification(kind, result)
	}
}

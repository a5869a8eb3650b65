package appointments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/TruongDHiep/Booking-Service-System/internal/domain"
	apptRepo "github.com/TruongDHiep/Booking-Service-System/internal/infra/storage/appointment"
	"github.com/TruongDHiep/Booking-Service-System/internal/service/appointments/models"
)

// Option настройка сервиса
type Option func(*transitioner)

// WithStrictTransitions включает строгий режим: недопустимый переход возвращает ErrInvalidTransition
func WithStrictTransitions(strict bool) Option {
	return func(t *transitioner) {
		t.strict = strict
	}
}

// WithCustomerCancelNotice задаёт, за сколько до начала клиент ещё может отменить запись.
// 0 снимает ограничение
func WithCustomerCancelNotice(d time.Duration) Option {
	return func(t *transitioner) {
		t.cancelNotice = d
	}
}

// Service сервис жизненного цикла записей для клиентов и операторов
type Service struct {
	t          *transitioner
	completion CompletionSender
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	repo AppointmentRepository,
	sink EventSink,
	txManager TransactionManager,
	completion CompletionSender,
	recorder Recorder,
	logger Logger,
	opts ...Option,
) *Service {
	return &Service{
		t:          newTransitioner(repo, sink, txManager, recorder, logger, opts),
		completion: completion,
	}
}

func newTransitioner(
	repo AppointmentRepository,
	sink EventSink,
	txManager TransactionManager,
	recorder Recorder,
	logger Logger,
	opts []Option,
) *transitioner {
	t := &transitioner{
		repo:         repo,
		sink:         sink,
		txManager:    txManager,
		recorder:     recorder,
		logger:       logger,
		timeProvider: &RealTimeProvider{},
		cancelNotice: domain.DefaultCustomerCancelNotice,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// GetByID получает запись по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.AppointmentResponse, error) {
	s.t.logger.Info("GetByID: fetching appointment id=%d", id)

	appt, err := s.t.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			s.t.logger.Warn("GetByID: appointment id=%d not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.t.logger.Error("GetByID: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainAppointment(appt), nil
}

// Confirm переводит черновик в confirmed
func (s *Service) Confirm(ctx context.Context, id int64) (*models.TransitionResponse, error) {
	return s.t.apply(ctx, id, domain.TransitionConfirm)
}

// Complete переводит подтверждённую запись в done и сразу отправляет уведомление о завершении.
// Ошибка отправки не отменяет переход: она логируется, а пакетный проход повторит отправку
func (s *Service) Complete(ctx context.Context, id int64) (*models.TransitionResponse, error) {
	resp, err := s.t.apply(ctx, id, domain.TransitionComplete)
	if err != nil || !resp.Changed {
		return resp, err
	}

	if s.completion != nil {
		sent, err := s.completion.SendCompletion(ctx, id)
		switch {
		case err != nil:
			s.t.logger.Error("Complete: completion notice for %s failed: %v", resp.Appointment.Reference, err)
		case sent:
			resp.Appointment.CompletionSent = true
		}
	}

	return resp, nil
}

// Cancel отменяет черновик или подтверждённую запись по запросу оператора. Для done и cancel - no-op
func (s *Service) Cancel(ctx context.Context, id int64) (*models.TransitionResponse, error) {
	return s.t.apply(ctx, id, domain.TransitionCancel)
}

// CustomerCancel отмена с портала: разрешена не позже чем за cancelNotice до начала.
// Позднюю отмену возвращает ErrCancellationTooLate независимо от строгого режима
func (s *Service) CustomerCancel(ctx context.Context, id int64) (*models.TransitionResponse, error) {
	return s.t.applyWith(ctx, id, domain.TransitionCancel, domain.NoteCancelledByCustomer, s.t.checkCancelNotice)
}

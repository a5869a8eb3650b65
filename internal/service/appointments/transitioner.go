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

// transitioner общая логика смены состояния для Service и AdminService
type transitioner struct {
	repo      AppointmentRepository
	sink      EventSink
	txManager TransactionManager
	recorder  Recorder
	logger    Logger
	strict    bool

	timeProvider TimeProvider
	cancelNotice time.Duration
}

// guard дополнительная проверка допустимого перехода, выполняется под блокировкой строки
type guard func(appt *domain.Appointment) error

// apply выполняет переход в транзакции: чтение с блокировкой, условный UPDATE, заметка и событие.
// Недопустимый переход - no-op (или ErrInvalidTransition в строгом режиме)
func (t *transitioner) apply(ctx context.Context, id int64, tr domain.Transition) (*models.TransitionResponse, error) {
	return t.applyWith(ctx, id, tr, domain.TransitionNote(tr), nil)
}

// applyWith как apply, но с собственной заметкой и проверкой check (может быть nil)
func (t *transitioner) applyWith(ctx context.Context, id int64, tr domain.Transition, note string, check guard) (*models.TransitionResponse, error) {
	var (
		result  *domain.Appointment
		from    domain.AppointmentState
		changed bool
	)

	err := t.txManager.Do(ctx, func(ctx context.Context) error {
		appt, err := t.repo.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
				return ErrAppointmentNotFound
			}
			return fmt.Errorf("%w: %s - get appointment: %w", ErrInternal, tr, err)
		}

		from = appt.State
		result = appt

		next, ok := domain.NextState(appt.State, tr)
		if !ok {
			if t.strict {
				return fmt.Errorf("%w: cannot %s appointment %s in state %s", ErrInvalidTransition, tr, appt.Reference, appt.State)
			}
			return nil
		}

		if check != nil {
			if err := check(appt); err != nil {
				return err
			}
		}

		if err := t.repo.UpdateState(ctx, id, appt.State, next); err != nil {
			if errors.Is(err, apptRepo.ErrStateConflict) {
				return ErrConcurrentUpdate
			}
			return fmt.Errorf("%w: %s - update state: %w", ErrInternal, tr, err)
		}
		appt.State = next

		if err := t.sink.OnTransition(ctx, appt, from, next, note); err != nil {
			return fmt.Errorf("%w: %s - record transition: %w", ErrInternal, tr, err)
		}

		changed = true
		return nil
	})

	if err != nil {
		switch {
		case errors.Is(err, ErrAppointmentNotFound):
			t.logger.Warn("%s: appointment id=%d not found", tr, id)
		case errors.Is(err, ErrInvalidTransition), errors.Is(err, ErrConcurrentUpdate), errors.Is(err, ErrCancellationTooLate):
			t.logger.Warn("%s: appointment id=%d: %v", tr, id, err)
		default:
			t.logger.Error("%s: appointment id=%d: %v", tr, id, err)
		}
		return nil, err
	}

	if !changed {
		t.logger.Info("%s: appointment %s in state %s, transition skipped", tr, result.Reference, from)
	} else {
		if t.recorder != nil {
			t.recorder.RecordTransition(string(from), string(result.State))
		}
		t.logger.Info("%s: appointment %s moved %s -> %s", tr, result.Reference, from, result.State)
	}

	return &models.TransitionResponse{
		Appointment: models.FromDomainAppointment(result),
		Changed:     changed,
		From:        string(from),
		To:          string(result.State),
	}, nil
}

// checkCancelNotice отклоняет отмену, если до начала осталось меньше cancelNotice
func (t *transitioner) checkCancelNotice(appt *domain.Appointment) error {
	left := appt.Start.Sub(t.timeProvider.Now())
	if left < t.cancelNotice {
		return fmt.Errorf("%w: appointment %s starts in %s, cancellation closes %s before start",
			ErrCancellationTooLate, appt.Reference, left.Round(time.Minute), t.cancelNotice)
	}
	return nil
}

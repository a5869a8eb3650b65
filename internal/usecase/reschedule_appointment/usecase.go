package reschedule_appointment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/TruongDHiep/Booking-Service-System/internal/domain"
	apptRepo "github.com/TruongDHiep/Booking-Service-System/internal/infra/storage/appointment"
	"github.com/TruongDHiep/Booking-Service-System/internal/infra/storage/catalog"
	"github.com/TruongDHiep/Booking-Service-System/internal/infra/storage/timeline"
	"github.com/TruongDHiep/Booking-Service-System/pkg/txmanager"
)

const noteRescheduled = "Appointment rescheduled from %s to %s (UTC)"

// UseCase use case для переноса записи
type UseCase struct {
	apptRepo        AppointmentRepository
	catalog         ServiceCatalog
	checker         AvailabilityChecker
	timeline        Timeline
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
	defaultTimezone string
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	apptRepo AppointmentRepository,
	catalog ServiceCatalog,
	checker AvailabilityChecker,
	timeline Timeline,
	txManager TransactionManager,
	logger Logger,
	defaultTimezone string,
) *UseCase {
	return &UseCase{
		apptRepo:        apptRepo,
		catalog:         catalog,
		checker:         checker,
		timeline:        timeline,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
		defaultTimezone: defaultTimezone,
	}
}

// Execute переносит запись на новое время и/или меняет заметки.
// Сама запись не считается конфликтом для нового интервала
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RescheduleAppointment: id=%d, date=%s, tz=%s", req.AppointmentID, req.BookingDate, req.Timezone)

	if req.AppointmentID <= 0 {
		return nil, fmt.Errorf("%w: appointment id must be positive", ErrInvalidInput)
	}
	if strings.TrimSpace(req.BookingDate) == "" && req.Notes == nil {
		return nil, fmt.Errorf("%w: nothing to update", ErrInvalidInput)
	}
	if req.Notes != nil && utf8.RuneCountInString(*req.Notes) > domain.MaxNotesLength {
		return nil, fmt.Errorf("%w: notes are longer than %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	// Новое начало в UTC, если время меняется
	var newStart *time.Time
	if strings.TrimSpace(req.BookingDate) != "" {
		loc, err := domain.ResolveLocation(req.Timezone, uc.defaultTimezone)
		if err != nil {
			uc.logger.Warn("RescheduleAppointment: unknown timezone %q", req.Timezone)
			return nil, fmt.Errorf("%w: %s", ErrInvalidTimezone, req.Timezone)
		}

		start, err := domain.ParseLocalDateTime(req.BookingDate, loc)
		if err != nil {
			uc.logger.Warn("RescheduleAppointment: invalid date %q: %v", req.BookingDate, err)
			return nil, fmt.Errorf("%w: expected format YYYY-MM-DDTHH:MM", ErrInvalidDate)
		}

		if start.Before(uc.timeProvider.Now()) {
			uc.logger.Warn("RescheduleAppointment: new start %s is in the past", start.Format(domain.LocalDateTimeFormat))
			return nil, ErrStartInPast
		}
		newStart = &start
	}

	var result *domain.Appointment

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 1. Загружаем запись с блокировкой
		appt, err := uc.apptRepo.GetByID(txCtx, req.AppointmentID)
		if err != nil {
			if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
				return ErrAppointmentNotFound
			}
			return fmt.Errorf("%w: failed to get appointment: %w", ErrInternal, err)
		}

		if !appt.CanBeRescheduled() {
			uc.logger.Warn("RescheduleAppointment: appointment %s is %s", appt.Reference, appt.State)
			return ErrCannotReschedule
		}

		start, end := appt.Start, appt.End
		notes := appt.Notes
		if req.Notes != nil {
			notes = req.Notes
		}

		// 2. Проверяем ёмкость нового интервала
		if newStart != nil && !newStart.Equal(appt.Start) {
			svc, err := uc.catalog.GetByID(txCtx, appt.ServiceID)
			if err != nil {
				if errors.Is(err, catalog.ErrServiceNotFound) {
					return ErrServiceNotFound
				}
				return fmt.Errorf("%w: failed to get service: %w", ErrInternal, err)
			}
			if err := svc.Validate(); err != nil {
				uc.logger.Error("RescheduleAppointment: service id=%d is misconfigured: %v", svc.ID, err)
				return fmt.Errorf("%w: %v", ErrInternal, err)
			}

			if err := uc.apptRepo.LockService(txCtx, svc.ID); err != nil {
				return fmt.Errorf("%w: failed to lock service: %w", ErrInternal, err)
			}

			start = *newStart
			end = domain.EndFor(start, svc)

			decision, err := uc.checker.CheckService(txCtx, svc, start, end, &appt.ID)
			if err != nil {
				return fmt.Errorf("%w: failed to check availability: %w", ErrInternal, err)
			}
			if !decision.Admitted {
				uc.logger.Warn("RescheduleAppointment: slot not available for %s, %d/%d taken",
					appt.Reference, decision.Booked, decision.Capacity)
				return fmt.Errorf("%w: %w", ErrSlotNotAvailable, decision.Err())
			}
		}

		// 3. Сохраняем
		if err := uc.apptRepo.Reschedule(txCtx, appt.ID, start, end, notes); err != nil {
			if errors.Is(err, apptRepo.ErrStateConflict) {
				return ErrCannotReschedule
			}
			return fmt.Errorf("%w: failed to reschedule: %w", ErrInternal, err)
		}

		if !start.Equal(appt.Start) {
			body := fmt.Sprintf(noteRescheduled,
				appt.Start.Format(domain.LocalDateTimeFormat), start.Format(domain.LocalDateTimeFormat))
			if err := uc.timeline.AddNote(txCtx, appt.ID, timeline.SubjectUpdated, body); err != nil {
				return fmt.Errorf("%w: failed to add note: %w", ErrInternal, err)
			}
		}

		appt.Start, appt.End, appt.Notes = start, end, notes
		result = appt
		return nil
	})

	if err != nil {
		if errors.Is(err, txmanager.ErrSerializationFailure) {
			uc.logger.Warn("RescheduleAppointment: serialization retries exhausted for id=%d: %v", req.AppointmentID, err)
			return nil, fmt.Errorf("%w: slot was taken concurrently, please select another time", ErrSlotNotAvailable)
		}
		if errors.Is(err, ErrInternal) {
			uc.logger.Error("RescheduleAppointment: transaction failed: %v", err)
		}
		return nil, err
	}

	uc.logger.Info("RescheduleAppointment: appointment %s now %s - %s",
		result.Reference, result.Start.Format(time.RFC3339), result.End.Format(time.RFC3339))

	return &Response{
		ID:        result.ID,
		Reference: result.Reference,
		State:     string(result.State),
		Start:     result.Start,
		End:       result.End,
		Notes:     result.Notes,
	}, nil
}

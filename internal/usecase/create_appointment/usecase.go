package create_appointment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/TruongDHiep/Booking-Service-System/internal/domain"
	"github.com/TruongDHiep/Booking-Service-System/internal/infra/storage/catalog"
	"github.com/TruongDHiep/Booking-Service-System/pkg/txmanager"
)

// Config параметры приёма записей
type Config struct {
	DefaultTimezone string
	ReferencePrefix string
}

// UseCase use case для создания записи
type UseCase struct {
	customers    CustomerDirectory
	catalog      ServiceCatalog
	apptRepo     AppointmentRepository
	checker      AvailabilityChecker
	sink         EventSink
	notifier     Notifier
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
	cfg          Config
}

// NewUseCase создает новый экземпляр use case. notifier может быть nil
func NewUseCase(
	customers CustomerDirectory,
	catalog ServiceCatalog,
	apptRepo AppointmentRepository,
	checker AvailabilityChecker,
	sink EventSink,
	notifier Notifier,
	txManager TransactionManager,
	logger Logger,
	cfg Config,
) *UseCase {
	if cfg.ReferencePrefix == "" {
		cfg.ReferencePrefix = domain.DefaultReferencePrefix
	}
	return &UseCase{
		customers:    customers,
		catalog:      catalog,
		apptRepo:     apptRepo,
		checker:      checker,
		sink:         sink,
		notifier:     notifier,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
		cfg:          cfg,
	}
}

// Execute выполняет use case создания записи.
// Проверка ёмкости и вставка идут в одной сериализуемой транзакции под блокировкой услуги
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: service=%d, email=%s, date=%s, tz=%s",
		req.ServiceID, req.CustomerEmail, req.BookingDate, req.Timezone)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Переводим локальное время клиента в UTC
	loc, err := domain.ResolveLocation(req.Timezone, uc.cfg.DefaultTimezone)
	if err != nil {
		uc.logger.Warn("CreateAppointment: unknown timezone %q", req.Timezone)
		return nil, fmt.Errorf("%w: %s", ErrInvalidTimezone, req.Timezone)
	}

	start, err := domain.ParseLocalDateTime(req.BookingDate, loc)
	if err != nil {
		uc.logger.Warn("CreateAppointment: invalid date %q: %v", req.BookingDate, err)
		return nil, fmt.Errorf("%w: expected format YYYY-MM-DDTHH:MM", ErrInvalidDate)
	}

	if start.Before(uc.timeProvider.Now()) {
		uc.logger.Warn("CreateAppointment: start %s is in the past", start.Format(domain.LocalDateTimeFormat))
		return nil, ErrStartInPast
	}

	// 3. Получаем услугу
	svc, err := uc.catalog.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalog.ErrServiceNotFound) {
			uc.logger.Warn("CreateAppointment: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	if err := svc.Validate(); err != nil {
		uc.logger.Error("CreateAppointment: service id=%d is misconfigured: %v", svc.ID, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	end := domain.EndFor(start, svc)

	var created *domain.Appointment

	// 4. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Находим или создаём клиента
		customer, err := uc.customers.FindOrCreateByEmail(txCtx, req.CustomerEmail, strings.TrimSpace(req.CustomerName), strings.TrimSpace(req.CustomerPhone))
		if err != nil {
			return fmt.Errorf("%w: failed to find or create customer: %w", ErrInternal, err)
		}

		// 4.2. Блокируем услугу, чтобы параллельные брони шли по очереди
		if err := uc.apptRepo.LockService(txCtx, svc.ID); err != nil {
			return fmt.Errorf("%w: failed to lock service: %w", ErrInternal, err)
		}

		// 4.3. Проверяем ёмкость (пересекающиеся записи читаются FOR UPDATE)
		decision, err := uc.checker.CheckService(txCtx, svc, start, end, nil)
		if err != nil {
			return fmt.Errorf("%w: failed to check availability: %w", ErrInternal, err)
		}
		if !decision.Admitted {
			uc.logger.Warn("CreateAppointment: slot not available, %d/%d taken", decision.Booked, decision.Capacity)
			return fmt.Errorf("%w: %w", ErrSlotNotAvailable, decision.Err())
		}

		// 4.4. Номер записи
		seq, err := uc.apptRepo.NextReference(txCtx)
		if err != nil {
			return fmt.Errorf("%w: failed to allocate reference: %w", ErrInternal, err)
		}

		// 4.5. Сохраняем черновик
		appt, err := uc.apptRepo.Create(txCtx, &domain.Appointment{
			Reference:  domain.FormatReference(uc.cfg.ReferencePrefix, seq),
			CustomerID: customer.ID,
			ServiceID:  svc.ID,
			Start:      start,
			End:        end,
			State:      domain.StateDraft,
			Notes:      req.Notes,
		})
		if err != nil {
			return fmt.Errorf("%w: failed to create appointment: %w", ErrInternal, err)
		}

		// 4.6. Заметка о создании и событие
		if err := uc.sink.OnTransition(txCtx, appt, "", domain.StateDraft, fmt.Sprintf(domain.NoteCreated, svc.Name)); err != nil {
			return fmt.Errorf("%w: failed to record creation: %w", ErrInternal, err)
		}

		created = appt
		return nil
	})

	if err != nil {
		if errors.Is(err, txmanager.ErrSerializationFailure) {
			uc.logger.Warn("CreateAppointment: serialization retries exhausted for service id=%d: %v", svc.ID, err)
			return nil, fmt.Errorf("%w: slot was taken concurrently, please select another time", ErrSlotNotAvailable)
		}
		if !errors.Is(err, ErrSlotNotAvailable) {
			uc.logger.Error("CreateAppointment: transaction failed: %v", err)
		}
		return nil, err
	}

	uc.logger.Info("CreateAppointment: created appointment %s id=%d", created.Reference, created.ID)

	resp := &Response{
		ID:          created.ID,
		Reference:   created.Reference,
		CustomerID:  created.CustomerID,
		ServiceID:   created.ServiceID,
		ServiceName: svc.Name,
		Start:       created.Start,
		End:         created.End,
		State:       string(created.State),
		Notes:       created.Notes,
		CreatedAt:   created.CreatedAt,
	}

	// 5. Письмо-подтверждение. Ошибка не отменяет созданную запись
	resp.ConfirmationSent = uc.sendConfirmation(ctx, created)

	return resp, nil
}

func (uc *UseCase) sendConfirmation(ctx context.Context, appt *domain.Appointment) bool {
	if uc.notifier == nil {
		return false
	}

	details, err := uc.apptRepo.GetDetailsByID(ctx, appt.ID)
	if err != nil {
		uc.logger.Error("CreateAppointment: failed to load details for confirmation %s: %v", appt.Reference, err)
		return false
	}

	if err := uc.notifier.SendConfirmation(ctx, details); err != nil {
		uc.logger.Error("CreateAppointment: failed to send confirmation for %s: %v", appt.Reference, err)
		return false
	}
	return true
}

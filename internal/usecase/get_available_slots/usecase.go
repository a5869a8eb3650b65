package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/TruongDHiep/Booking-Service-System/internal/domain"
	"github.com/TruongDHiep/Booking-Service-System/internal/infra/storage/catalog"
)

const defaultSlotStepMinutes = 60

// Config рабочие часы и зона по умолчанию
type Config struct {
	DefaultTimezone string
	OpenHour        int
	CloseHour       int
	SlotStepMinutes int
}

// UseCase use case для получения сетки слотов на день
type UseCase struct {
	catalog      ServiceCatalog
	finder       AppointmentFinder
	timeProvider TimeProvider
	logger       Logger
	cfg          Config
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	catalog ServiceCatalog,
	finder AppointmentFinder,
	logger Logger,
	cfg Config,
) *UseCase {
	// Часы по умолчанию только если не задано закрытие, OpenHour = 0 означает полночь
	if cfg.CloseHour <= 0 {
		cfg.OpenHour, cfg.CloseHour = domain.DefaultOpenHour, domain.DefaultCloseHour
	}
	if cfg.OpenHour < 0 {
		cfg.OpenHour = 0
	}
	if cfg.SlotStepMinutes <= 0 {
		cfg.SlotStepMinutes = defaultSlotStepMinutes
	}
	return &UseCase{
		catalog:      catalog,
		finder:       finder,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
		cfg:          cfg,
	}
}

// Execute выполняет use case получения слотов.
// Записи дня читаются одним запросом, каждый слот оценивается в памяти
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: service=%d, date=%s, tz=%s", req.ServiceID, req.Date, req.Timezone)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	loc, err := domain.ResolveLocation(req.Timezone, uc.cfg.DefaultTimezone)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: unknown timezone %q", req.Timezone)
		return nil, fmt.Errorf("%w: %s", ErrInvalidTimezone, req.Timezone)
	}

	day, err := time.ParseInLocation(domain.DateFormat, req.Date, loc)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: invalid date %q: %v", req.Date, err)
		return nil, fmt.Errorf("%w: expected format YYYY-MM-DD", ErrInvalidDate)
	}

	// 2. Получаем услугу
	svc, err := uc.catalog.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalog.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	if err := svc.Validate(); err != nil {
		uc.logger.Error("GetAvailableSlots: service id=%d is misconfigured: %v", svc.ID, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	// 3. Генерируем слоты в зоне клиента
	starts := generateSlotStarts(day, loc, uc.cfg.OpenHour, uc.cfg.CloseHour, uc.cfg.SlotStepMinutes)

	resp := &Response{
		Date:          req.Date,
		ServiceID:     svc.ID,
		ServiceName:   svc.Name,
		DurationHours: svc.DurationHours,
		Timezone:      loc.String(),
		Slots:         []domain.AvailabilitySlot{},
	}
	if len(starts) == 0 {
		return resp, nil
	}

	// 4. Получаем записи, пересекающиеся с окном от первого начала до последнего конца
	windowStart := starts[0].UTC()
	windowEnd := domain.EndFor(starts[len(starts)-1].UTC(), svc)

	existing, err := uc.finder.FindConflicting(ctx, svc.ID, windowStart, windowEnd, nil)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	// 5. Оцениваем каждый слот
	resp.Slots = buildSlots(svc, starts, existing, uc.timeProvider.Now())

	uc.logger.Info("GetAvailableSlots: %d slots for service=%d on %s, %d existing appointments",
		len(resp.Slots), svc.ID, req.Date, len(existing))

	return resp, nil
}

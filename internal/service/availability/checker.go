package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/TruongDHiep/Booking-Service-System/internal/domain"
	"github.com/TruongDHiep/Booking-Service-System/internal/infra/storage/catalog"
)

const (
	msgSingleConflict = "Time slot unavailable! Conflicting appointment: %s. Service %q allows only %d booking at this time."
	msgFullyBooked    = "Time slot fully booked! Service %q capacity: %d/%d bookings. This slot is full, please select another time."
	msgBadCapacity    = "Service %q has invalid capacity %d and cannot be booked."
)

// Decision результат проверки доступности
type Decision struct {
	Admitted    bool
	Conflicting *domain.Appointment // первая конфликтующая запись, только при отказе
	Explanation string
	Booked      int // количество пересекающихся записей
	Capacity    int // 0 = без ограничений
}

// Err возвращает *ConflictError при отказе, иначе nil
func (d *Decision) Err() error {
	if d.Admitted {
		return nil
	}
	return &ConflictError{Conflicting: d.Conflicting, Explanation: d.Explanation}
}

// Checker проверяет, можно ли занять интервал услуги
type Checker struct {
	catalog  ServiceCatalog
	finder   AppointmentFinder
	recorder Recorder
}

// NewChecker создает проверку доступности. recorder может быть nil
func NewChecker(catalog ServiceCatalog, finder AppointmentFinder, recorder Recorder) *Checker {
	return &Checker{catalog: catalog, finder: finder, recorder: recorder}
}

// Check загружает услугу и проверяет интервал [start, end).
// excludeID исключает саму переносимую запись
func (c *Checker) Check(ctx context.Context, serviceID int64, start, end time.Time, excludeID *int64) (*Decision, error) {
	if err := domain.ValidateInterval(start, end); err != nil {
		return nil, err
	}

	svc, err := c.catalog.GetByID(ctx, serviceID)
	if err != nil {
		if errors.Is(err, catalog.ErrServiceNotFound) {
			return nil, fmt.Errorf("%w: id=%d", ErrServiceNotFound, serviceID)
		}
		return nil, fmt.Errorf("%w: Check - load service: %w", ErrInternal, err)
	}

	return c.CheckService(ctx, svc, start, end, excludeID)
}

// CheckService проверяет интервал для уже загруженной услуги.
// Внутри транзакции хранилище блокирует найденные записи
func (c *Checker) CheckService(ctx context.Context, svc *domain.Service, start, end time.Time, excludeID *int64) (*Decision, error) {
	if err := domain.ValidateInterval(start, end); err != nil {
		return nil, err
	}
	if err := svc.Validate(); err != nil {
		return nil, err
	}

	existing, err := c.finder.FindConflicting(ctx, svc.ID, start, end, excludeID)
	if err != nil {
		return nil, fmt.Errorf("%w: CheckService - find conflicting: %w", ErrInternal, err)
	}

	decision := Evaluate(svc, start, end, existing, excludeID)
	if c.recorder != nil {
		c.recorder.RecordAdmission(decision.Admitted)
	}
	return decision, nil
}

// Evaluate чистая часть проверки: считает записи из existing, пересекающиеся с [start, end).
// Отменённые записи и excludeID не учитываются
func Evaluate(svc *domain.Service, start, end time.Time, existing []*domain.Appointment, excludeID *int64) *Decision {
	var overlapping []*domain.Appointment
	for _, a := range existing {
		if !a.OccupiesCapacity() {
			continue
		}
		if excludeID != nil && a.ID == *excludeID {
			continue
		}
		if domain.Conflicts(start, end, a.Start, a.End) {
			overlapping = append(overlapping, a)
		}
	}

	decision := &Decision{
		Admitted: true,
		Booked:   len(overlapping),
		Capacity: svc.Capacity,
	}

	// Отрицательная ёмкость не допускает ничего
	if svc.Capacity < 0 {
		decision.Admitted = false
		decision.Explanation = fmt.Sprintf(msgBadCapacity, svc.Name, svc.Capacity)
		return decision
	}

	if svc.IsUnlimited() || len(overlapping) < svc.Capacity {
		return decision
	}

	decision.Admitted = false
	decision.Conflicting = overlapping[0]
	if len(overlapping) == 1 {
		decision.Explanation = fmt.Sprintf(msgSingleConflict, overlapping[0].Reference, svc.Name, svc.Capacity)
	} else {
		decision.Explanation = fmt.Sprintf(msgFullyBooked, svc.Name, len(overlapping), svc.Capacity)
	}
	return decision
}

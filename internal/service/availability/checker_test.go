package availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TruongDHiep/Booking-Service-System/internal/domain"
	"github.com/TruongDHiep/Booking-Service-System/internal/infra/storage/catalog"
	"github.com/TruongDHiep/Booking-Service-System/pkg/ptr"
)

type fakeCatalog map[int64]*domain.Service

func (f fakeCatalog) GetByID(_ context.Context, id int64) (*domain.Service, error) {
	svc, ok := f[id]
	if !ok {
		return nil, catalog.ErrServiceNotFound
	}
	return svc, nil
}

// fakeFinder возвращает все записи услуги, фильтрацию по интервалу делает Evaluate
type fakeFinder struct {
	appointments []*domain.Appointment
	err          error
}

func (f *fakeFinder) FindConflicting(_ context.Context, serviceID int64, start, end time.Time, excludeID *int64) ([]*domain.Appointment, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*domain.Appointment
	for _, a := range f.appointments {
		if a.ServiceID == serviceID {
			out = append(out, a)
		}
	}
	return out, nil
}

type countingRecorder struct {
	admitted, rejected int
}

func (r *countingRecorder) RecordAdmission(admitted bool) {
	if admitted {
		r.admitted++
	} else {
		r.rejected++
	}
}

var day = time.Date(2030, 6, 1, 0, 0, 0, 0, time.UTC)

func hour(h int) time.Time { return day.Add(time.Duration(h) * time.Hour) }

func appt(id int64, ref string, start time.Time, state domain.AppointmentState) *domain.Appointment {
	return &domain.Appointment{ID: id, Reference: ref, ServiceID: 1, Start: start, End: start.Add(time.Hour), State: state}
}

func TestCheck_ExclusiveServiceRejectsOverlap(t *testing.T) {
	svc := &domain.Service{ID: 1, Name: "Massage", DurationHours: 1, Capacity: 1}
	finder := &fakeFinder{appointments: []*domain.Appointment{appt(1, "APT/00001", hour(10), domain.StateConfirmed)}}
	rec := &countingRecorder{}
	c := NewChecker(fakeCatalog{1: svc}, finder, rec)

	d, err := c.Check(context.Background(), 1, hour(10).Add(30*time.Minute), hour(11).Add(30*time.Minute), nil)

	require.NoError(t, err)
	assert.False(t, d.Admitted)
	assert.Equal(t, "APT/00001", d.Conflicting.Reference)
	assert.Contains(t, d.Explanation, "APT/00001")
	assert.Contains(t, d.Explanation, "allows only 1 booking")

	var conflict *ConflictError
	require.ErrorAs(t, d.Err(), &conflict)
	assert.ErrorIs(t, d.Err(), ErrSlotNotAvailable)
	assert.Equal(t, 1, rec.rejected)
}

func TestCheck_AdjacentIsAdmitted(t *testing.T) {
	svc := &domain.Service{ID: 1, Name: "Massage", DurationHours: 1, Capacity: 1}
	finder := &fakeFinder{appointments: []*domain.Appointment{appt(1, "APT/00001", hour(10), domain.StateConfirmed)}}
	c := NewChecker(fakeCatalog{1: svc}, finder, nil)

	d, err := c.Check(context.Background(), 1, hour(11), hour(12), nil)

	require.NoError(t, err)
	assert.True(t, d.Admitted)
	assert.NoError(t, d.Err())
}

func TestCheck_CapacityThree(t *testing.T) {
	svc := &domain.Service{ID: 1, Name: "Yoga", DurationHours: 1, Capacity: 3}
	finder := &fakeFinder{appointments: []*domain.Appointment{
		appt(1, "APT/00001", hour(9), domain.StateConfirmed),
		appt(2, "APT/00002", hour(9), domain.StateDraft),
	}}
	c := NewChecker(fakeCatalog{1: svc}, finder, nil)

	d, err := c.Check(context.Background(), 1, hour(9), hour(10), nil)
	require.NoError(t, err)
	assert.True(t, d.Admitted)
	assert.Equal(t, 2, d.Booked)

	finder.appointments = append(finder.appointments, appt(3, "APT/00003", hour(9), domain.StateConfirmed))
	d, err = c.Check(context.Background(), 1, hour(9), hour(10), nil)
	require.NoError(t, err)
	assert.False(t, d.Admitted)
	assert.Contains(t, d.Explanation, "3/3 bookings")
	assert.Equal(t, int64(1), d.Conflicting.ID)
}

func TestCheck_UnlimitedCapacity(t *testing.T) {
	svc := &domain.Service{ID: 1, Name: "Open Gym", DurationHours: 1, Capacity: 0}
	var existing []*domain.Appointment
	for i := int64(1); i <= 50; i++ {
		existing = append(existing, appt(i, "APT", hour(9), domain.StateConfirmed))
	}
	c := NewChecker(fakeCatalog{1: svc}, &fakeFinder{appointments: existing}, nil)

	d, err := c.Check(context.Background(), 1, hour(9), hour(10), nil)
	require.NoError(t, err)
	assert.True(t, d.Admitted)
	assert.Equal(t, 50, d.Booked)
}

func TestCheck_CancelledAndExcludedIgnored(t *testing.T) {
	svc := &domain.Service{ID: 1, Name: "Massage", DurationHours: 1, Capacity: 1}
	finder := &fakeFinder{appointments: []*domain.Appointment{
		appt(1, "APT/00001", hour(10), domain.StateCancel),
		appt(2, "APT/00002", hour(10), domain.StateConfirmed),
	}}
	c := NewChecker(fakeCatalog{1: svc}, finder, nil)

	// перенос записи 2 на то же время не конфликтует сам с собой
	d, err := c.Check(context.Background(), 1, hour(10), hour(11), ptr.Ptr(int64(2)))
	require.NoError(t, err)
	assert.True(t, d.Admitted)
}

func TestCheck_Errors(t *testing.T) {
	svc := &domain.Service{ID: 1, Name: "Massage", DurationHours: 1, Capacity: 1}

	c := NewChecker(fakeCatalog{1: svc}, &fakeFinder{}, nil)
	_, err := c.Check(context.Background(), 1, hour(11), hour(10), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInterval)

	_, err = c.Check(context.Background(), 99, hour(10), hour(11), nil)
	assert.ErrorIs(t, err, ErrServiceNotFound)

	c = NewChecker(fakeCatalog{1: svc}, &fakeFinder{err: errors.New("db down")}, nil)
	_, err = c.Check(context.Background(), 1, hour(10), hour(11), nil)
	assert.ErrorIs(t, err, ErrInternal)
}

// Ни одна допущенная последовательность не превышает ёмкость
func TestEvaluate_CapacityInvariant(t *testing.T) {
	svc := &domain.Service{ID: 1, Name: "Yoga", DurationHours: 1, Capacity: 2}
	var booked []*domain.Appointment
	starts := []time.Time{hour(9), hour(9).Add(15 * time.Minute), hour(9).Add(30 * time.Minute), hour(10), hour(9).Add(45 * time.Minute)}

	for i, s := range starts {
		d := Evaluate(svc, s, s.Add(time.Hour), booked, nil)
		if d.Admitted {
			booked = append(booked, appt(int64(i+1), "APT", s, domain.StateConfirmed))
		}
	}

	// в каждый момент начала одновременно идёт не больше Capacity записей
	for _, b := range booked {
		n := 0
		for _, other := range booked {
			if !b.Start.Before(other.Start) && b.Start.Before(other.End) {
				n++
			}
		}
		assert.LessOrEqual(t, n, svc.Capacity)
	}
	assert.Len(t, booked, 3)
}

func TestEvaluate_NegativeCapacityRejectsWithoutOverlaps(t *testing.T) {
	svc := &domain.Service{ID: 1, Name: "Broken", DurationHours: 1, Capacity: -1}

	var d *Decision
	require.NotPanics(t, func() {
		d = Evaluate(svc, hour(9), hour(10), nil, nil)
	})
	assert.False(t, d.Admitted)
	assert.Nil(t, d.Conflicting)
	assert.Contains(t, d.Explanation, "invalid capacity")

	var conflict *ConflictError
	require.ErrorAs(t, d.Err(), &conflict)
}

func TestCheckService_RejectsMisconfiguredService(t *testing.T) {
	svc := &domain.Service{ID: 1, Name: "Broken", DurationHours: 1, Capacity: -1}
	rec := &countingRecorder{}
	c := NewChecker(fakeCatalog{1: svc}, &fakeFinder{}, rec)

	_, err := c.CheckService(context.Background(), svc, hour(9), hour(10), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidService)

	_, err = c.Check(context.Background(), 1, hour(9), hour(10), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidService)
	assert.Zero(t, rec.admitted+rec.rejected)
}

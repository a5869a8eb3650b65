package reschedule_appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TruongDHiep/Booking-Service-System/internal/domain"
	apptRepo "github.com/TruongDHiep/Booking-Service-System/internal/infra/storage/appointment"
	"github.com/TruongDHiep/Booking-Service-System/internal/infra/storage/catalog"
	"github.com/TruongDHiep/Booking-Service-System/internal/service/availability"
	"github.com/TruongDHiep/Booking-Service-System/pkg/logger"
	"github.com/TruongDHiep/Booking-Service-System/pkg/ptr"
)

var now = time.Date(2030, 6, 1, 0, 0, 0, 0, time.UTC)

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

type fakeCatalog map[int64]*domain.Service

func (c fakeCatalog) GetByID(_ context.Context, id int64) (*domain.Service, error) {
	svc, ok := c[id]
	if !ok {
		return nil, catalog.ErrServiceNotFound
	}
	return svc, nil
}

type memoryRepo struct {
	items map[int64]*domain.Appointment
}

func (r *memoryRepo) GetByID(_ context.Context, id int64) (*domain.Appointment, error) {
	a, ok := r.items[id]
	if !ok {
		return nil, apptRepo.ErrAppointmentNotFound
	}
	cp := *a
	return &cp, nil
}

func (r *memoryRepo) LockService(context.Context, int64) error { return nil }

func (r *memoryRepo) Reschedule(_ context.Context, id int64, start, end time.Time, notes *string) error {
	a := r.items[id]
	if a.State.IsTerminal() {
		return apptRepo.ErrStateConflict
	}
	a.Start, a.End, a.Notes = start, end, notes
	return nil
}

func (r *memoryRepo) FindConflicting(_ context.Context, serviceID int64, start, end time.Time, excludeID *int64) ([]*domain.Appointment, error) {
	var out []*domain.Appointment
	for _, a := range r.items {
		if excludeID != nil && a.ID == *excludeID {
			continue
		}
		if a.ServiceID == serviceID && a.OccupiesCapacity() && domain.Conflicts(start, end, a.Start, a.End) {
			out = append(out, a)
		}
	}
	return out, nil
}

type noteLog struct {
	subjects []string
}

func (n *noteLog) AddNote(_ context.Context, _ int64, subject, _ string) error {
	n.subjects = append(n.subjects, subject)
	return nil
}

type inlineTx struct{}

func (inlineTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func utc(h int) time.Time { return time.Date(2030, 6, 2, h, 0, 0, 0, time.UTC) }

func setup(t *testing.T, appts ...*domain.Appointment) (*UseCase, *memoryRepo, *noteLog) {
	t.Helper()
	svc := &domain.Service{ID: 3, Name: "Massage", DurationHours: 1, Capacity: 1}
	cat := fakeCatalog{3: svc}
	repo := &memoryRepo{items: make(map[int64]*domain.Appointment)}
	for _, a := range appts {
		repo.items[a.ID] = a
	}
	notes := &noteLog{}
	uc := NewUseCase(repo, cat, availability.NewChecker(cat, repo, nil), notes, inlineTx{}, logger.NewNop(), "UTC")
	uc.timeProvider = fixedTime{now}
	return uc, repo, notes
}

func appt(id int64, h int, state domain.AppointmentState) *domain.Appointment {
	return &domain.Appointment{ID: id, Reference: domain.FormatReference("APT/", id), ServiceID: 3,
		Start: utc(h), End: utc(h + 1), State: state}
}

func TestExecute_OverlapWithItselfIsAllowed(t *testing.T) {
	uc, repo, notes := setup(t, appt(1, 10, domain.StateConfirmed))

	resp, err := uc.Execute(context.Background(), &Request{AppointmentID: 1, BookingDate: "2030-06-02T10:30"})

	require.NoError(t, err)
	assert.Equal(t, time.Date(2030, 6, 2, 10, 30, 0, 0, time.UTC), resp.Start)
	assert.Equal(t, time.Date(2030, 6, 2, 11, 30, 0, 0, time.UTC), repo.items[1].End)
	assert.Equal(t, []string{"Appointment Updated"}, notes.subjects)
}

func TestExecute_ConflictWithOther(t *testing.T) {
	uc, repo, _ := setup(t, appt(1, 10, domain.StateConfirmed), appt(2, 12, domain.StateDraft))

	_, err := uc.Execute(context.Background(), &Request{AppointmentID: 2, BookingDate: "2030-06-02T10:00"})

	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.ErrorIs(t, err, availability.ErrSlotNotAvailable)
	assert.Equal(t, utc(12), repo.items[2].Start)
}

func TestExecute_CancelledDoesNotBlock(t *testing.T) {
	uc, _, _ := setup(t, appt(1, 10, domain.StateCancel), appt(2, 12, domain.StateDraft))

	_, err := uc.Execute(context.Background(), &Request{AppointmentID: 2, BookingDate: "2030-06-02T10:00"})
	assert.NoError(t, err)
}

func TestExecute_NotesOnlySkipsAdmission(t *testing.T) {
	uc, repo, notes := setup(t, appt(1, 10, domain.StateConfirmed))

	_, err := uc.Execute(context.Background(), &Request{AppointmentID: 1, Notes: ptr.Ptr("bring towel")})

	require.NoError(t, err)
	assert.Equal(t, "bring towel", ptr.Value(repo.items[1].Notes))
	assert.Empty(t, notes.subjects)
}

func TestExecute_Errors(t *testing.T) {
	uc, _, _ := setup(t, appt(1, 10, domain.StateDone))

	_, err := uc.Execute(context.Background(), &Request{AppointmentID: 1, BookingDate: "2030-06-02T14:00"})
	assert.ErrorIs(t, err, ErrCannotReschedule)

	_, err = uc.Execute(context.Background(), &Request{AppointmentID: 5, BookingDate: "2030-06-02T14:00"})
	assert.ErrorIs(t, err, ErrAppointmentNotFound)

	_, err = uc.Execute(context.Background(), &Request{AppointmentID: 1, BookingDate: "2030-05-30T14:00"})
	assert.ErrorIs(t, err, ErrStartInPast)

	_, err = uc.Execute(context.Background(), &Request{AppointmentID: 1})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{AppointmentID: 1, BookingDate: "tomorrow"})
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_MisconfiguredServiceIsInternal(t *testing.T) {
	uc, repo, _ := setup(t, appt(1, 10, domain.StateConfirmed))
	broken := &domain.Service{ID: 3, Name: "Massage", DurationHours: 1, Capacity: -1}
	uc.catalog = fakeCatalog{3: broken}

	_, err := uc.Execute(context.Background(), &Request{AppointmentID: 1, BookingDate: "2030-06-02T14:00"})

	assert.ErrorIs(t, err, ErrInternal)
	assert.Equal(t, utc(10), repo.items[1].Start)
}

package timeline

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/TruongDHiep/Booking-Service-System/internal/domain"
	"github.com/TruongDHiep/Booking-Service-System/pkg/dbmetrics"
	"github.com/TruongDHiep/Booking-Service-System/pkg/psqlbuilder"
)

// Repository хронология записей и outbox событий.
// Заметка и событие пишутся в той же транзакции, что и смена состояния.
type Repository struct {
	db  dbmetrics.DBExecutor
	now func() time.Time
}

// NewRepository создает новый экземпляр репозитория хронологии
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db, now: time.Now}
}

// OnTransition фиксирует смену состояния записи: заметку в хронологии и событие в outbox.
// from == "" означает создание записи
func (r *Repository) OnTransition(
	ctx context.Context,
	appt *domain.Appointment,
	from, to domain.AppointmentState,
	note string,
) error {
	if err := r.AddNote(ctx, appt.ID, subjectFor(from, to), note); err != nil {
		return err
	}

	eventType := EventAppointmentStateChanged
	if from == "" {
		eventType = EventAppointmentCreated
	}

	payload, err := json.Marshal(AppointmentEvent{
		AppointmentID: appt.ID,
		Reference:     appt.Reference,
		ServiceID:     appt.ServiceID,
		CustomerID:    appt.CustomerID,
		From:          string(from),
		To:            string(to),
		Start:         appt.Start.UTC(),
		End:           appt.End.UTC(),
		Note:          note,
		OccurredAt:    r.now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("%w: OnTransition - marshal: %w", ErrEncodePayload, err)
	}

	return r.insertEvent(ctx, strconv.FormatInt(appt.ID, 10), eventType, payload)
}

// AddNote добавляет заметку в хронологию записи
func (r *Repository) AddNote(ctx context.Context, appointmentID int64, subject, body string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("appointment_messages").
		Columns("appointment_id", "subject", "body").
		Values(appointmentID, subject, body).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: AddNote - build insert query: %w", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: AddNote - execute insert: %w", ErrExecQuery, err)
	}
	return nil
}

func (r *Repository) insertEvent(ctx context.Context, aggregateID, eventType string, payload []byte) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("outbox_events").
		Columns("event_id", "aggregate_type", "aggregate_id", "event_type", "payload").
		Values(uuid.NewString(), aggregateAppointment, aggregateID, eventType, payload).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: insertEvent - build insert query: %w", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: insertEvent - execute insert: %w", ErrExecQuery, err)
	}
	return nil
}

func subjectFor(from, to domain.AppointmentState) string {
	if from == "" {
		return SubjectNew
	}
	switch to {
	case domain.StateConfirmed:
		return SubjectConfirmed
	case domain.StateDone:
		return SubjectCompleted
	case domain.StateCancel:
		return SubjectCancelled
	case domain.StateDraft:
		return SubjectReset
	}
	return SubjectUpdated
}

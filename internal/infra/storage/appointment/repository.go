package appointment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/TruongDHiep/Booking-Service-System/internal/domain"
	"github.com/TruongDHiep/Booking-Service-System/pkg/dbmetrics"
	"github.com/TruongDHiep/Booking-Service-System/pkg/psqlbuilder"
)

const (
	tableAppointments = "appointments"
	referenceSequence = "appointment_reference_seq"
)

var appointmentColumns = []string{
	"a.id",
	"a.reference",
	"a.customer_id",
	"a.service_id",
	"a.start_at",
	"a.end_at",
	"a.state",
	"a.notes",
	"a.reminder_sent",
	"a.completion_sent",
	"a.sale_order_ref",
	"a.created_at",
	"a.updated_at",
}

var detailsColumns = append(append([]string{}, appointmentColumns...),
	"c.name",
	"COALESCE(c.email, '')",
	"COALESCE(c.phone, '')",
	"s.name",
	"s.duration_hours",
	"s.price",
	"s.currency",
)

// Repository репозиторий для работы с записями на услуги
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую запись
// Вызывается внутри сериализуемой транзакции вместе с проверкой доступности
func (r *Repository) Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableAppointments).
		Columns(
			"reference",
			"customer_id",
			"service_id",
			"start_at",
			"end_at",
			"state",
			"notes",
		).
		Values(
			appt.Reference,
			appt.CustomerID,
			appt.ServiceID,
			appt.Start.UTC(),
			appt.End.UTC(),
			appt.State,
			appt.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&appt.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	appt.CreatedAt = createdAt.Time
	appt.UpdatedAt = updatedAt.Time

	return appt, nil
}

// GetByID получает запись по ID
// Внутри транзакции строка блокируется (FOR UPDATE)
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(appointmentColumns...).
		From(tableAppointments + " a").
		Where(squirrel.Eq{"a.id": id})

	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	appt, err := scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan appointment: %w", ErrScanRow, err)
	}

	return appt, nil
}

// GetDetailsByID получает запись вместе с данными клиента и услуги
func (r *Repository) GetDetailsByID(ctx context.Context, id int64) (*domain.AppointmentDetails, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := detailsSelect().
		Where(squirrel.Eq{"a.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetDetailsByID - build select query: %w", ErrBuildQuery, err)
	}

	details, err := scanDetails(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetDetailsByID - scan appointment: %w", ErrScanRow, err)
	}

	return details, nil
}

// FindConflicting возвращает записи услуги, пересекающиеся с [start, end) и занимающие ёмкость.
// Порядок: по началу, затем по ID.
// Внутри транзакции найденные строки блокируются (FOR UPDATE), чтобы снимок не изменился до вставки.
func (r *Repository) FindConflicting(
	ctx context.Context,
	serviceID int64,
	start, end time.Time,
	excludeID *int64,
) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(appointmentColumns...).
		From(tableAppointments + " a").
		Where(squirrel.Eq{"a.service_id": serviceID}).
		Where(squirrel.Eq{"a.state": stateStrings(domain.CapacityStates)}).
		Where(squirrel.Lt{"a.start_at": end.UTC()}).
		Where(squirrel.Gt{"a.end_at": start.UTC()}).
		OrderBy("a.start_at ASC", "a.id ASC")

	if excludeID != nil {
		builder = builder.Where(squirrel.NotEq{"a.id": *excludeID})
	}

	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindConflicting - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FindConflicting - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanAppointments(rows)
}

// LockService берёт транзакционную advisory-блокировку на услугу.
// Все допуски по одной услуге выполняются последовательно до конца транзакции.
func (r *Repository) LockService(ctx context.Context, serviceID int64) error {
	tx, ok := dbmetrics.TxFromContext(ctx)
	if !ok {
		return ErrTransactionRequired
	}

	query, args, err := psqlbuilder.Select().
		Column(squirrel.Expr("pg_advisory_xact_lock(?)", serviceID)).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: LockService - build query: %w", ErrBuildQuery, err)
	}

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: LockService - execute lock: %w", ErrExecQuery, err)
	}
	return nil
}

// NextReference возвращает следующее значение последовательности номеров записей
func (r *Repository) NextReference(ctx context.Context) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(fmt.Sprintf("nextval('%s')", referenceSequence)).ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: NextReference - build query: %w", ErrBuildQuery, err)
	}

	var seq int64
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&seq); err != nil {
		return 0, fmt.Errorf("%w: NextReference - scan sequence: %w", ErrScanRow, err)
	}
	return seq, nil
}

// UpdateState меняет состояние записи, только если она всё ещё в состоянии from
func (r *Repository) UpdateState(ctx context.Context, id int64, from, to domain.AppointmentState) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableAppointments).
		Set("state", to).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "state": from}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateState - build update query: %w", ErrBuildQuery, err)
	}

	return r.execConditional(ctx, executor, "UpdateState", query, args, ErrStateConflict)
}

// Reschedule переносит запись. Завершённые и отменённые записи не переносятся
func (r *Repository) Reschedule(ctx context.Context, id int64, start, end time.Time, notes *string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableAppointments).
		Set("start_at", start.UTC()).
		Set("end_at", end.UTC()).
		Set("notes", notes).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"state": []string{string(domain.StateDraft), string(domain.StateConfirmed)}}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Reschedule - build update query: %w", ErrBuildQuery, err)
	}

	return r.execConditional(ctx, executor, "Reschedule", query, args, ErrStateConflict)
}

// SetSaleOrder привязывает заказ к записи. Повторная привязка запрещена
func (r *Repository) SetSaleOrder(ctx context.Context, id int64, ref string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableAppointments).
		Set("sale_order_ref", ref).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "sale_order_ref": nil}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: SetSaleOrder - build update query: %w", ErrBuildQuery, err)
	}

	return r.execConditional(ctx, executor, "SetSaleOrder", query, args, ErrSaleOrderExists)
}

// FindUpcomingConfirmed возвращает подтверждённые записи с началом в [from, to],
// по которым ещё не отправлено напоминание. Сортировка по началу
func (r *Repository) FindUpcomingConfirmed(ctx context.Context, from, to time.Time, limit int) ([]*domain.AppointmentDetails, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := detailsSelect().
		Where(squirrel.Eq{"a.state": domain.StateConfirmed, "a.reminder_sent": false}).
		Where(squirrel.GtOrEq{"a.start_at": from.UTC()}).
		Where(squirrel.LtOrEq{"a.start_at": to.UTC()}).
		OrderBy("a.start_at ASC", "a.id ASC")
	if limit > 0 {
		builder = builder.Limit(uint64(limit))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindUpcomingConfirmed - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FindUpcomingConfirmed - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanDetailsRows(rows)
}

// FindRecentlyCompleted возвращает завершённые записи с окончанием в [from, to],
// по которым ещё не отправлено уведомление. Сортировка по окончанию, новые первыми
func (r *Repository) FindRecentlyCompleted(ctx context.Context, from, to time.Time, limit int) ([]*domain.AppointmentDetails, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := detailsSelect().
		Where(squirrel.Eq{"a.state": domain.StateDone, "a.completion_sent": false}).
		Where(squirrel.GtOrEq{"a.end_at": from.UTC()}).
		Where(squirrel.LtOrEq{"a.end_at": to.UTC()}).
		OrderBy("a.end_at DESC", "a.id DESC")
	if limit > 0 {
		builder = builder.Limit(uint64(limit))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindRecentlyCompleted - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FindRecentlyCompleted - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanDetailsRows(rows)
}

// ClaimForReminder блокирует запись для отправки напоминания.
// Строка, заблокированная другим обработчиком, пропускается (SKIP LOCKED) - возвращается ErrNotClaimable.
func (r *Repository) ClaimForReminder(ctx context.Context, id int64) (*domain.AppointmentDetails, error) {
	return r.claim(ctx, "ClaimForReminder", squirrel.Eq{
		"a.id":            id,
		"a.state":         domain.StateConfirmed,
		"a.reminder_sent": false,
	})
}

// ClaimForCompletion блокирует запись для отправки уведомления о завершении
func (r *Repository) ClaimForCompletion(ctx context.Context, id int64) (*domain.AppointmentDetails, error) {
	return r.claim(ctx, "ClaimForCompletion", squirrel.Eq{
		"a.id":              id,
		"a.state":           domain.StateDone,
		"a.completion_sent": false,
	})
}

func (r *Repository) claim(ctx context.Context, op string, where squirrel.Eq) (*domain.AppointmentDetails, error) {
	tx, ok := dbmetrics.TxFromContext(ctx)
	if !ok {
		return nil, ErrTransactionRequired
	}

	query, args, err := detailsSelect().
		Where(where).
		Suffix("FOR UPDATE OF a SKIP LOCKED").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %w", ErrBuildQuery, op, err)
	}

	details, err := scanDetails(tx.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotClaimable
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan appointment: %w", ErrScanRow, op, err)
	}
	return details, nil
}

// MarkReminderSent выставляет флаг напоминания. Повторная установка возвращает ErrAlreadySent
func (r *Repository) MarkReminderSent(ctx context.Context, id int64) error {
	return r.markFlag(ctx, "MarkReminderSent", "reminder_sent", id)
}

// MarkCompletionSent выставляет флаг уведомления о завершении
func (r *Repository) MarkCompletionSent(ctx context.Context, id int64) error {
	return r.markFlag(ctx, "MarkCompletionSent", "completion_sent", id)
}

func (r *Repository) markFlag(ctx context.Context, op, column string, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableAppointments).
		Set(column, true).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, column: false}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %s - build update query: %w", ErrBuildQuery, op, err)
	}

	return r.execConditional(ctx, executor, op, query, args, ErrAlreadySent)
}

// execConditional выполняет условный UPDATE. Если ни одна строка не изменилась, возвращает notAffected
func (r *Repository) execConditional(
	ctx context.Context,
	executor DBExecutor,
	op, query string,
	args []interface{},
	notAffected error,
) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %w", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %w", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return notAffected
	}
	return nil
}

func detailsSelect() squirrel.SelectBuilder {
	return psqlbuilder.Select(detailsColumns...).
		From(tableAppointments + " a").
		Join("customers c ON c.id = a.customer_id").
		Join("booking_services s ON s.id = a.service_id")
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func appointmentDest(appt *domain.Appointment, createdAt, updatedAt *sql.NullTime) []interface{} {
	return []interface{}{
		&appt.ID,
		&appt.Reference,
		&appt.CustomerID,
		&appt.ServiceID,
		&appt.Start,
		&appt.End,
		&appt.State,
		&appt.Notes,
		&appt.ReminderSent,
		&appt.CompletionSent,
		&appt.SaleOrderRef,
		createdAt,
		updatedAt,
	}
}

func finishAppointment(appt *domain.Appointment, createdAt, updatedAt sql.NullTime) {
	appt.Start = appt.Start.UTC()
	appt.End = appt.End.UTC()
	appt.CreatedAt = createdAt.Time
	appt.UpdatedAt = updatedAt.Time
}

func scanAppointment(row rowScanner) (*domain.Appointment, error) {
	var appt domain.Appointment
	var createdAt, updatedAt sql.NullTime

	if err := row.Scan(appointmentDest(&appt, &createdAt, &updatedAt)...); err != nil {
		return nil, err
	}
	finishAppointment(&appt, createdAt, updatedAt)
	return &appt, nil
}

func scanDetails(row rowScanner) (*domain.AppointmentDetails, error) {
	var d domain.AppointmentDetails
	var createdAt, updatedAt sql.NullTime

	dest := append(appointmentDest(&d.Appointment, &createdAt, &updatedAt),
		&d.CustomerName,
		&d.CustomerEmail,
		&d.CustomerPhone,
		&d.ServiceName,
		&d.DurationHours,
		&d.Price,
		&d.Currency,
	)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	finishAppointment(&d.Appointment, createdAt, updatedAt)
	return &d, nil
}

// scanAppointments сканирует результаты запроса в слайс записей
func scanAppointments(rows *sql.Rows) ([]*domain.Appointment, error) {
	appointments := make([]*domain.Appointment, 0)

	for rows.Next() {
		appt, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanAppointments - scan row: %w", ErrScanRow, err)
		}
		appointments = append(appointments, appt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanAppointments - rows error: %w", ErrScanRow, err)
	}

	return appointments, nil
}

func scanDetailsRows(rows *sql.Rows) ([]*domain.AppointmentDetails, error) {
	list := make([]*domain.AppointmentDetails, 0)

	for rows.Next() {
		d, err := scanDetails(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanDetailsRows - scan row: %w", ErrScanRow, err)
		}
		list = append(list, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanDetailsRows - rows error: %w", ErrScanRow, err)
	}

	return list, nil
}

func stateStrings(states []domain.AppointmentState) []string {
	out := make([]string, len(states))
	for i, s := range states {
		out[i] = string(s)
	}
	return out
}

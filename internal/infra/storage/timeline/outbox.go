package timeline

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/TruongDHiep/Booking-Service-System/pkg/dbmetrics"
	"github.com/TruongDHiep/Booking-Service-System/pkg/psqlbuilder"
)

// FetchUnpublished выбирает неопубликованные события и блокирует их до конца транзакции.
// Параллельные публикаторы пропускают заблокированные строки
func (r *Repository) FetchUnpublished(ctx context.Context, limit int) ([]Record, error) {
	tx, ok := dbmetrics.TxFromContext(ctx)
	if !ok {
		return nil, ErrTransactionRequired
	}

	query, args, err := psqlbuilder.Select(
		"id",
		"event_id",
		"aggregate_type",
		"aggregate_id",
		"event_type",
		"payload",
		"created_at",
	).
		From("outbox_events").
		Where(squirrel.Eq{"published_at": nil}).
		OrderBy("id").
		Limit(uint64(limit)).
		Suffix("FOR UPDATE SKIP LOCKED").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FetchUnpublished - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := tx.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FetchUnpublished - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.ID, &rec.EventID, &rec.AggregateType, &rec.AggregateID,
			&rec.EventType, &rec.Payload, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: FetchUnpublished - scan row: %w", ErrScanRow, err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: FetchUnpublished - rows error: %w", ErrScanRow, err)
	}
	return records, nil
}

// MarkPublished отмечает события опубликованными
func (r *Repository) MarkPublished(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("outbox_events").
		Set("published_at", squirrel.Expr("NOW()")).
		Where(squirrel.Expr("id = ANY(?)", pq.Array(ids))).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: MarkPublished - build update query: %w", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: MarkPublished - execute update: %w", ErrExecQuery, err)
	}
	return nil
}

package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/TruongDHiep/Booking-Service-System/internal/domain"
	"github.com/TruongDHiep/Booking-Service-System/pkg/dbmetrics"
	"github.com/TruongDHiep/Booking-Service-System/pkg/psqlbuilder"
)

// Repository доступ на чтение к каталогу услуг
// Каталог ведётся другой системой, здесь только чтение
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория каталога
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает активную услугу по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"name",
		"duration_hours",
		"price",
		"currency",
		"capacity",
		"product_ref",
		"active",
	).
		From("booking_services").
		Where(squirrel.Eq{"id": id, "active": true}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	var svc domain.Service
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&svc.ID,
		&svc.Name,
		&svc.DurationHours,
		&svc.Price,
		&svc.Currency,
		&svc.Capacity,
		&svc.ProductRef,
		&svc.Active,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan service: %w", ErrScanRow, err)
	}

	return &svc, nil
}

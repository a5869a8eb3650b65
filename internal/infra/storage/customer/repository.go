package customer

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"

	"github.com/TruongDHiep/Booking-Service-System/internal/domain"
	"github.com/TruongDHiep/Booking-Service-System/pkg/dbmetrics"
	"github.com/TruongDHiep/Booking-Service-System/pkg/psqlbuilder"
)

// Repository справочник клиентов
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория клиентов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// FindOrCreateByEmail ищет клиента по e-mail и создаёт его, если не найден.
// Если телефон у найденного клиента отличается, обновляются имя и телефон.
func (r *Repository) FindOrCreateByEmail(ctx context.Context, email, name, phone string) (*domain.Customer, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)
	email = strings.ToLower(strings.TrimSpace(email))

	existing, err := r.getByEmail(ctx, executor, email)
	if err != nil {
		return nil, err
	}

	if existing == nil {
		return r.create(ctx, executor, &domain.Customer{Name: name, Email: email, Phone: phone})
	}

	if existing.Phone != phone {
		query, args, err := psqlbuilder.Update("customers").
			Set("name", name).
			Set("phone", phone).
			Set("updated_at", squirrel.Expr("NOW()")).
			Where(squirrel.Eq{"id": existing.ID}).
			ToSql()
		if err != nil {
			return nil, fmt.Errorf("%w: FindOrCreateByEmail - build update query: %w", ErrBuildQuery, err)
		}
		if _, err := executor.ExecContext(ctx, query, args...); err != nil {
			return nil, fmt.Errorf("%w: FindOrCreateByEmail - execute update: %w", ErrExecQuery, err)
		}
		existing.Name = name
		existing.Phone = phone
	}

	return existing, nil
}

func (r *Repository) getByEmail(ctx context.Context, executor dbmetrics.DBExecutor, email string) (*domain.Customer, error) {
	query, args, err := psqlbuilder.Select("id", "name", "email", "COALESCE(phone, '')").
		From("customers").
		Where(squirrel.Eq{"email": email}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: getByEmail - build select query: %w", ErrBuildQuery, err)
	}

	var c domain.Customer
	err = executor.QueryRowContext(ctx, query, args...).Scan(&c.ID, &c.Name, &c.Email, &c.Phone)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: getByEmail - scan customer: %w", ErrScanRow, err)
	}
	return &c, nil
}

func (r *Repository) create(ctx context.Context, executor dbmetrics.DBExecutor, c *domain.Customer) (*domain.Customer, error) {
	query, args, err := psqlbuilder.Insert("customers").
		Columns("name", "email", "phone").
		Values(c.Name, c.Email, c.Phone).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: create - build insert query: %w", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&c.ID); err != nil {
		return nil, fmt.Errorf("%w: create - execute insert: %w", ErrExecQuery, err)
	}
	return c, nil
}

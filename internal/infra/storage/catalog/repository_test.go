package catalog

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TruongDHiep/Booking-Service-System/pkg/dbmetrics"
)

var serviceColumns = []string{"id", "name", "duration_hours", "price", "currency", "capacity", "product_ref", "active"}

func TestGetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewRepository(dbmetrics.Wrap(db, nil))

	mock.ExpectQuery(regexp.QuoteMeta("FROM booking_services WHERE active = $1 AND id = $2")).
		WithArgs(true, int64(3)).
		WillReturnRows(sqlmock.NewRows(serviceColumns).AddRow(int64(3), "Massage", 1.5, 80.0, "USD", 2, "PRD-1", true))

	svc, err := repo.GetByID(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, "Massage", svc.Name)
	assert.Equal(t, 2, svc.Capacity)
	require.NotNil(t, svc.ProductRef)
	assert.Equal(t, "PRD-1", *svc.ProductRef)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewRepository(dbmetrics.Wrap(db, nil))

	mock.ExpectQuery("FROM booking_services").WillReturnRows(sqlmock.NewRows(serviceColumns))

	_, err = repo.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

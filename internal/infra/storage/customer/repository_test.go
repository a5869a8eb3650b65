package customer

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TruongDHiep/Booking-Service-System/pkg/dbmetrics"
)

func newRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewRepository(dbmetrics.Wrap(db, nil)), mock
}

func TestFindOrCreateByEmail_Creates(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM customers WHERE email = $1")).
		WithArgs("jane@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "phone"}))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO customers (name,email,phone)")).
		WithArgs("Jane", "jane@example.com", "+1 5551234567").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(5)))

	c, err := repo.FindOrCreateByEmail(context.Background(), " Jane@Example.com ", "Jane", "+1 5551234567")

	require.NoError(t, err)
	assert.Equal(t, int64(5), c.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindOrCreateByEmail_RefreshesOnPhoneChange(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery("FROM customers").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "phone"}).
			AddRow(int64(5), "J. Doe", "jane@example.com", "5550000000"))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE customers SET name = $1, phone = $2")).
		WithArgs("Jane Doe", "5551234567", int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	c, err := repo.FindOrCreateByEmail(context.Background(), "jane@example.com", "Jane Doe", "5551234567")

	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", c.Name)
	assert.Equal(t, "5551234567", c.Phone)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindOrCreateByEmail_SamePhoneKeepsName(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery("FROM customers").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "phone"}).
			AddRow(int64(5), "J. Doe", "jane@example.com", "5551234567"))

	c, err := repo.FindOrCreateByEmail(context.Background(), "jane@example.com", "Jane Doe", "5551234567")

	require.NoError(t, err)
	assert.Equal(t, "J. Doe", c.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

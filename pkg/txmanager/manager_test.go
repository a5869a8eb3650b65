package txmanager

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TruongDHiep/Booking-Service-System/pkg/dbmetrics"
)

func newManager(t *testing.T, retries int) (*Manager, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewTransactionManager(dbmetrics.Wrap(db, nil), retries), mock
}

func TestDo_CommitsOnSuccess(t *testing.T) {
	m, mock := newManager(t, 0)
	mock.ExpectBegin()
	mock.ExpectCommit()

	var inTx bool
	err := m.Do(context.Background(), func(ctx context.Context) error {
		inTx = dbmetrics.IsInTransaction(ctx)
		return nil
	})

	require.NoError(t, err)
	assert.True(t, inTx)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDo_RollsBackOnError(t *testing.T) {
	m, mock := newManager(t, 0)
	mock.ExpectBegin()
	mock.ExpectRollback()

	boom := errors.New("boom")
	err := m.Do(context.Background(), func(ctx context.Context) error { return boom })

	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDo_NestedCallJoinsOuterTransaction(t *testing.T) {
	m, mock := newManager(t, 0)
	mock.ExpectBegin()
	mock.ExpectCommit()

	err := m.Do(context.Background(), func(ctx context.Context) error {
		return m.Do(ctx, func(ctx context.Context) error { return nil })
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDoSerializable_RetriesSerializationFailure(t *testing.T) {
	m, mock := newManager(t, 3)
	mock.ExpectBegin()
	mock.ExpectRollback()
	mock.ExpectBegin()
	mock.ExpectCommit()

	calls := 0
	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		calls++
		if calls == 1 {
			return &pq.Error{Code: "40001"}
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDoSerializable_ExhaustedRetries(t *testing.T) {
	m, mock := newManager(t, 2)
	for i := 0; i < 2; i++ {
		mock.ExpectBegin()
		mock.ExpectRollback()
	}

	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		return &pq.Error{Code: "40P01"}
	})

	assert.ErrorIs(t, err, ErrSerializationFailure)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDoSerializable_DoesNotRetryOtherErrors(t *testing.T) {
	m, mock := newManager(t, 3)
	mock.ExpectBegin()
	mock.ExpectRollback()

	calls := 0
	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		calls++
		return &pq.Error{Code: "23505"}
	})

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrSerializationFailure)
	assert.Equal(t, 1, calls)
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, IsRetryable(&pq.Error{Code: "40001"}))
	assert.True(t, IsRetryable(errors.Join(errors.New("wrap"), &pq.Error{Code: "40P01"})))
	assert.False(t, IsRetryable(errors.New("plain")))
	assert.False(t, IsRetryable(&pq.Error{Code: "23505"}))
}

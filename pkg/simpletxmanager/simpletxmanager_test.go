package simpletxmanager

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avdeev-m/TMS-BookingService/pkg/txmanager"
)

func newMock(t *testing.T) (*TransactionManager, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	return NewTransactionManager(db), mock, func() { db.Close() }
}

func serializationFailure() *pq.Error {
	return &pq.Error{Code: "40001", Message: "could not serialize access"}
}

// Проигрыш serializable-гонки на commit после повтора отдается как
// ErrSerializationFailure, а не как произвольная ошибка транзакции
func TestDoSerializable_CommitFailureMapsToSentinel(t *testing.T) {
	manager, mock, closeDB := newMock(t)
	defer closeDB()

	mock.ExpectBegin()
	mock.ExpectCommit().WillReturnError(serializationFailure())
	mock.ExpectBegin()
	mock.ExpectCommit().WillReturnError(serializationFailure())

	err := manager.DoSerializable(context.Background(), func(ctx context.Context) error {
		return nil
	})

	assert.ErrorIs(t, err, txmanager.ErrSerializationFailure)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Первый проигрыш гонки повторяется, успешный повтор завершает без ошибки
func TestDoSerializable_RetriesOnceAndSucceeds(t *testing.T) {
	manager, mock, closeDB := newMock(t)
	defer closeDB()

	mock.ExpectBegin()
	mock.ExpectCommit().WillReturnError(serializationFailure())
	mock.ExpectBegin()
	mock.ExpectCommit()

	calls := 0
	err := manager.DoSerializable(context.Background(), func(ctx context.Context) error {
		calls++
		return nil
	})

	assert.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Ошибка функции откатывает транзакцию и возвращается без изменений
func TestDoSerializable_FnErrorRollsBack(t *testing.T) {
	manager, mock, closeDB := newMock(t)
	defer closeDB()

	mock.ExpectBegin()
	mock.ExpectRollback()

	fnErr := errors.New("ошибка бизнес-логики")
	err := manager.DoSerializable(context.Background(), func(ctx context.Context) error {
		return fnErr
	})

	assert.ErrorIs(t, err, fnErr)
	assert.NotErrorIs(t, err, txmanager.ErrSerializationFailure)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// SQLSTATE 40001 из запроса внутри транзакции тоже классифицируется как
// проигрыш гонки, если вызывающий сохранил цепочку ошибок
func TestDoSerializable_StatementFailureMapsToSentinel(t *testing.T) {
	manager, mock, closeDB := newMock(t)
	defer closeDB()

	mock.ExpectBegin()
	mock.ExpectRollback()
	mock.ExpectBegin()
	mock.ExpectRollback()

	err := manager.DoSerializable(context.Background(), func(ctx context.Context) error {
		return fmt.Errorf("failed to get reservations: %w", serializationFailure())
	})

	assert.ErrorIs(t, err, txmanager.ErrSerializationFailure)
	assert.NoError(t, mock.ExpectationsWereMet())
}

package dbmetrics

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRecorder struct {
	mu         sync.Mutex
	operations []string
	failed     []string
	poolOpen   int
}

func (f *fakeRecorder) ObserveDBQuery(operation string, err error, _ time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.operations = append(f.operations, operation)
	if err != nil {
		f.failed = append(f.failed, operation)
	}
}

func (f *fakeRecorder) SetDBPoolStats(open, _, _ int, _ int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.poolOpen = open
}

func TestDB_RecordsQueries(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	rec := &fakeRecorder{}
	db := Wrap(sqlDB, rec)

	mock.ExpectExec("UPDATE bookings").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT id").WillReturnError(errors.New("boom"))

	_, err = db.ExecContext(context.Background(), "UPDATE bookings SET status = $1", "cancelled")
	require.NoError(t, err)
	_, err = db.QueryContext(context.Background(), "SELECT id FROM bookings")
	require.Error(t, err)

	assert.Equal(t, []string{"exec", "query"}, rec.operations)
	assert.Equal(t, []string{"query"}, rec.failed)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDB_TransactionRecordsCommit(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	rec := &fakeRecorder{}
	db := Wrap(sqlDB, rec)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO bookings").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	tx, err := db.BeginTx(context.Background(), nil)
	require.NoError(t, err)
	_, err = tx.ExecContext(context.Background(), "INSERT INTO bookings DEFAULT VALUES")
	require.NoError(t, err)
	require.NoError(t, tx.Commit())

	assert.Equal(t, []string{"begin", "tx_exec", "commit"}, rec.operations)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDB_NilRecorder(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db := Wrap(sqlDB, nil)
	mock.ExpectExec("DELETE").WillReturnResult(sqlmock.NewResult(0, 0))

	_, err = db.ExecContext(context.Background(), "DELETE FROM bookings")
	require.NoError(t, err)
	db.reportPoolStats()
}

func TestGetExecutor(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db := Wrap(sqlDB, nil)
	ctx := context.Background()

	assert.Same(t, db, GetExecutor(ctx, db))
	assert.False(t, IsInTransaction(ctx))

	mock.ExpectBegin()
	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)

	txCtx := WithTx(ctx, tx)
	assert.True(t, IsInTransaction(txCtx))
	assert.Equal(t, tx, GetExecutor(txCtx, db))
}

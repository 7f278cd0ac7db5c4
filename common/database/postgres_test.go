package database

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"relief-dispatch/common/config"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithTx_Commits(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE t`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err = WithTx(context.Background(), db, func(tx *sql.Tx) error {
		_, err := tx.Exec(`UPDATE t SET x = 1`)
		return err
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTx_RollsBackOnError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectRollback()

	boom := errors.New("boom")
	err = WithTx(context.Background(), db, func(tx *sql.Tx) error { return boom })
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPing(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, Ping(context.Background(), db, time.Second))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = Ping(ctx, db, 0)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestConfigureAndClose(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	mock.ExpectClose()

	Configure(db, &config.DatabaseConfig{MaxConns: 4, MaxIdle: 2})
	assert.Equal(t, 4, db.Stats().MaxOpenConnections)

	assert.NoError(t, Close(db))
	assert.NoError(t, Close(nil))
}

package storage

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newMockedPostgresStore(t *testing.T) (*PostgresStore, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 db,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		DisableAutomaticPing:   true,
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	return NewPostgresStore(gdb), mock
}

func TestPostgresStore_Get(t *testing.T) {
	store, mock := newMockedPostgresStore(t)

	mock.ExpectQuery(`SELECT \* FROM "meddesk_blobs" WHERE key = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"key", "value", "updated_at"}).
			AddRow("hospital-data-v1", []byte(`{"patients":null}`), time.Now()))

	got, err := store.Get(context.Background(), "hospital-data-v1")
	require.NoError(t, err)
	require.Equal(t, []byte(`{"patients":null}`), got)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_GetMissingKey(t *testing.T) {
	store, mock := newMockedPostgresStore(t)

	mock.ExpectQuery(`SELECT \* FROM "meddesk_blobs" WHERE key = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"key", "value", "updated_at"}))

	_, err := store.Get(context.Background(), "absent")
	require.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_SetUpserts(t *testing.T) {
	store, mock := newMockedPostgresStore(t)

	mock.ExpectExec(`INSERT INTO "meddesk_blobs" .+ ON CONFLICT`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := store.Set(context.Background(), "hospital-data-v1", []byte(`{"patients":null}`))
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

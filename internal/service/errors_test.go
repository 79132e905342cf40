package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"OwlTurf/internal/dbtest"
)

func TestWrapStoreClassification(t *testing.T) {
	assert.NoError(t, wrapStore(nil, "user"))

	err := wrapStore(gorm.ErrRecordNotFound, "user")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "user not found", err.Error())

	assert.ErrorIs(t, wrapStore(gorm.ErrDuplicatedKey, "user"), ErrConflict)

	pgDup := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505", Message: "duplicate key value"})
	assert.ErrorIs(t, wrapStore(pgDup, "user"), ErrConflict)

	raw := errors.New("connection reset by peer")
	err = wrapStore(raw, "user")
	assert.ErrorIs(t, err, ErrStoreFailure)
	assert.ErrorIs(t, err, raw)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	return db, mock
}

func TestServiceSurfacesStoreFailure(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnError(errors.New("connection reset by peer"))

	_, err := NewUserService(db, dbtest.Logger()).Get(context.Background(), "u1")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStoreFailure)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestServiceMapsUniqueViolation(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(`SELECT count\(\*\) FROM "products"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec(`INSERT INTO "products"`).
		WillReturnError(&pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"})

	_, err := NewProductService(db, dbtest.Logger()).Create(context.Background(), &ProductRequest{
		ID: "p1", Name: "Shin guard", Category: "football", MRP: 500, Price: 400,
	})
	assert.ErrorIs(t, err, ErrConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

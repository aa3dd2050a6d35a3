package clips

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return NewStore(gormDB), mock
}

func TestStore_List_QueryError(t *testing.T) {
	store, mock := setupMockStore(t)

	mock.ExpectQuery(".*").WillReturnError(assert.AnError)

	_, err := store.List(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to list clips")
}

func TestStore_CreateEntry_ExistingLocationMySQL(t *testing.T) {
	store, mock := setupMockStore(t)

	// The uniqueness pre-check finds the location; no insert is attempted.
	mock.ExpectQuery(".*").WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	_, err := store.CreateEntry(context.Background(), "/media/taken.mp4", "T", 1)
	assert.ErrorIs(t, err, ErrDuplicateLocation)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_CreateEntry_CountQueryError(t *testing.T) {
	store, mock := setupMockStore(t)

	mock.ExpectQuery(".*").WillReturnError(assert.AnError)

	_, err := store.CreateEntry(context.Background(), "/media/a.mp4", "A", 1)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrDuplicateLocation)
}

func TestStore_SetThumbnailKey_NoRowsMySQL(t *testing.T) {
	store, mock := setupMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec(".*").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := store.SetThumbnailKey(context.Background(), 99, "thumbnails/99.jpg")
	assert.ErrorIs(t, err, ErrClipNotFound)
}

package storage_test

import (
	"testing"

	"careplus/internal/models"
	"careplus/internal/storage"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB открывает отдельную SQLite в памяти. Одно соединение держит базу
// и сериализует транзакции.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: gormlogger.Discard,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, storage.Migrate(db))
	return db
}

func seedClinics(t *testing.T, db *gorm.DB, clinics ...models.Clinic) {
	t.Helper()
	for i := range clinics {
		require.NoError(t, db.Create(&clinics[i]).Error)
	}
}

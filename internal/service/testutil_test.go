package service

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/gleviosaa/expireTrack/internal/database"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// An in-memory sqlite database exists per connection; a second pooled
	// connection would see an empty schema.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.AutoMigrate(db))
	return db
}

func testItems() []LineItemInput {
	return []LineItemInput{
		{ProductName: "Oat Milk", Barcode: "7310865004703", PortionSize: 200, PortionUnit: "ml", Calories: 200, Protein: 10, Carbs: 20, Fat: 5},
		{ProductName: "Granola", PortionSize: 50, PortionUnit: "g", Calories: 150, Protein: 8, Carbs: 12, Fat: 3},
	}
}

package repository

import (
	"testing"

	"schedura/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testDB opens a per-test in-memory database with the real migrated schema,
// unique indexes included.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Organisation{},
		&models.Role{},
		&models.UserRole{},
		&models.JoinRequest{},
		&models.Space{},
		&models.SpacePhoto{},
		&models.Booking{},
		&models.Payment{},
		&models.AccessLog{},
	))
	return db
}

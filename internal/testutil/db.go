// Package testutil bootstraps databases for package tests.
package testutil

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/straye-as/kontragent-api/internal/database"
	"github.com/straye-as/kontragent-api/internal/domain"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupSQLiteDB opens an in-memory sqlite database migrated from the domain models.
// The pool is pinned to one connection so every statement sees the same database.
func SetupSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.AutoMigrate(db))
	return db
}

// SetupMockDB returns a postgres-dialect gorm handle backed by sqlmock
func SetupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	return db, mock
}

// SeedRegion inserts a region with its cities
func SeedRegion(t *testing.T, db *gorm.DB, id int64, name string, cities ...string) {
	t.Helper()

	require.NoError(t, db.Create(&domain.Region{ID: id, Name: name}).Error)
	for _, city := range cities {
		require.NoError(t, db.Create(&domain.City{IDRegion: id, Name: city}).Error)
	}
}

// LogEntries returns every activity log entry in insertion order
func LogEntries(t *testing.T, db *gorm.DB) []domain.KontragentLog {
	t.Helper()

	var entries []domain.KontragentLog
	require.NoError(t, db.Order("id ASC").Find(&entries).Error)
	return entries
}

// LogTags returns the action tags of the activity log in insertion order
func LogTags(t *testing.T, db *gorm.DB) []string {
	t.Helper()

	entries := LogEntries(t, db)
	tags := make([]string, len(entries))
	for i, e := range entries {
		tags[i] = e.ActionType
	}
	return tags
}

// CountRows counts the rows of a model's table
func CountRows(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()

	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}

// Ptr returns a pointer to v
func Ptr[T any](v T) *T {
	return &v
}

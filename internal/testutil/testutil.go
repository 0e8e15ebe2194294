package testutil

import (
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"store_manager/internal/database"
	"store_manager/internal/logger"
	"store_manager/internal/models"

	"gorm.io/gorm"
)

var dbCounter atomic.Int64

// DB opens a private in-memory SQLite database with the full schema.
// A single connection keeps the database alive for the life of the test and
// serialises access the way a real store under load would queue.
func DB(tb testing.TB) *gorm.DB {
	tb.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(tb.Name())
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, dbCounter.Add(1))

	db, err := database.Initialize(database.Options{
		Driver:       "sqlite",
		URL:          dsn,
		LogLevel:     "silent",
		MaxOpenConns: 1,
		MaxIdleConns: 1,
	})
	if err != nil {
		tb.Fatalf("failed to open test db: %v", err)
	}
	if err := db.AutoMigrate(models.All()...); err != nil {
		tb.Fatalf("failed to migrate test db: %v", err)
	}

	tb.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// CloseDB closes the underlying pool so every later query fails, standing
// in for an unavailable store.
func CloseDB(tb testing.TB, db *gorm.DB) {
	tb.Helper()
	sqlDB, err := db.DB()
	if err != nil {
		tb.Fatalf("failed to get sql.DB: %v", err)
	}
	if err := sqlDB.Close(); err != nil {
		tb.Fatalf("failed to close sql.DB: %v", err)
	}
}

func Logger(tb testing.TB) *logger.Logger {
	tb.Helper()
	return logger.Nop()
}

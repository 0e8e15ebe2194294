package database

import (
	"fmt"
	"strings"
	"time"

	"store_manager/internal/logger"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

type Options struct {
	Driver       string
	URL          string
	LogLevel     string
	MaxOpenConns int
	MaxIdleConns int
	// Logger receives gorm's logs; nil discards them.
	Logger *logger.Logger
}

func Initialize(opts Options) (*gorm.DB, error) {
	dialector, err := dialectorFor(opts.Driver, opts.URL)
	if err != nil {
		return nil, err
	}

	config := &gorm.Config{
		Logger:         newGormLogger(opts.Logger, parseLogLevel(opts.LogLevel)),
		TranslateError: true,
	}

	// Connect to database
	db, err := gorm.Open(dialector, config)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	if opts.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(opts.MaxOpenConns)
	}
	if opts.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(opts.MaxIdleConns)
	}
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db, nil
}

func dialectorFor(driver, url string) (gorm.Dialector, error) {
	switch strings.ToLower(driver) {
	case "", "postgres", "postgresql":
		return postgres.Open(url), nil
	case "sqlite", "sqlite3":
		return sqlite.Open(withSQLiteForeignKeys(url)), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}

// SQLite only enforces ON DELETE CASCADE when foreign keys are switched on
// per connection.
func withSQLiteForeignKeys(dsn string) string {
	if strings.Contains(dsn, "_foreign_keys") || strings.Contains(dsn, "_fk=") {
		return dsn
	}
	if strings.Contains(dsn, "?") {
		return dsn + "&_foreign_keys=on"
	}
	return dsn + "?_foreign_keys=on"
}

func parseLogLevel(level string) gormLogger.LogLevel {
	switch strings.ToLower(level) {
	case "silent":
		return gormLogger.Silent
	case "error":
		return gormLogger.Error
	case "info":
		return gormLogger.Info
	default:
		return gormLogger.Warn
	}
}

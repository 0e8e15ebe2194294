package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"
)

func TestWithSQLiteForeignKeys(t *testing.T) {
	assert.Equal(t, "store.db?_foreign_keys=on", withSQLiteForeignKeys("store.db"))
	assert.Equal(t, "file:x?mode=memory&_foreign_keys=on", withSQLiteForeignKeys("file:x?mode=memory"))
	assert.Equal(t, "file:x?_fk=1", withSQLiteForeignKeys("file:x?_fk=1"))
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, logger.Silent, parseLogLevel("SILENT"))
	assert.Equal(t, logger.Info, parseLogLevel("info"))
	assert.Equal(t, logger.Warn, parseLogLevel(""))
}

func TestInitializeRejectsUnknownDriver(t *testing.T) {
	_, err := Initialize(Options{Driver: "oracle", URL: "whatever"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported database driver")
}

func TestInitializeSQLite(t *testing.T) {
	db, err := Initialize(Options{
		Driver:       "sqlite",
		URL:          "file:connection_test?mode=memory&cache=shared",
		LogLevel:     "silent",
		MaxOpenConns: 1,
	})
	require.NoError(t, err)

	var fk int
	require.NoError(t, db.Raw("PRAGMA foreign_keys").Scan(&fk).Error)
	assert.Equal(t, 1, fk)
}

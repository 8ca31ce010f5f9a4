// Package testutil opens throwaway databases and builds fixture rows for tests.
package testutil

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/localnerve/publishdb/internal/database"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenSQLite opens an empty pure-Go SQLite database in t's temp dir.
// The connection is closed when the test ends.
func OpenSQLite(t testing.TB) *gorm.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "site.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sqlite handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

// NewSite opens an empty database and creates every registered table.
func NewSite(t testing.TB) *gorm.DB {
	t.Helper()
	db := OpenSQLite(t)
	if err := database.DefaultRegistry().CreateTables(context.Background(), db, zaptest.NewLogger(t)); err != nil {
		t.Fatalf("create tables: %v", err)
	}
	return db
}

// Package testutil provides fixtures shared by package tests.
package testutil

import (
	"testing"

	"github.com/taskflow-dev/taskflow/db"
	"github.com/taskflow-dev/taskflow/internal/store/gormstore"
	"gorm.io/gorm"
)

// NewDB opens a migrated in-memory SQLite database. A single connection is
// kept open so every query sees the same database.
func NewDB(tb testing.TB) *gorm.DB {
	tb.Helper()

	gdb, err := db.ConnectDatabase(db.DriverSQLite, ":memory:")
	if err != nil {
		tb.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		tb.Fatalf("sql handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	tb.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.MigrateDatabase(gdb); err != nil {
		tb.Fatalf("migrate: %v", err)
	}

	return gdb
}

// NewStore returns a gormstore.Store over NewDB.
func NewStore(tb testing.TB) *gormstore.Store {
	tb.Helper()
	return gormstore.New(NewDB(tb))
}

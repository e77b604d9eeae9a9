// Package testutil provides an isolated in-memory database for package tests.
package testutil

import (
	"cafeteria/internal/config"
	"cafeteria/internal/database"
	"cafeteria/internal/migrations"
	"cafeteria/internal/models"
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// NewDB opens a fresh migrated sqlite database that lives until the test ends.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()
	cfg := &config.Config{
		DBDriver:    "sqlite",
		DatabaseURL: "file::memory:?_foreign_keys=on",
		DBLogLevel:  "silent",
	}
	db, err := database.Initialize(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	require.NoError(t, migrations.RunMigrations(db))
	return db
}

// AddItem inserts a menu item directly, bypassing service validation.
func AddItem(t testing.TB, db *gorm.DB, name, price string, stock int, available bool) *models.MenuItem {
	t.Helper()
	item := &models.MenuItem{
		ItemName:    name,
		Category:    models.CategoryBeverage,
		Price:       decimal.RequireFromString(price),
		Stock:       stock,
		IsAvailable: available,
	}
	require.NoError(t, db.Create(item).Error)
	return item
}

func Stock(t testing.TB, db *gorm.DB, name string) int {
	t.Helper()
	var item models.MenuItem
	require.NoError(t, db.WithContext(context.Background()).Where("item_name = ?", name).First(&item).Error)
	return item.Stock
}

func Count(t testing.TB, db *gorm.DB, model interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}

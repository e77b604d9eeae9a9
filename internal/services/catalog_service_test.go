package services

import (
	"cafeteria/internal/models"
	"cafeteria/internal/testutil"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListAvailableHidesSoldOutAndDisabled(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	testutil.AddItem(t, f.db, "Chai", "10.00", 5, true)
	testutil.AddItem(t, f.db, "Coffee", "15.00", 0, true)
	testutil.AddItem(t, f.db, "Lassi", "25.00", 5, false)

	items, err := f.catalog.ListAvailable(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Chai", items[0].ItemName)

	all, err := f.catalog.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestCheckAvailability(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	testutil.AddItem(t, f.db, "Thali", "80.00", 5, true)
	testutil.AddItem(t, f.db, "Lassi", "25.00", 5, false)

	assert.NoError(t, f.catalog.CheckAvailability(ctx, "Thali", 5))
	assert.ErrorIs(t, f.catalog.CheckAvailability(ctx, "Thali", 0), ErrInvalidQuantity)
	assert.ErrorIs(t, f.catalog.CheckAvailability(ctx, "Lassi", 1), ErrItemUnavailable)
	assert.ErrorIs(t, f.catalog.CheckAvailability(ctx, "Pizza", 1), ErrNotFound)

	err := f.catalog.CheckAvailability(ctx, "Thali", 6)
	var stockErr *StockError
	require.ErrorAs(t, err, &stockErr)
	assert.ErrorIs(t, err, ErrInsufficientStock)
	assert.Equal(t, 5, stockErr.Available)
	assert.Equal(t, 6, stockErr.Required)
	assert.Equal(t, "insufficient stock for 'Thali': available 5, required 6", err.Error())
}

func TestUpsertItem(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	item := &models.MenuItem{ItemName: " Poha ", Category: models.CategoryFood, Price: dec("35.50"), Stock: 8, IsAvailable: true}
	require.NoError(t, f.catalog.UpsertItem(ctx, item))
	require.NotZero(t, item.ID)
	assert.Equal(t, "Poha", item.ItemName)

	item.Stock = 3
	item.IsAvailable = false
	require.NoError(t, f.catalog.UpsertItem(ctx, item))
	stored, err := f.catalog.GetItem(ctx, "Poha")
	require.NoError(t, err)
	assert.Equal(t, 3, stored.Stock)
	assert.False(t, stored.IsAvailable)
	assert.Equal(t, "35.50", stored.Price.StringFixed(2))

	dup := &models.MenuItem{ItemName: "Poha", Category: models.CategoryFood, Price: dec("10"), Stock: 1}
	assert.ErrorIs(t, f.catalog.UpsertItem(ctx, dup), ErrDuplicateItem)

	bad := []*models.MenuItem{
		{ItemName: "", Category: models.CategoryFood},
		{ItemName: "Idli", Category: "Breakfast"},
		{ItemName: "Idli", Category: models.CategoryFood, Price: dec("-1")},
		{ItemName: "Idli", Category: models.CategoryFood, Stock: -1},
	}
	for _, b := range bad {
		assert.ErrorIs(t, f.catalog.UpsertItem(ctx, b), ErrValidation)
	}

	missing := &models.MenuItem{ID: 999, ItemName: "Vada", Category: models.CategorySnack, Price: dec("10")}
	assert.ErrorIs(t, f.catalog.UpsertItem(ctx, missing), ErrNotFound)
}

func TestDeleteItemKeepsOrderHistory(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	chai := testutil.AddItem(t, f.db, "Chai", "10.00", 5, true)
	order, err := f.orders.CreateOrder(ctx, "alice", []models.CartLine{line("Chai", 1, "10.00")}, models.PaymentCash)
	require.NoError(t, err)

	require.NoError(t, f.catalog.DeleteItem(ctx, chai.ID))
	assert.ErrorIs(t, f.catalog.DeleteItem(ctx, chai.ID), ErrNotFound)
	_, err = f.catalog.GetItem(ctx, "Chai")
	assert.ErrorIs(t, err, ErrNotFound)

	stored, err := f.orders.GetOrderByReference(ctx, order.Reference)
	require.NoError(t, err)
	require.Len(t, stored.Items, 1)
	assert.Equal(t, "Chai", stored.Items[0].ItemName)
}

func TestLowStock(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	testutil.AddItem(t, f.db, "Chai", "10.00", 50, true)
	testutil.AddItem(t, f.db, "Thali", "80.00", 4, true)
	testutil.AddItem(t, f.db, "Samosa", "20.00", 1, true)
	testutil.AddItem(t, f.db, "Coffee", "15.00", 9, true)

	items, err := f.catalog.LowStock(ctx, -1)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Samosa", items[0].ItemName)
	assert.Equal(t, "Thali", items[1].ItemName)

	items, err = f.catalog.LowStock(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, items, 3)
}

package services

import (
	"cafeteria/internal/models"
	"cafeteria/internal/testutil"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboard(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	testutil.AddItem(t, f.db, "Chai", "10.00", 50, true)
	testutil.AddItem(t, f.db, "Thali", "80.00", 3, true)
	_, err := f.users.Register(ctx, Registration{Username: "alice", Password: "Secret@123", Email: "alice@example.com"})
	require.NoError(t, err)

	_, err = f.orders.CreateOrder(ctx, "alice", []models.CartLine{line("Chai", 2, "10.00")}, models.PaymentUPI)
	require.NoError(t, err)
	cancelled, err := f.orders.CreateOrder(ctx, "alice", []models.CartLine{line("Thali", 1, "80.00")}, models.PaymentUPI)
	require.NoError(t, err)
	_, err = f.orders.UpdateOrderStatus(ctx, cancelled.ID, models.OrderCancelled, "admin")
	require.NoError(t, err)

	stats, err := f.reports.Dashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TodayOrders)
	assert.Equal(t, "20.00", stats.TodayRevenue.StringFixed(2))
	assert.Equal(t, int64(2), stats.MenuItems)
	assert.Equal(t, int64(1), stats.LowStockItems)
	assert.Equal(t, int64(1), stats.TotalCustomers)
	assert.Equal(t, int64(2), stats.TotalOrders)
}

func TestSalesGroupsByDay(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	testutil.AddItem(t, f.db, "Chai", "10.00", 100, true)

	now := time.Now().UTC()
	days := []int{0, 0, 2, 9}
	for i, ago := range days {
		order, err := f.orders.CreateOrder(ctx, "alice", []models.CartLine{line("Chai", i+1, "10.00")}, models.PaymentCash)
		require.NoError(t, err)
		require.NoError(t, f.db.Model(&models.Order{}).Where("id = ?", order.ID).
			Update("created_at", now.AddDate(0, 0, -ago)).Error)
	}

	sales, err := f.reports.Sales(ctx, time.Time{}, time.Time{})
	require.NoError(t, err)
	require.Len(t, sales, 2)
	assert.Equal(t, now.Format("2006-01-02"), sales[0].Date)
	assert.Equal(t, 2, sales[0].Orders)
	assert.Equal(t, "30.00", sales[0].Revenue.StringFixed(2))
	assert.Equal(t, 1, sales[1].Orders)
	assert.Equal(t, "30.00", sales[1].Revenue.StringFixed(2))

	sales, err = f.reports.Sales(ctx, now.AddDate(0, 0, -30), now)
	require.NoError(t, err)
	assert.Len(t, sales, 3)

	_, err = f.reports.Sales(ctx, now, now.AddDate(0, 0, -2))
	assert.ErrorIs(t, err, ErrValidation)
}

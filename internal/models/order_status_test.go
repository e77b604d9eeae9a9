package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to OrderStatus
		want     bool
	}{
		{OrderPending, OrderPreparing, true},
		{OrderPending, OrderCancelled, true},
		{OrderPending, OrderReady, false},
		{OrderPending, OrderCompleted, false},
		{OrderPreparing, OrderReady, true},
		{OrderPreparing, OrderCancelled, true},
		{OrderPreparing, OrderPending, false},
		{OrderReady, OrderCompleted, true},
		{OrderReady, OrderCancelled, true},
		{OrderReady, OrderPreparing, false},
		{OrderCompleted, OrderPreparing, false},
		{OrderCompleted, OrderCancelled, false},
		{OrderCancelled, OrderPending, false},
		{OrderCancelled, OrderCompleted, false},
		{"", OrderPending, false},
		{OrderPending, "", false},
	}
	for _, tt := range tests {
		got := CanTransition(tt.from, tt.to)
		if got != tt.want {
			t.Errorf("CanTransition(%q, %q) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestOrderStatusTerminal(t *testing.T) {
	assert.True(t, OrderCompleted.Terminal())
	assert.True(t, OrderCancelled.Terminal())
	assert.False(t, OrderPending.Terminal())
	assert.False(t, OrderReady.Terminal())

	assert.True(t, OrderReady.Valid())
	assert.False(t, OrderStatus("Shipped").Valid())
}

func TestCartLineTotal(t *testing.T) {
	line := CartLine{ItemName: "Chai", Quantity: 3, UnitPrice: decimal.RequireFromString("10.00")}
	assert.True(t, line.Total().Equal(decimal.RequireFromString("30.00")))

	line = CartLine{ItemName: "Samosa", Quantity: 7, UnitPrice: decimal.RequireFromString("12.35")}
	assert.Equal(t, "86.45", line.Total().StringFixed(2))
}

func TestMenuItemOrderable(t *testing.T) {
	item := MenuItem{ItemName: "Thali", Stock: 5, IsAvailable: true}
	assert.True(t, item.Orderable(5))
	assert.False(t, item.Orderable(6))

	item.IsAvailable = false
	assert.False(t, item.Orderable(1))
}

func TestValidators(t *testing.T) {
	assert.True(t, ValidPaymentMode(PaymentUPI))
	assert.True(t, ValidPaymentMode(PaymentCash))
	assert.False(t, ValidPaymentMode("Bitcoin"))

	assert.True(t, ValidCategory(CategoryBeverage))
	assert.False(t, ValidCategory("beverage"))
}

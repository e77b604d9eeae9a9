package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Order struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	Reference   string          `json:"order_reference" gorm:"column:order_reference;uniqueIndex;not null;size:50"`
	Username    string          `json:"username" gorm:"index;not null;size:50"`
	TotalAmount decimal.Decimal `json:"total_amount" gorm:"type:decimal(10,2);not null"`
	AmountPaid  decimal.Decimal `json:"amount_paid" gorm:"type:decimal(10,2);not null"`
	PaymentMode string          `json:"payment_mode" gorm:"not null;size:20"`
	Status      OrderStatus     `json:"status" gorm:"index;not null;size:20;default:'Pending'"`
	CreatedAt   time.Time       `json:"created_at" gorm:"index"`
	UpdatedAt   time.Time       `json:"updated_at"`

	Items   []OrderItem    `json:"items,omitempty" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	History []OrderHistory `json:"history,omitempty" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// OrderItem is a line of a committed order. ItemName and Price are snapshots
// taken at checkout, not references to the live menu row.
type OrderItem struct {
	ID       uint            `json:"id" gorm:"primaryKey"`
	OrderID  uint            `json:"order_id" gorm:"index;not null"`
	ItemName string          `json:"item_name" gorm:"not null;size:100"`
	Quantity int             `json:"quantity" gorm:"not null;check:quantity > 0"`
	Price    decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	Total    decimal.Decimal `json:"total" gorm:"type:decimal(10,2);not null"`
}

func (OrderItem) TableName() string {
	return "order_items"
}

type OrderHistory struct {
	ID        uint        `json:"id" gorm:"primaryKey"`
	OrderID   uint        `json:"order_id" gorm:"index;not null"`
	Status    OrderStatus `json:"status" gorm:"not null;size:20"`
	ChangedBy string      `json:"changed_by" gorm:"size:50"`
	ChangedAt time.Time   `json:"changed_at" gorm:"autoCreateTime"`
}

func (OrderHistory) TableName() string {
	return "order_history"
}

const (
	PaymentUPI  = "UPI"
	PaymentCard = "Card"
	PaymentCash = "Cash"
)

func ValidPaymentMode(mode string) bool {
	switch mode {
	case PaymentUPI, PaymentCard, PaymentCash:
		return true
	}
	return false
}

// CartLine is one entry of a cart handed to order creation.
type CartLine struct {
	ItemName  string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"price"`
}

func (l CartLine) Total() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type MenuItem struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	ItemName    string          `json:"item_name" gorm:"uniqueIndex;not null;size:100"`
	Category    string          `json:"category" gorm:"index;not null;size:50"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	Stock       int             `json:"stock" gorm:"not null;default:0;check:stock >= 0"`
	IsAvailable bool            `json:"is_available" gorm:"index;not null"`
	Description string          `json:"description" gorm:"type:text"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// Orderable reports whether quantity units can be sold right now.
func (m *MenuItem) Orderable(quantity int) bool {
	return m.IsAvailable && m.Stock >= quantity
}

const (
	CategoryFood     = "Food"
	CategoryDessert  = "Dessert"
	CategorySnack    = "Snack"
	CategoryBeverage = "Beverage"
)

var Categories = []string{CategoryFood, CategoryDessert, CategorySnack, CategoryBeverage}

func ValidCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}

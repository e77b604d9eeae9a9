package migrations

import (
	"cafeteria/internal/models"
	"context"
	"fmt"
	"log"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Models lists every table in dependency order.
func Models() []interface{} {
	return []interface{}{
		&models.User{},
		&models.MenuItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.OrderHistory{},
		&models.Favorite{},
		&models.Rating{},
	}
}

// RunMigrations creates or updates the schema. Existing rows are kept: orders
// are never dropped.
func RunMigrations(db *gorm.DB) error {
	log.Println("Running database migrations...")
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	log.Println("Database migrations completed successfully!")
	return nil
}

type sampleItem struct {
	name, category, price string
	stock                 int
	description           string
}

var sampleMenu = []sampleItem{
	{"Dal Chawal", models.CategoryFood, "50.00", 10, "Traditional dal and rice combo"},
	{"Thali", models.CategoryFood, "80.00", 5, "Complete meal with variety"},
	{"Half Thali", models.CategoryFood, "40.00", 20, "Half portion thali"},
	{"Gulab Jamun", models.CategoryDessert, "15.00", 15, "Sweet dessert"},
	{"Samosa", models.CategorySnack, "20.00", 25, "Crispy fried snack"},
	{"Chai", models.CategoryBeverage, "10.00", 50, "Hot tea"},
	{"Coffee", models.CategoryBeverage, "15.00", 30, "Hot coffee"},
	{"Sandwich", models.CategorySnack, "30.00", 12, "Vegetable sandwich"},
}

// SeedMenu inserts the sample menu into an empty menu table.
func SeedMenu(ctx context.Context, db *gorm.DB) error {
	var items int64
	if err := db.WithContext(ctx).Model(&models.MenuItem{}).Count(&items).Error; err != nil {
		return err
	}
	if items > 0 {
		log.Println("Menu already has items, skipping sample menu")
		return nil
	}

	menu := make([]models.MenuItem, 0, len(sampleMenu))
	for _, s := range sampleMenu {
		menu = append(menu, models.MenuItem{
			ItemName:    s.name,
			Category:    s.category,
			Price:       decimal.RequireFromString(s.price),
			Stock:       s.stock,
			IsAvailable: true,
			Description: s.description,
		})
	}
	if err := db.WithContext(ctx).Create(&menu).Error; err != nil {
		return fmt.Errorf("failed to create sample menu: %w", err)
	}
	log.Printf("Sample menu created (%d items)", len(menu))
	return nil
}

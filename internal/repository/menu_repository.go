package repository

import (
	"cafeteria/internal/models"
	"context"

	"gorm.io/gorm"
)

type MenuRepository interface {
	WithTx(tx *gorm.DB) MenuRepository
	ListAvailable(ctx context.Context) ([]models.MenuItem, error)
	ListAll(ctx context.Context) ([]models.MenuItem, error)
	GetByID(ctx context.Context, id uint) (*models.MenuItem, error)
	GetByName(ctx context.Context, name string) (*models.MenuItem, error)
	Create(ctx context.Context, item *models.MenuItem) error
	Update(ctx context.Context, item *models.MenuItem) error
	Delete(ctx context.Context, id uint) (int64, error)
	DecrementStock(ctx context.Context, id uint, quantity int) (bool, error)
	RestockByName(ctx context.Context, name string, quantity int) error
	ListLowStock(ctx context.Context, threshold int) ([]models.MenuItem, error)
	Count(ctx context.Context) (int64, error)
	CountLowStock(ctx context.Context, threshold int) (int64, error)
}

type menuRepository struct {
	db *gorm.DB
}

func NewMenuRepository(db *gorm.DB) MenuRepository {
	return &menuRepository{db: db}
}

func (r *menuRepository) WithTx(tx *gorm.DB) MenuRepository {
	return &menuRepository{db: tx}
}

func (r *menuRepository) ListAvailable(ctx context.Context) ([]models.MenuItem, error) {
	var items []models.MenuItem
	err := r.db.WithContext(ctx).
		Where("is_available = ? AND stock > ?", true, 0).
		Order("category, item_name").
		Find(&items).Error
	return items, err
}

func (r *menuRepository) ListAll(ctx context.Context) ([]models.MenuItem, error) {
	var items []models.MenuItem
	err := r.db.WithContext(ctx).Order("category, item_name").Find(&items).Error
	return items, err
}

func (r *menuRepository) GetByID(ctx context.Context, id uint) (*models.MenuItem, error) {
	var item models.MenuItem
	err := r.db.WithContext(ctx).First(&item, id).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *menuRepository) GetByName(ctx context.Context, name string) (*models.MenuItem, error) {
	var item models.MenuItem
	err := r.db.WithContext(ctx).Where("item_name = ?", name).First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *menuRepository) Create(ctx context.Context, item *models.MenuItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *menuRepository) Update(ctx context.Context, item *models.MenuItem) error {
	return r.db.WithContext(ctx).Model(item).Select("*").Omit("created_at").Updates(item).Error
}

func (r *menuRepository) Delete(ctx context.Context, id uint) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&models.MenuItem{}, id)
	return res.RowsAffected, res.Error
}

// DecrementStock subtracts quantity only while the item is available and has
// enough stock. It reports false when the guard rejected the update.
func (r *menuRepository) DecrementStock(ctx context.Context, id uint, quantity int) (bool, error) {
	res := r.db.WithContext(ctx).Model(&models.MenuItem{}).
		Where("id = ? AND is_available = ? AND stock >= ?", id, true, quantity).
		Update("stock", gorm.Expr("stock - ?", quantity))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *menuRepository) RestockByName(ctx context.Context, name string, quantity int) error {
	return r.db.WithContext(ctx).Model(&models.MenuItem{}).
		Where("item_name = ?", name).
		Update("stock", gorm.Expr("stock + ?", quantity)).Error
}

func (r *menuRepository) ListLowStock(ctx context.Context, threshold int) ([]models.MenuItem, error) {
	var items []models.MenuItem
	err := r.db.WithContext(ctx).
		Where("stock <= ?", threshold).
		Order("stock ASC, item_name").
		Find(&items).Error
	return items, err
}

func (r *menuRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.MenuItem{}).Count(&count).Error
	return count, err
}

func (r *menuRepository) CountLowStock(ctx context.Context, threshold int) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.MenuItem{}).Where("stock <= ?", threshold).Count(&count).Error
	return count, err
}

package repository

import (
	"cafeteria/internal/models"
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OrderRepository interface {
	WithTx(tx *gorm.DB) OrderRepository
	Create(ctx context.Context, order *models.Order) error
	GetByID(ctx context.Context, id uint) (*models.Order, error)
	GetByReference(ctx context.Context, reference string) (*models.Order, error)
	GetByUsername(ctx context.Context, username string) ([]models.Order, error)
	GetAll(ctx context.Context, limit int) ([]models.Order, error)
	GetByDateRange(ctx context.Context, start, end time.Time) ([]models.Order, error)
	UpdateStatusGuard(ctx context.Context, id uint, from, to models.OrderStatus) (int64, error)
	AppendHistory(ctx context.Context, entry *models.OrderHistory) error
	GetHistory(ctx context.Context, orderID uint) ([]models.OrderHistory, error)
	Count(ctx context.Context) (int64, error)
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) WithTx(tx *gorm.DB) OrderRepository {
	return &orderRepository{db: tx}
}

// Create inserts the order row only; lines and history are written separately.
func (r *orderRepository) Create(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(order).Error
}

func (r *orderRepository) GetByID(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).Preload("Items", orderItemsByID).First(&order, id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) GetByReference(ctx context.Context, reference string) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Preload("Items", orderItemsByID).
		Where("order_reference = ?", reference).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) GetByUsername(ctx context.Context, username string) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.WithContext(ctx).
		Preload("Items", orderItemsByID).
		Where("username = ?", username).
		Order("created_at DESC, id DESC").
		Find(&orders).Error
	return orders, err
}

func (r *orderRepository) GetAll(ctx context.Context, limit int) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.WithContext(ctx).
		Preload("Items", orderItemsByID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&orders).Error
	return orders, err
}

func (r *orderRepository) GetByDateRange(ctx context.Context, start, end time.Time) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.WithContext(ctx).
		Where("created_at >= ? AND created_at < ?", start, end).
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}

// UpdateStatusGuard moves an order from one status to another and returns the
// affected row count; zero means the order was not in the expected status.
func (r *orderRepository) UpdateStatusGuard(ctx context.Context, id uint, from, to models.OrderStatus) (int64, error) {
	res := r.db.WithContext(ctx).Model(&models.Order{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	return res.RowsAffected, res.Error
}

func (r *orderRepository) AppendHistory(ctx context.Context, entry *models.OrderHistory) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *orderRepository) GetHistory(ctx context.Context, orderID uint) ([]models.OrderHistory, error) {
	var history []models.OrderHistory
	err := r.db.WithContext(ctx).Where("order_id = ?", orderID).Order("id").Find(&history).Error
	return history, err
}

func (r *orderRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Order{}).Count(&count).Error
	return count, err
}

func orderItemsByID(db *gorm.DB) *gorm.DB {
	return db.Order("order_items.id")
}

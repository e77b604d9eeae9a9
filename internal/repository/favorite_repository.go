package repository

import (
	"cafeteria/internal/models"
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FavoriteRepository interface {
	Add(ctx context.Context, username, itemName string) error
	Remove(ctx context.Context, username, itemName string) error
	ListByUser(ctx context.Context, username string) ([]string, error)
}

type favoriteRepository struct {
	db *gorm.DB
}

func NewFavoriteRepository(db *gorm.DB) FavoriteRepository {
	return &favoriteRepository{db: db}
}

// Add ignores an existing (username, item_name) pair.
func (r *favoriteRepository) Add(ctx context.Context, username, itemName string) error {
	fav := &models.Favorite{Username: username, ItemName: itemName}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "username"}, {Name: "item_name"}},
			DoNothing: true,
		}).
		Create(fav).Error
}

func (r *favoriteRepository) Remove(ctx context.Context, username, itemName string) error {
	return r.db.WithContext(ctx).
		Where("username = ? AND item_name = ?", username, itemName).
		Delete(&models.Favorite{}).Error
}

func (r *favoriteRepository) ListByUser(ctx context.Context, username string) ([]string, error) {
	var names []string
	err := r.db.WithContext(ctx).Model(&models.Favorite{}).
		Where("username = ?", username).
		Order("item_name").
		Pluck("item_name", &names).Error
	return names, err
}

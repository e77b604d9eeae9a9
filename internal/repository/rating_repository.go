package repository

import (
	"cafeteria/internal/models"
	"context"

	"gorm.io/gorm"
)

type RatingRepository interface {
	Create(ctx context.Context, rating *models.Rating) error
	GetByReference(ctx context.Context, reference string) (*models.Rating, error)
}

type ratingRepository struct {
	db *gorm.DB
}

func NewRatingRepository(db *gorm.DB) RatingRepository {
	return &ratingRepository{db: db}
}

func (r *ratingRepository) Create(ctx context.Context, rating *models.Rating) error {
	return r.db.WithContext(ctx).Create(rating).Error
}

func (r *ratingRepository) GetByReference(ctx context.Context, reference string) (*models.Rating, error) {
	var rating models.Rating
	err := r.db.WithContext(ctx).Where("order_reference = ?", reference).First(&rating).Error
	if err != nil {
		return nil, err
	}
	return &rating, nil
}

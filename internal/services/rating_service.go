package services

import (
	"cafeteria/internal/models"
	"cafeteria/internal/repository"
	"context"
	"fmt"
	"strings"
)

type RatingService interface {
	Add(ctx context.Context, reference string, rating int, feedback string) (*models.Rating, error)
	Get(ctx context.Context, reference string) (*models.Rating, error)
}

type ratingService struct {
	ratingRepo repository.RatingRepository
	orderRepo  repository.OrderRepository
}

func NewRatingService(ratingRepo repository.RatingRepository, orderRepo repository.OrderRepository) RatingService {
	return &ratingService{ratingRepo: ratingRepo, orderRepo: orderRepo}
}

// Add stores the one rating an order may receive.
func (s *ratingService) Add(ctx context.Context, reference string, rating int, feedback string) (*models.Rating, error) {
	if rating < 1 || rating > 5 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidRating, rating)
	}
	if _, err := s.orderRepo.GetByReference(ctx, reference); err != nil {
		return nil, storageError(fmt.Sprintf("rate order %s", reference), err)
	}

	r := &models.Rating{
		OrderReference: reference,
		Rating:         rating,
		Feedback:       strings.TrimSpace(feedback),
	}
	if err := s.ratingRepo.Create(ctx, r); err != nil {
		if repository.IsDuplicateKey(err) {
			return nil, fmt.Errorf("order %s: %w", reference, ErrAlreadyRated)
		}
		return nil, storageError("save rating", err)
	}
	return r, nil
}

func (s *ratingService) Get(ctx context.Context, reference string) (*models.Rating, error) {
	r, err := s.ratingRepo.GetByReference(ctx, reference)
	if err != nil {
		return nil, storageError(fmt.Sprintf("get rating for %s", reference), err)
	}
	return r, nil
}

package services

import (
	"cafeteria/internal/repository"
	"context"
	"fmt"
)

type FavoriteService interface {
	Add(ctx context.Context, username, itemName string) error
	Remove(ctx context.Context, username, itemName string) error
	List(ctx context.Context, username string) ([]string, error)
}

type favoriteService struct {
	favoriteRepo repository.FavoriteRepository
	menuRepo     repository.MenuRepository
}

func NewFavoriteService(favoriteRepo repository.FavoriteRepository, menuRepo repository.MenuRepository) FavoriteService {
	return &favoriteService{favoriteRepo: favoriteRepo, menuRepo: menuRepo}
}

// Add marks an item as a favorite. Adding it twice is not an error.
func (s *favoriteService) Add(ctx context.Context, username, itemName string) error {
	if _, err := s.menuRepo.GetByName(ctx, itemName); err != nil {
		return storageError(fmt.Sprintf("favorite '%s'", itemName), err)
	}
	if err := s.favoriteRepo.Add(ctx, username, itemName); err != nil {
		return storageError("add favorite", err)
	}
	return nil
}

func (s *favoriteService) Remove(ctx context.Context, username, itemName string) error {
	if err := s.favoriteRepo.Remove(ctx, username, itemName); err != nil {
		return storageError("remove favorite", err)
	}
	return nil
}

func (s *favoriteService) List(ctx context.Context, username string) ([]string, error) {
	names, err := s.favoriteRepo.ListByUser(ctx, username)
	if err != nil {
		return nil, storageError("list favorites", err)
	}
	if names == nil {
		names = []string{}
	}
	return names, nil
}

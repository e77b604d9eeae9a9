package services

import (
	"cafeteria/internal/models"
	"cafeteria/internal/repository"
	"context"
	"fmt"
	"strings"
)

type CatalogService interface {
	ListAvailable(ctx context.Context) ([]models.MenuItem, error)
	ListAll(ctx context.Context) ([]models.MenuItem, error)
	GetItem(ctx context.Context, name string) (*models.MenuItem, error)
	CheckAvailability(ctx context.Context, name string, quantity int) error
	UpsertItem(ctx context.Context, item *models.MenuItem) error
	DeleteItem(ctx context.Context, id uint) error
	LowStock(ctx context.Context, threshold int) ([]models.MenuItem, error)
}

type catalogService struct {
	menuRepo          repository.MenuRepository
	lowStockThreshold int
}

func NewCatalogService(menuRepo repository.MenuRepository, lowStockThreshold int) CatalogService {
	return &catalogService{menuRepo: menuRepo, lowStockThreshold: lowStockThreshold}
}

func (s *catalogService) ListAvailable(ctx context.Context) ([]models.MenuItem, error) {
	items, err := s.menuRepo.ListAvailable(ctx)
	if err != nil {
		return nil, storageError("list menu", err)
	}
	return items, nil
}

func (s *catalogService) ListAll(ctx context.Context) ([]models.MenuItem, error) {
	items, err := s.menuRepo.ListAll(ctx)
	if err != nil {
		return nil, storageError("list menu", err)
	}
	return items, nil
}

func (s *catalogService) GetItem(ctx context.Context, name string) (*models.MenuItem, error) {
	item, err := s.menuRepo.GetByName(ctx, name)
	if err != nil {
		return nil, storageError(fmt.Sprintf("get item '%s'", name), err)
	}
	return item, nil
}

func (s *catalogService) CheckAvailability(ctx context.Context, name string, quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	item, err := s.menuRepo.GetByName(ctx, name)
	if err != nil {
		if repository.IsNotFound(err) {
			return &StockError{Item: name, Reason: ErrNotFound, Required: quantity}
		}
		return storageError("check availability", err)
	}
	if stockErr := checkItem(name, item, quantity); stockErr != nil {
		return stockErr
	}
	return nil
}

// checkItem reports why quantity units of item cannot be sold, or nil.
func checkItem(name string, item *models.MenuItem, quantity int) *StockError {
	if item == nil {
		return &StockError{Item: name, Reason: ErrNotFound, Required: quantity}
	}
	if !item.IsAvailable {
		return &StockError{Item: name, Reason: ErrItemUnavailable, Available: item.Stock, Required: quantity}
	}
	if item.Stock < quantity {
		return &StockError{Item: name, Reason: ErrInsufficientStock, Available: item.Stock, Required: quantity}
	}
	return nil
}

// UpsertItem inserts the item when it has no id yet and replaces it otherwise.
func (s *catalogService) UpsertItem(ctx context.Context, item *models.MenuItem) error {
	item.ItemName = strings.TrimSpace(item.ItemName)
	if err := validateMenuItem(item); err != nil {
		return err
	}

	var err error
	if item.ID == 0 {
		err = s.menuRepo.Create(ctx, item)
	} else {
		if _, getErr := s.menuRepo.GetByID(ctx, item.ID); getErr != nil {
			return storageError("update menu item", getErr)
		}
		err = s.menuRepo.Update(ctx, item)
	}
	if err != nil {
		if repository.IsDuplicateKey(err) {
			return fmt.Errorf("%w: '%s'", ErrDuplicateItem, item.ItemName)
		}
		return storageError("save menu item", err)
	}
	return nil
}

func validateMenuItem(item *models.MenuItem) error {
	if item.ItemName == "" {
		return fmt.Errorf("%w: item name is required", ErrValidation)
	}
	if !models.ValidCategory(item.Category) {
		return fmt.Errorf("%w: category must be one of %s", ErrValidation, strings.Join(models.Categories, ", "))
	}
	if item.Price.IsNegative() {
		return fmt.Errorf("%w: price cannot be negative", ErrValidation)
	}
	if item.Stock < 0 {
		return fmt.Errorf("%w: stock cannot be negative", ErrValidation)
	}
	return nil
}

func (s *catalogService) DeleteItem(ctx context.Context, id uint) error {
	rows, err := s.menuRepo.Delete(ctx, id)
	if err != nil {
		return storageError("delete menu item", err)
	}
	if rows == 0 {
		return fmt.Errorf("menu item %d: %w", id, ErrNotFound)
	}
	return nil
}

// LowStock lists items at or below threshold, lowest stock first. A negative
// threshold means the configured default.
func (s *catalogService) LowStock(ctx context.Context, threshold int) ([]models.MenuItem, error) {
	if threshold < 0 {
		threshold = s.lowStockThreshold
	}
	items, err := s.menuRepo.ListLowStock(ctx, threshold)
	if err != nil {
		return nil, storageError("list low stock", err)
	}
	return items, nil
}

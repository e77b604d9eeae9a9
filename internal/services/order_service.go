package services

import (
	"cafeteria/internal/models"
	"cafeteria/internal/repository"
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	defaultOrderLimit    = 50
	maxReferenceAttempts = 3
)

// OrderRequest describes an order to commit. Reference is generated when
// empty; Discount is subtracted from the total to give the amount paid.
type OrderRequest struct {
	Username    string
	Lines       []models.CartLine
	PaymentMode string
	Reference   string
	Discount    decimal.Decimal
}

type OrderService interface {
	CreateOrder(ctx context.Context, username string, lines []models.CartLine, paymentMode string) (*models.Order, error)
	PlaceOrder(ctx context.Context, req OrderRequest) (*models.Order, error)
	GetOrdersForUser(ctx context.Context, username string) ([]models.Order, error)
	GetAllOrders(ctx context.Context, limit int) ([]models.Order, error)
	GetOrderByReference(ctx context.Context, reference string) (*models.Order, error)
	GetOrderHistory(ctx context.Context, orderID uint) ([]models.OrderHistory, error)
	UpdateOrderStatus(ctx context.Context, orderID uint, status models.OrderStatus, actor string) (*models.Order, error)
}

type orderService struct {
	db            *gorm.DB
	menuRepo      repository.MenuRepository
	orderRepo     repository.OrderRepository
	orderItemRepo repository.OrderItemRepository
	initialStatus models.OrderStatus
}

func NewOrderService(db *gorm.DB, menuRepo repository.MenuRepository, orderRepo repository.OrderRepository, orderItemRepo repository.OrderItemRepository, initialStatus models.OrderStatus) OrderService {
	if !initialStatus.Valid() {
		initialStatus = models.OrderPending
	}
	return &orderService{
		db:            db,
		menuRepo:      menuRepo,
		orderRepo:     orderRepo,
		orderItemRepo: orderItemRepo,
		initialStatus: initialStatus,
	}
}

func (s *orderService) CreateOrder(ctx context.Context, username string, lines []models.CartLine, paymentMode string) (*models.Order, error) {
	return s.PlaceOrder(ctx, OrderRequest{Username: username, Lines: lines, PaymentMode: paymentMode})
}

// PlaceOrder validates stock and commits the order, its lines, the stock
// decrements and the first history row in one transaction.
func (s *orderService) PlaceOrder(ctx context.Context, req OrderRequest) (*models.Order, error) {
	if err := validateOrderRequest(req); err != nil {
		return nil, err
	}

	generated := req.Reference == ""
	for attempt := 1; ; attempt++ {
		ref := req.Reference
		if generated {
			var err error
			if ref, err = GenerateReference(); err != nil {
				return nil, err
			}
		}

		order, err := s.createOrder(ctx, req, ref)
		if err == nil {
			log.Printf("Order %s created for %s: total %s, status %s", order.Reference, order.Username, order.TotalAmount.StringFixed(2), order.Status)
			return order, nil
		}
		if !repository.IsDuplicateKey(err) {
			return nil, orderTxError("create order", err)
		}
		if !generated || attempt >= maxReferenceAttempts {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateReference, ref)
		}
		log.Printf("Order reference %s already taken, retrying", ref)
	}
}

func validateOrderRequest(req OrderRequest) error {
	if strings.TrimSpace(req.Username) == "" {
		return fmt.Errorf("%w: username is required", ErrValidation)
	}
	if len(req.Lines) == 0 {
		return ErrEmptyCart
	}
	for _, line := range req.Lines {
		if strings.TrimSpace(line.ItemName) == "" {
			return fmt.Errorf("%w: item name is required", ErrValidation)
		}
		if line.Quantity <= 0 {
			return fmt.Errorf("%w: '%s' has quantity %d", ErrInvalidQuantity, line.ItemName, line.Quantity)
		}
		if line.UnitPrice.IsNegative() {
			return fmt.Errorf("%w: '%s' has a negative price", ErrValidation, line.ItemName)
		}
	}
	if !models.ValidPaymentMode(req.PaymentMode) {
		return fmt.Errorf("%w: %q", ErrInvalidPaymentMode, req.PaymentMode)
	}
	if req.Discount.IsNegative() {
		return fmt.Errorf("%w: discount cannot be negative", ErrValidation)
	}
	if req.Reference != "" && !ValidReference(req.Reference) {
		return fmt.Errorf("%w: malformed order reference %q", ErrValidation, req.Reference)
	}
	return nil
}

// quantities sums the requested quantity per item and returns the item names
// in a stable order.
func quantities(lines []models.CartLine) (map[string]int, []string) {
	needed := make(map[string]int, len(lines))
	for _, line := range lines {
		needed[line.ItemName] += line.Quantity
	}
	names := make([]string, 0, len(needed))
	for name := range needed {
		names = append(names, name)
	}
	sort.Strings(names)
	return needed, names
}

func (s *orderService) createOrder(ctx context.Context, req OrderRequest, ref string) (*models.Order, error) {
	var created *models.Order

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		menuRepo := s.menuRepo.WithTx(tx)
		orderRepo := s.orderRepo.WithTx(tx)
		orderItemRepo := s.orderItemRepo.WithTx(tx)

		needed, names := quantities(req.Lines)
		items := make(map[string]*models.MenuItem, len(names))
		var failures []*StockError
		for _, name := range names {
			item, err := menuRepo.GetByName(ctx, name)
			if err != nil && !repository.IsNotFound(err) {
				return err
			}
			if stockErr := checkItem(name, item, needed[name]); stockErr != nil {
				failures = append(failures, stockErr)
				continue
			}
			items[name] = item
		}
		if len(failures) > 0 {
			return &StockValidationError{Failures: failures}
		}

		total := decimal.Zero
		for _, line := range req.Lines {
			total = total.Add(line.Total())
		}
		paid := total.Sub(req.Discount)
		if paid.IsNegative() {
			paid = decimal.Zero
		}

		order := &models.Order{
			Reference:   ref,
			Username:    req.Username,
			TotalAmount: total,
			AmountPaid:  paid,
			PaymentMode: req.PaymentMode,
			Status:      s.initialStatus,
		}
		if err := orderRepo.Create(ctx, order); err != nil {
			return err
		}

		rows := make([]models.OrderItem, 0, len(req.Lines))
		for _, line := range req.Lines {
			rows = append(rows, models.OrderItem{
				OrderID:  order.ID,
				ItemName: line.ItemName,
				Quantity: line.Quantity,
				Price:    line.UnitPrice,
				Total:    line.Total(),
			})
		}
		if err := orderItemRepo.CreateBatch(ctx, rows); err != nil {
			return err
		}

		for _, name := range names {
			ok, err := menuRepo.DecrementStock(ctx, items[name].ID, needed[name])
			if err != nil {
				return err
			}
			if !ok {
				return s.staleStockError(ctx, menuRepo, name, items[name].ID, needed[name])
			}
		}

		if err := orderRepo.AppendHistory(ctx, &models.OrderHistory{
			OrderID:   order.ID,
			Status:    s.initialStatus,
			ChangedBy: req.Username,
		}); err != nil {
			return err
		}

		order.Items = rows
		created = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// staleStockError reports a decrement that lost to a concurrent order. The
// row is read again so the error carries the stock that stopped it.
func (s *orderService) staleStockError(ctx context.Context, menuRepo repository.MenuRepository, name string, id uint, quantity int) error {
	current, err := menuRepo.GetByID(ctx, id)
	if err != nil && !repository.IsNotFound(err) {
		return err
	}
	stockErr := checkItem(name, current, quantity)
	if stockErr == nil {
		stockErr = &StockError{Item: name, Reason: ErrInsufficientStock, Available: current.Stock, Required: quantity}
	}
	return &StockValidationError{Failures: []*StockError{stockErr}}
}

// orderTxError passes domain errors through and classifies storage errors.
func orderTxError(op string, err error) error {
	var stockErr *StockValidationError
	var transitionErr *TransitionError
	if errors.As(err, &stockErr) || errors.As(err, &transitionErr) || errors.Is(err, ErrConflict) {
		return err
	}
	return storageError(op, err)
}

func (s *orderService) GetOrdersForUser(ctx context.Context, username string) ([]models.Order, error) {
	orders, err := s.orderRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, storageError("get orders", err)
	}
	return orders, nil
}

func (s *orderService) GetAllOrders(ctx context.Context, limit int) ([]models.Order, error) {
	if limit <= 0 {
		limit = defaultOrderLimit
	}
	orders, err := s.orderRepo.GetAll(ctx, limit)
	if err != nil {
		return nil, storageError("get orders", err)
	}
	return orders, nil
}

func (s *orderService) GetOrderByReference(ctx context.Context, reference string) (*models.Order, error) {
	order, err := s.orderRepo.GetByReference(ctx, reference)
	if err != nil {
		return nil, storageError(fmt.Sprintf("get order %s", reference), err)
	}
	return order, nil
}

func (s *orderService) GetOrderHistory(ctx context.Context, orderID uint) ([]models.OrderHistory, error) {
	if _, err := s.orderRepo.GetByID(ctx, orderID); err != nil {
		return nil, storageError(fmt.Sprintf("get order %d", orderID), err)
	}
	history, err := s.orderRepo.GetHistory(ctx, orderID)
	if err != nil {
		return nil, storageError("get order history", err)
	}
	return history, nil
}

// UpdateOrderStatus applies one workflow transition. Cancelling puts the
// ordered quantities back on every item that is still on the menu.
func (s *orderService) UpdateOrderStatus(ctx context.Context, orderID uint, status models.OrderStatus, actor string) (*models.Order, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	var updated *models.Order
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		orderRepo := s.orderRepo.WithTx(tx)
		menuRepo := s.menuRepo.WithTx(tx)

		order, err := orderRepo.GetByID(ctx, orderID)
		if err != nil {
			return err
		}
		if !models.CanTransition(order.Status, status) {
			return &TransitionError{From: order.Status, To: status}
		}

		rows, err := orderRepo.UpdateStatusGuard(ctx, order.ID, order.Status, status)
		if err != nil {
			return err
		}
		if rows == 0 {
			return fmt.Errorf("order %s: %w", order.Reference, ErrConflict)
		}

		if err := orderRepo.AppendHistory(ctx, &models.OrderHistory{
			OrderID:   order.ID,
			Status:    status,
			ChangedBy: actor,
		}); err != nil {
			return err
		}

		if status == models.OrderCancelled {
			for _, line := range order.Items {
				if err := menuRepo.RestockByName(ctx, line.ItemName, line.Quantity); err != nil {
					return err
				}
			}
		}

		order.Status = status
		updated = order
		return nil
	})
	if err != nil {
		return nil, orderTxError("update order status", err)
	}

	log.Printf("Order %s moved to %s by %s", updated.Reference, status, actor)
	return updated, nil
}

package services

import (
	"cafeteria/internal/models"
	"cafeteria/internal/repository"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrConnection         = errors.New("storage unavailable")
	ErrNotFound           = errors.New("not found")
	ErrItemUnavailable    = errors.New("item is not available")
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrDuplicateUsername  = errors.New("username already exists")
	ErrDuplicateItem      = errors.New("menu item already exists")
	ErrDuplicateReference = errors.New("order reference already exists")
	ErrAlreadyRated       = errors.New("order already rated")
	ErrTransaction        = errors.New("transaction failed")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrInvalidStatus      = errors.New("invalid order status")
	ErrConflict           = errors.New("concurrent modification")
	ErrEmptyCart          = errors.New("cart is empty")
	ErrCartConsumed       = errors.New("cart changed or already checked out")
	ErrInvalidQuantity    = errors.New("quantity must be positive")
	ErrInvalidRating      = errors.New("rating must be between 1 and 5")
	ErrInvalidPaymentMode = errors.New("unsupported payment mode")
	ErrPaymentRejected    = errors.New("payment rejected")
	ErrInvalidDiscount    = errors.New("invalid discount code")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrValidation         = errors.New("validation failed")
)

// StockError explains why one item cannot be ordered. Reason is one of
// ErrNotFound, ErrItemUnavailable or ErrInsufficientStock.
type StockError struct {
	Item      string `json:"item"`
	Reason    error  `json:"-"`
	Available int    `json:"available"`
	Required  int    `json:"required"`
}

func (e *StockError) Error() string {
	switch {
	case errors.Is(e.Reason, ErrNotFound):
		return fmt.Sprintf("item '%s' not found", e.Item)
	case errors.Is(e.Reason, ErrItemUnavailable):
		return fmt.Sprintf("item '%s' is not available", e.Item)
	case errors.Is(e.Reason, ErrInsufficientStock):
		return fmt.Sprintf("insufficient stock for '%s': available %d, required %d", e.Item, e.Available, e.Required)
	}
	return fmt.Sprintf("item '%s': %v", e.Item, e.Reason)
}

func (e *StockError) Unwrap() error {
	return e.Reason
}

// StockValidationError collects every offending item of a cart so the caller
// can correct all of them at once.
type StockValidationError struct {
	Failures []*StockError
}

func (e *StockValidationError) Error() string {
	msgs := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		msgs = append(msgs, f.Error())
	}
	return "stock validation failed: " + strings.Join(msgs, "; ")
}

func (e *StockValidationError) Unwrap() []error {
	errs := make([]error, 0, len(e.Failures))
	for _, f := range e.Failures {
		errs = append(errs, f)
	}
	return errs
}

type TransitionError struct {
	From models.OrderStatus
	To   models.OrderStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot move order from %s to %s", e.From, e.To)
}

func (e *TransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// ReconciliationError means payment was confirmed but the order could not be
// recorded. It always carries the reference shown to the customer.
type ReconciliationError struct {
	Reference   string
	PaymentMode string
	Amount      decimal.Decimal
	Err         error
}

func (e *ReconciliationError) Error() string {
	return fmt.Sprintf("payment %s of %s via %s confirmed but order was not recorded: %v",
		e.Reference, e.Amount.StringFixed(2), e.PaymentMode, e.Err)
}

func (e *ReconciliationError) Unwrap() error {
	return e.Err
}

// storageError classifies a raw gorm/driver error into the service taxonomy.
func storageError(op string, err error) error {
	if err == nil {
		return nil
	}
	if repository.IsNotFound(err) {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	if isConnectionError(err) {
		return fmt.Errorf("%s: %w: %v", op, ErrConnection, err)
	}
	return fmt.Errorf("%s: %w: %v", op, ErrTransaction, err)
}

func isConnectionError(err error) bool {
	if errors.Is(err, driver.ErrBadConn) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var opErr *net.OpError
	return errors.As(err, &opErr)
}

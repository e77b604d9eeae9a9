package services

import (
	"cafeteria/internal/models"
	"cafeteria/internal/repository"
	"cafeteria/internal/session"
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	discountCodes = map[string]int64{
		"WELCOME10": 10,
		"STUDENT20": 20,
		"FREESHIP":  5,
		"SAVE15":    15,
	}

	cardNumberPattern = regexp.MustCompile(`^\d{12,19}$`)
	cardExpiryPattern = regexp.MustCompile(`^(0[1-9]|1[0-2])/\d{2}$`)
	cardCVVPattern    = regexp.MustCompile(`^\d{3,4}$`)
)

// ReconciliationStore keeps payments that were confirmed without an order.
type ReconciliationStore interface {
	RecordReconciliation(ctx context.Context, rec models.Reconciliation) error
	PendingReconciliations(ctx context.Context) ([]models.Reconciliation, error)
}

// CartStore hands a cart to exactly one checkout.
type CartStore interface {
	Save(ctx context.Context, s *session.Session) error
	ConsumeCart(ctx context.Context, id string, version int64) error
}

type CardDetails struct {
	Number string `json:"number"`
	Name   string `json:"name"`
	Expiry string `json:"expiry"`
	CVV    string `json:"cvv"`
}

type CheckoutRequest struct {
	PaymentMode  string       `json:"payment_mode"`
	DiscountCode string       `json:"discount_code"`
	Card         *CardDetails `json:"card,omitempty"`
}

type Receipt struct {
	Reference  string          `json:"order_reference"`
	Subtotal   decimal.Decimal `json:"subtotal"`
	Discount   decimal.Decimal `json:"discount"`
	AmountPaid decimal.Decimal `json:"amount_paid"`
	Order      *models.Order   `json:"order"`
}

type CheckoutService interface {
	Validate(ctx context.Context, lines []models.CartLine) error
	Checkout(ctx context.Context, sess *session.Session, req CheckoutRequest) (*Receipt, error)
}

type checkoutService struct {
	menuRepo        repository.MenuRepository
	orders          OrderService
	carts           CartStore
	reconciliations ReconciliationStore
}

func NewCheckoutService(menuRepo repository.MenuRepository, orders OrderService, carts CartStore, reconciliations ReconciliationStore) CheckoutService {
	return &checkoutService{menuRepo: menuRepo, orders: orders, carts: carts, reconciliations: reconciliations}
}

// Validate checks every cart line against current stock and reports all
// failing items together.
func (s *checkoutService) Validate(ctx context.Context, lines []models.CartLine) error {
	if len(lines) == 0 {
		return ErrEmptyCart
	}

	needed, names := quantities(lines)
	var failures []*StockError
	for _, name := range names {
		item, err := s.menuRepo.GetByName(ctx, name)
		if err != nil && !repository.IsNotFound(err) {
			return storageError("validate cart", err)
		}
		if stockErr := checkItem(name, item, needed[name]); stockErr != nil {
			failures = append(failures, stockErr)
		}
	}
	if len(failures) > 0 {
		return &StockValidationError{Failures: failures}
	}
	return nil
}

// Checkout charges the cart and records the order. The stored cart is
// consumed before payment, so a second checkout of the same cart fails with
// ErrCartConsumed. It is put back when payment or the order fails.
func (s *checkoutService) Checkout(ctx context.Context, sess *session.Session, req CheckoutRequest) (*Receipt, error) {
	lines := sess.Cart.Lines()
	if err := s.Validate(ctx, lines); err != nil {
		return nil, err
	}
	if !models.ValidPaymentMode(req.PaymentMode) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPaymentMode, req.PaymentMode)
	}

	percent, err := discountPercent(req.DiscountCode)
	if err != nil {
		return nil, err
	}
	subtotal := sess.Cart.Total()
	discount := subtotal.Mul(decimal.NewFromInt(percent)).Div(decimal.NewFromInt(100)).Round(2)
	paid := subtotal.Sub(discount)

	ref, err := GenerateReference()
	if err != nil {
		return nil, err
	}

	version := sess.Cart.Version
	if err := s.carts.ConsumeCart(ctx, sess.ID, version); err != nil {
		if errors.Is(err, session.ErrCartChanged) || errors.Is(err, session.ErrNotFound) {
			return nil, ErrCartConsumed
		}
		return nil, fmt.Errorf("%w: %v", ErrConnection, err)
	}

	if err := simulatePayment(req); err != nil {
		s.restoreCart(ctx, sess, version)
		return nil, err
	}
	log.Printf("Payment %s of %s via %s confirmed for %s", ref, paid.StringFixed(2), req.PaymentMode, sess.Username)

	order, err := s.orders.PlaceOrder(ctx, OrderRequest{
		Username:    sess.Username,
		Lines:       lines,
		PaymentMode: req.PaymentMode,
		Reference:   ref,
		Discount:    discount,
	})
	if err != nil {
		s.restoreCart(ctx, sess, version)
		rec := models.Reconciliation{
			Reference:   ref,
			Username:    sess.Username,
			PaymentMode: req.PaymentMode,
			Amount:      paid,
			Lines:       lines,
			Cause:       err.Error(),
			RecordedAt:  time.Now().UTC(),
		}
		if recErr := s.reconciliations.RecordReconciliation(ctx, rec); recErr != nil {
			log.Printf("Failed to store reconciliation record %s: %v", ref, recErr)
		}
		log.Printf("RECONCILIATION REQUIRED: payment %s of %s via %s by %s confirmed but order failed: %v",
			ref, paid.StringFixed(2), req.PaymentMode, sess.Username, err)
		return nil, &ReconciliationError{Reference: ref, PaymentMode: req.PaymentMode, Amount: paid, Err: err}
	}

	sess.Cart.Clear()
	sess.Touch()
	return &Receipt{
		Reference:  order.Reference,
		Subtotal:   subtotal,
		Discount:   discount,
		AmountPaid: order.AmountPaid,
		Order:      order,
	}, nil
}

// restoreCart puts back a cart whose checkout produced no order. Its version
// moves past the consumed one, so copies loaded earlier stay stale.
func (s *checkoutService) restoreCart(ctx context.Context, sess *session.Session, version int64) {
	sess.Cart.Version = version + 2
	sess.Touch()
	if err := s.carts.Save(ctx, sess); err != nil {
		log.Printf("Failed to restore cart of session %s: %v", sess.ID, err)
	}
}

func discountPercent(code string) (int64, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return 0, nil
	}
	percent, ok := discountCodes[code]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDiscount, code)
	}
	return percent, nil
}

// simulatePayment stands in for a payment gateway. UPI and cash always
// succeed; cards need plausible details.
func simulatePayment(req CheckoutRequest) error {
	if req.PaymentMode != models.PaymentCard {
		return nil
	}
	card := req.Card
	if card == nil {
		return fmt.Errorf("%w: card details are required", ErrPaymentRejected)
	}
	number := strings.ReplaceAll(card.Number, " ", "")
	switch {
	case number == "" || strings.TrimSpace(card.Name) == "" || strings.TrimSpace(card.Expiry) == "" || strings.TrimSpace(card.CVV) == "":
		return fmt.Errorf("%w: all card fields are required", ErrPaymentRejected)
	case !cardNumberPattern.MatchString(number):
		return fmt.Errorf("%w: invalid card number", ErrPaymentRejected)
	case !cardExpiryPattern.MatchString(strings.TrimSpace(card.Expiry)):
		return fmt.Errorf("%w: expiry must be MM/YY", ErrPaymentRejected)
	case !cardCVVPattern.MatchString(strings.TrimSpace(card.CVV)):
		return fmt.Errorf("%w: invalid CVV", ErrPaymentRejected)
	}
	return nil
}

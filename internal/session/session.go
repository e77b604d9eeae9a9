// Package session holds the per-user state that survives between requests:
// identity and the shopping cart.
package session

import (
	"cafeteria/internal/models"
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound    = errors.New("session not found")
	ErrCartChanged = errors.New("cart changed or already checked out")
)

type Store interface {
	Save(ctx context.Context, s *Session) error
	Load(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
	// ConsumeCart empties the stored cart of session id if it is non-empty and
	// still at version. Otherwise it returns ErrCartChanged.
	ConsumeCart(ctx context.Context, id string, version int64) error
}

type Session struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	Cart      Cart      `json:"cart"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func New(username, role string) *Session {
	now := time.Now()
	return &Session{
		ID:        uuid.NewString(),
		Username:  username,
		Role:      role,
		Cart:      Cart{Items: map[string]CartItem{}},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (s *Session) Touch() {
	s.UpdatedAt = time.Now()
}

type CartItem struct {
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"price"`
}

// Cart maps item names to a quantity and the unit price locked in when the
// item was added. Version grows with every change.
type Cart struct {
	Items   map[string]CartItem `json:"items"`
	Version int64               `json:"version"`
}

// Set replaces the quantity of an item. A quantity of zero or less removes it.
func (c *Cart) Set(name string, quantity int, unitPrice decimal.Decimal) {
	if quantity <= 0 {
		c.Remove(name)
		return
	}
	if c.Items == nil {
		c.Items = map[string]CartItem{}
	}
	c.Items[name] = CartItem{Quantity: quantity, UnitPrice: unitPrice}
	c.Version++
}

func (c *Cart) Remove(name string) bool {
	if _, ok := c.Items[name]; !ok {
		return false
	}
	delete(c.Items, name)
	c.Version++
	return true
}

func (c *Cart) Clear() {
	c.Items = map[string]CartItem{}
	c.Version++
}

func (c *Cart) Quantity(name string) int {
	return c.Items[name].Quantity
}

func (c *Cart) Empty() bool {
	return len(c.Items) == 0
}

// Lines returns the cart as order lines sorted by item name.
func (c *Cart) Lines() []models.CartLine {
	lines := make([]models.CartLine, 0, len(c.Items))
	for name, item := range c.Items {
		lines = append(lines, models.CartLine{ItemName: name, Quantity: item.Quantity, UnitPrice: item.UnitPrice})
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].ItemName < lines[j].ItemName })
	return lines
}

func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, line := range c.Lines() {
		total = total.Add(line.Total())
	}
	return total
}

// Count is the number of units in the cart.
func (c *Cart) Count() int {
	n := 0
	for _, item := range c.Items {
		n += item.Quantity
	}
	return n
}

func (c Cart) clone() Cart {
	items := make(map[string]CartItem, len(c.Items))
	for name, item := range c.Items {
		items[name] = item
	}
	return Cart{Items: items, Version: c.Version}
}

// Consumed is the stored state of a cart checked out at version.
func Consumed(version int64) Cart {
	return Cart{Items: map[string]CartItem{}, Version: version + 1}
}

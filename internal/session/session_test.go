package session

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCart(t *testing.T) {
	var cart Cart
	assert.True(t, cart.Empty())

	cart.Set("Samosa", 7, decimal.RequireFromString("12.35"))
	cart.Set("Chai", 2, decimal.RequireFromString("10.00"))
	assert.Equal(t, 9, cart.Count())
	assert.Equal(t, "106.45", cart.Total().StringFixed(2))

	lines := cart.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, "Chai", lines[0].ItemName)
	assert.Equal(t, "Samosa", lines[1].ItemName)

	cart.Set("Chai", 0, decimal.Zero)
	assert.Equal(t, 0, cart.Quantity("Chai"))
	assert.False(t, cart.Remove("Chai"))
	assert.True(t, cart.Remove("Samosa"))
	assert.True(t, cart.Empty())

	cart.Set("Coffee", 1, decimal.RequireFromString("15"))
	before := cart.Version
	cart.Clear()
	assert.Equal(t, before+1, cart.Version)
	assert.True(t, cart.Empty())
	assert.True(t, cart.Total().IsZero())
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Hour)

	sess := New("alice", "Customer")
	sess.Cart.Set("Chai", 3, decimal.RequireFromString("10.00"))
	require.NoError(t, store.Save(ctx, sess))

	sess.Cart.Set("Chai", 5, decimal.RequireFromString("10.00"))
	loaded, err := store.Load(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", loaded.Username)
	assert.Equal(t, 3, loaded.Cart.Quantity("Chai"))

	require.NoError(t, store.Delete(ctx, sess.ID))
	_, err = store.Load(ctx, sess.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreConsumeCart(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Hour)

	sess := New("alice", "Customer")
	sess.Cart.Set("Chai", 2, decimal.RequireFromString("10.00"))
	require.NoError(t, store.Save(ctx, sess))
	version := sess.Cart.Version

	assert.ErrorIs(t, store.ConsumeCart(ctx, sess.ID, version-1), ErrCartChanged)
	require.NoError(t, store.ConsumeCart(ctx, sess.ID, version))
	assert.ErrorIs(t, store.ConsumeCart(ctx, sess.ID, version), ErrCartChanged)

	loaded, err := store.Load(ctx, sess.ID)
	require.NoError(t, err)
	assert.True(t, loaded.Cart.Empty())
	assert.Equal(t, version+1, loaded.Cart.Version)

	sess.Cart.Clear()
	assert.Equal(t, loaded.Cart.Version, sess.Cart.Version)
	assert.ErrorIs(t, store.ConsumeCart(ctx, "missing", 0), ErrNotFound)
}

func TestMemoryStoreExpiry(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Millisecond)
	sess := New("alice", "Customer")
	require.NoError(t, store.Save(ctx, sess))

	time.Sleep(5 * time.Millisecond)
	_, err := store.Load(ctx, sess.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

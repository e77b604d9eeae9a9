package redis

import (
	"cafeteria/internal/models"
	"cafeteria/internal/session"
	"context"
	"os"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// REDIS_TEST_URL points at a disposable redis database; the test flushes it.
func newTestClient(t *testing.T) *Client {
	t.Helper()
	url := os.Getenv("REDIS_TEST_URL")
	if url == "" {
		t.Skip("REDIS_TEST_URL not set")
	}
	c, err := Initialize(url, time.Minute)
	require.NoError(t, err)
	require.NoError(t, c.rdb.FlushDB(context.Background()).Err())
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestSessionRoundTrip(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	sess := session.New("alice", "Customer")
	sess.Cart.Set("Chai", 3, decimal.RequireFromString("10.00"))
	require.NoError(t, c.Save(ctx, sess))

	ttl, err := c.rdb.TTL(ctx, sessionPrefix+sess.ID).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))

	loaded, err := c.Load(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, loaded.Cart.Quantity("Chai"))
	assert.Equal(t, "30.00", loaded.Cart.Total().StringFixed(2))

	require.NoError(t, c.Delete(ctx, sess.ID))
	_, err = c.Load(ctx, sess.ID)
	assert.ErrorIs(t, err, session.ErrNotFound)
}

func TestConsumeCartOnce(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	sess := session.New("alice", "Customer")
	sess.Cart.Set("Chai", 3, decimal.RequireFromString("10.00"))
	require.NoError(t, c.Save(ctx, sess))
	version := sess.Cart.Version

	errs := make(chan error, 2)
	for i := 0; i < 2; i++ {
		go func() { errs <- c.ConsumeCart(ctx, sess.ID, version) }()
	}
	var consumed int
	for i := 0; i < 2; i++ {
		if err := <-errs; err == nil {
			consumed++
		} else {
			assert.ErrorIs(t, err, session.ErrCartChanged)
		}
	}
	assert.Equal(t, 1, consumed)

	loaded, err := c.Load(ctx, sess.ID)
	require.NoError(t, err)
	assert.True(t, loaded.Cart.Empty())
	assert.Equal(t, version+1, loaded.Cart.Version)
	assert.ErrorIs(t, c.ConsumeCart(ctx, "missing", 0), session.ErrNotFound)
}

func TestReconciliationList(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	rec := models.Reconciliation{
		Reference:   "ORD-20240101120000-ABCDEFGH",
		Username:    "alice",
		PaymentMode: models.PaymentUPI,
		Amount:      decimal.RequireFromString("27.00"),
		Cause:       "storage unavailable",
		RecordedAt:  time.Now().UTC(),
	}
	require.NoError(t, c.RecordReconciliation(ctx, rec))

	records, err := c.PendingReconciliations(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, rec.Reference, records[0].Reference)

	ttl, err := c.rdb.TTL(ctx, reconciliationList).Result()
	require.NoError(t, err)
	assert.Equal(t, time.Duration(-1), ttl)
}

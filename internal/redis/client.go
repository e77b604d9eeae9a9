package redis

import (
	"cafeteria/internal/models"
	"cafeteria/internal/session"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const (
	sessionPrefix      = "session:"
	reconciliationList = "reconciliation:pending"
)

// Client stores sessions with a sliding TTL and keeps the list of payments
// that still need reconciliation.
type Client struct {
	rdb        *redis.Client
	sessionTTL time.Duration
}

func Initialize(redisURL string, sessionTTL time.Duration) (*Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	rdb := redis.NewClient(opt)

	// Test connection
	ctx := context.Background()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewClient(rdb, sessionTTL), nil
}

func NewClient(rdb *redis.Client, sessionTTL time.Duration) *Client {
	return &Client{rdb: rdb, sessionTTL: sessionTTL}
}

// Session management
func (c *Client) Save(ctx context.Context, s *session.Session) error {
	jsonData, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal session data: %w", err)
	}

	return c.rdb.Set(ctx, sessionPrefix+s.ID, jsonData, c.sessionTTL).Err()
}

func (c *Client) Load(ctx context.Context, id string) (*session.Session, error) {
	val, err := c.rdb.Get(ctx, sessionPrefix+id).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, session.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	var s session.Session
	if err := json.Unmarshal([]byte(val), &s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session data: %w", err)
	}

	return &s, nil
}

// ConsumeCart clears the cart under WATCH so that two checkouts of one cart
// cannot both succeed.
func (c *Client) ConsumeCart(ctx context.Context, id string, version int64) error {
	key := sessionPrefix + id
	err := c.rdb.Watch(ctx, func(tx *redis.Tx) error {
		val, err := tx.Get(ctx, key).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return session.ErrNotFound
			}
			return fmt.Errorf("failed to get session: %w", err)
		}

		var s session.Session
		if err := json.Unmarshal([]byte(val), &s); err != nil {
			return fmt.Errorf("failed to unmarshal session data: %w", err)
		}
		if s.Cart.Version != version || s.Cart.Empty() {
			return session.ErrCartChanged
		}
		s.Cart = session.Consumed(version)
		s.Touch()

		jsonData, err := json.Marshal(&s)
		if err != nil {
			return fmt.Errorf("failed to marshal session data: %w", err)
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, jsonData, c.sessionTTL)
			return nil
		})
		return err
	}, key)
	if errors.Is(err, redis.TxFailedErr) {
		return session.ErrCartChanged
	}
	return err
}

func (c *Client) Delete(ctx context.Context, id string) error {
	return c.rdb.Del(ctx, sessionPrefix+id).Err()
}

// Reconciliation records have no TTL.
func (c *Client) RecordReconciliation(ctx context.Context, rec models.Reconciliation) error {
	jsonData, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal reconciliation: %w", err)
	}
	return c.rdb.RPush(ctx, reconciliationList, jsonData).Err()
}

func (c *Client) PendingReconciliations(ctx context.Context) ([]models.Reconciliation, error) {
	vals, err := c.rdb.LRange(ctx, reconciliationList, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read reconciliations: %w", err)
	}

	records := make([]models.Reconciliation, 0, len(vals))
	for _, val := range vals {
		var rec models.Reconciliation
		if err := json.Unmarshal([]byte(val), &rec); err != nil {
			return nil, fmt.Errorf("failed to unmarshal reconciliation: %w", err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// Close Redis connection
func (c *Client) Close() error {
	return c.rdb.Close()
}

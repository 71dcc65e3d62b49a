package storage

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"restaurant-ordering/internal/domain"

	"github.com/redis/go-redis/v9"
)

type MenuCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewMenuCache(client *redis.Client, ttl time.Duration) *MenuCache {
	return &MenuCache{Client: client, TTL: ttl}
}

func (c *MenuCache) MenuKey(restaurantID int) string {
	return "menu:" + strconv.Itoa(restaurantID)
}

// GetMenu returns the cached menu and whether the key was present.
// Cache errors are treated as misses; the database stays authoritative.
func (c *MenuCache) GetMenu(ctx context.Context, restaurantID int) ([]domain.MenuItem, bool) {
	raw, err := c.Client.Get(ctx, c.MenuKey(restaurantID)).Bytes()
	if err != nil {
		return nil, false
	}
	var items []domain.MenuItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, false
	}
	return items, true
}

func (c *MenuCache) SetMenu(ctx context.Context, restaurantID int, items []domain.MenuItem) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return c.Client.Set(ctx, c.MenuKey(restaurantID), raw, c.TTL).Err()
}

func (c *MenuCache) InvalidateMenu(ctx context.Context, restaurantID int) error {
	return c.Client.Del(ctx, c.MenuKey(restaurantID)).Err()
}

// StatsCounter keeps running per-restaurant order counters, fed by the
// order event consumer.
type StatsCounter struct {
	Client *redis.Client
}

func NewStatsCounter(client *redis.Client) *StatsCounter {
	return &StatsCounter{Client: client}
}

func (s *StatsCounter) orderCountKey(restaurantID int) string {
	return "orders_count:" + strconv.Itoa(restaurantID)
}

func (s *StatsCounter) RecordOrder(ctx context.Context, restaurantID int) error {
	return s.Client.Incr(ctx, s.orderCountKey(restaurantID)).Err()
}

func (s *StatsCounter) OrderCount(ctx context.Context, restaurantID int) (int64, error) {
	count, err := s.Client.Get(ctx, s.orderCountKey(restaurantID)).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	return count, err
}

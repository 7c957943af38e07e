package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// Anonymous carts outlive a browsing session but not forever.
	sessionCartTTL = 30 * 24 * time.Hour
	// Buy-now selections are consumed by the next checkout; keep them short.
	selectionTTL = time.Hour

	cacheBaseTTL = 15 * time.Minute
)

// RedisStore implements both SessionStore (device-scoped carts and buy-now
// selections) and Cache (authenticated cart reads) on a single client.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) GetCart(ctx context.Context, key string) (*Cart, error) {
	data, err := s.client.Get(ctx, sessionKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return &Cart{OwnerKey: key}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get cart: %w", err)
	}

	var c Cart
	if err := json.Unmarshal(data, &c); err != nil {
		// Malformed payloads are treated as absent rather than poisoning
		// every later read.
		return &Cart{OwnerKey: key}, nil
	}
	return &c, nil
}

func (s *RedisStore) SaveCart(ctx context.Context, key string, c *Cart) error {
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal cart: %w", err)
	}
	if err := s.client.Set(ctx, sessionKey(key), data, sessionCartTTL).Err(); err != nil {
		return fmt.Errorf("redis set cart: %w", err)
	}
	return nil
}

func (s *RedisStore) DeleteCart(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, sessionKey(key)).Err(); err != nil {
		return fmt.Errorf("redis delete cart: %w", err)
	}
	return nil
}

func (s *RedisStore) GetSelection(ctx context.Context, key string) ([]Line, error) {
	data, err := s.client.Get(ctx, selectionKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get selection: %w", err)
	}

	var lines []Line
	if err := json.Unmarshal(data, &lines); err != nil {
		return nil, nil
	}
	return lines, nil
}

func (s *RedisStore) SaveSelection(ctx context.Context, key string, lines []Line) error {
	data, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("marshal selection: %w", err)
	}
	if err := s.client.Set(ctx, selectionKey(key), data, selectionTTL).Err(); err != nil {
		return fmt.Errorf("redis set selection: %w", err)
	}
	return nil
}

func (s *RedisStore) ClearSelection(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, selectionKey(key)).Err(); err != nil {
		return fmt.Errorf("redis clear selection: %w", err)
	}
	return nil
}

// Cache methods, keyed separately from session carts.

func (s *RedisStore) Get(ctx context.Context, ownerKey string) (*Cart, error) {
	data, err := s.client.Get(ctx, cacheKey(ownerKey)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get cached cart: %w", err)
	}

	var c Cart
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, ErrCacheMiss
	}
	return &c, nil
}

func (s *RedisStore) Set(ctx context.Context, ownerKey string, c *Cart) error {
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal cached cart: %w", err)
	}

	// Jitter keeps a burst of carts from expiring in the same instant.
	ttl := cacheBaseTTL + time.Duration(rand.Intn(5))*time.Minute
	if err := s.client.Set(ctx, cacheKey(ownerKey), data, ttl).Err(); err != nil {
		return fmt.Errorf("redis set cached cart: %w", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, ownerKey string) error {
	if err := s.client.Del(ctx, cacheKey(ownerKey)).Err(); err != nil {
		return fmt.Errorf("redis invalidate cached cart: %w", err)
	}
	return nil
}

func sessionKey(key string) string   { return "session-cart:" + key }
func selectionKey(key string) string { return "buy-now:" + key }
func cacheKey(key string) string     { return "cart-cache:" + key }

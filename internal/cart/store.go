package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/marigoldevents/marigold-backend/pkg/redis"
)

// Store persists cart snapshots keyed by visitor token.
type Store interface {
	Load(ctx context.Context, token string) (*Cart, error)
	Save(ctx context.Context, token string, cart *Cart) error
	Delete(ctx context.Context, token string) error
}

type redisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore builds a Store backed by Redis with the provided snapshot TTL.
func NewRedisStore(client *redis.Client, ttl time.Duration) (Store, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client required")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("cart ttl must be positive")
	}
	return &redisStore{client: client, ttl: ttl}, nil
}

func (s *redisStore) Load(ctx context.Context, token string) (*Cart, error) {
	payload, err := s.client.Get(ctx, s.client.CartKey(token))
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return NewCart(), nil
		}
		return nil, fmt.Errorf("loading cart: %w", err)
	}
	cart := NewCart()
	if err := json.Unmarshal([]byte(payload), cart); err != nil {
		return nil, fmt.Errorf("decoding cart snapshot: %w", err)
	}
	return cart, nil
}

func (s *redisStore) Save(ctx context.Context, token string, cart *Cart) error {
	payload, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("encoding cart snapshot: %w", err)
	}
	if err := s.client.Set(ctx, s.client.CartKey(token), string(payload), s.ttl); err != nil {
		return fmt.Errorf("saving cart: %w", err)
	}
	return nil
}

func (s *redisStore) Delete(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, s.client.CartKey(token)); err != nil {
		return fmt.Errorf("deleting cart: %w", err)
	}
	return nil
}

type memoryStore struct {
	mu    sync.RWMutex
	carts map[string]*Cart
}

// NewMemoryStore builds an in-process Store used by tests and local tooling.
func NewMemoryStore() Store {
	return &memoryStore{carts: make(map[string]*Cart)}
}

func (s *memoryStore) Load(ctx context.Context, token string) (*Cart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cart, ok := s.carts[token]
	if !ok {
		return NewCart(), nil
	}
	return cloneCart(cart), nil
}

func (s *memoryStore) Save(ctx context.Context, token string, cart *Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.carts[token] = cloneCart(cart)
	return nil
}

func (s *memoryStore) Delete(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, token)
	return nil
}

func cloneCart(cart *Cart) *Cart {
	clone := &Cart{
		Items:     make([]LineItem, len(cart.Items)),
		IsOpen:    cart.IsOpen,
		UpdatedAt: cart.UpdatedAt,
	}
	copy(clone.Items, cart.Items)
	return clone
}

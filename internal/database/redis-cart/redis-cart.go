package redis_cart

import (
	"SmartShop/entity"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "cart:"

// Store keeps session carts in Redis with a sliding expiry.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

func NewStore(addr, password string, db int, ttl time.Duration) *Store {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return NewStoreWithClient(rdb, ttl)
}

func NewStoreWithClient(client *redis.Client, ttl time.Duration) *Store {
	return &Store{client: client, ttl: ttl}
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *Store) Close() error {
	return s.client.Close()
}

func key(sessionID string) string {
	return keyPrefix + sessionID
}

func (s *Store) GetCart(ctx context.Context, sessionID string) (*entity.Cart, error) {
	data, err := s.client.Get(ctx, key(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get cart: %w", err)
	}

	cart := &entity.Cart{}
	if err = json.Unmarshal(data, cart); err != nil {
		return nil, fmt.Errorf("decode cart: %w", err)
	}
	cart.SessionID = sessionID
	return cart, nil
}

func (s *Store) SaveCart(ctx context.Context, cart *entity.Cart) error {
	cart.UpdatedAt = time.Now().UTC()
	data, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	if err = s.client.Set(ctx, key(cart.SessionID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set cart: %w", err)
	}
	return nil
}

func (s *Store) DeleteCart(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, key(sessionID)).Err(); err != nil {
		return fmt.Errorf("redis delete cart: %w", err)
	}
	return nil
}

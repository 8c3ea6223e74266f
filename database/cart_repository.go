package database

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"storefront-service/models"

	"github.com/redis/go-redis/v9"
)

// CartRepository persists one JSON cart snapshot per shopper session.
type CartRepository struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCartRepository(client *redis.Client, ttl time.Duration) *CartRepository {
	return &CartRepository{
		client: client,
		ttl:    ttl,
	}
}

func (r *CartRepository) getKey(sessionID string) string {
	return fmt.Sprintf("cart:session:%s", sessionID)
}

// GetCart loads the session's snapshot. A missing key returns (nil, nil).
// A snapshot that no longer parses is dropped and treated as missing; the
// shopper gets an empty cart instead of a broken page.
func (r *CartRepository) GetCart(ctx context.Context, sessionID string) (*models.Cart, error) {
	key := r.getKey(sessionID)
	data, err := r.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	cart, err := DecodeSnapshot([]byte(data), sessionID)
	if err != nil {
		_ = r.client.Del(ctx, key).Err()
		return nil, nil
	}
	return cart, nil
}

// SaveCart stores the snapshot with the configured TTL.
func (r *CartRepository) SaveCart(ctx context.Context, cart *models.Cart) error {
	cart.UpdatedAt = time.Now()

	data, err := json.Marshal(cart)
	if err != nil {
		return err
	}

	return r.client.Set(ctx, r.getKey(cart.SessionID), data, r.ttl).Err()
}

// DeleteCart removes the session's snapshot.
func (r *CartRepository) DeleteCart(ctx context.Context, sessionID string) error {
	return r.client.Del(ctx, r.getKey(sessionID)).Err()
}

// DecodeSnapshot parses a stored cart snapshot. The stored shape carries no
// version field, so anything that does not unmarshal cleanly is rejected.
func DecodeSnapshot(data []byte, sessionID string) (*models.Cart, error) {
	var cart models.Cart
	if err := json.Unmarshal(data, &cart); err != nil {
		return nil, err
	}
	cart.SessionID = sessionID
	if cart.Lines == nil {
		cart.Lines = []models.CartLine{}
	}
	return &cart, nil
}

package cache

import (
	"context"
	"errors"

	"storefront/internal/models"
)

// CartCache is a read cache for carts keyed by owner (user id or guest id).
type CartCache interface {
	Get(ctx context.Context, ownerKey string) (*models.Cart, error)
	Set(ctx context.Context, ownerKey string, cart *models.Cart) error
	Delete(ctx context.Context, ownerKey string) error
}

var ErrCacheMiss = errors.New("cache miss")

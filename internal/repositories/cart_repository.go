package repositories

import (
	"context"
	"errors"

	"storefront/internal/models"
)

var (
	// ErrCartNotFound is returned when no cart exists for the owner key.
	ErrCartNotFound = errors.New("cart not found")
	// ErrItemNotFound is returned when a cart holds no line for the product.
	ErrItemNotFound = errors.New("item not found in cart")
)

// CartRepository defines the interface for cart data access. A cart is keyed
// by exactly one of userId or guestId.
type CartRepository interface {
	GetByUserID(ctx context.Context, userID string) (*models.Cart, error)
	GetByGuestID(ctx context.Context, guestID string) (*models.Cart, error)
	// GetByOwner matches either owner key, for callers that hold an opaque
	// owner reference.
	GetByOwner(ctx context.Context, ownerKey string) (*models.Cart, error)
	Upsert(ctx context.Context, cart *models.Cart) error
	DeleteByGuestID(ctx context.Context, guestID string) error
}

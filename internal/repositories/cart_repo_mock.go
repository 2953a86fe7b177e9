package repositories

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"storefront/internal/models"
)

// MockCartRepository is an in-memory implementation of CartRepository.
type MockCartRepository struct {
	carts map[string]models.Cart // keyed by cart id
	mu    sync.RWMutex
}

// NewMockCartRepository creates a new instance of MockCartRepository.
func NewMockCartRepository() *MockCartRepository {
	return &MockCartRepository{
		carts: make(map[string]models.Cart),
	}
}

// GetByUserID returns the cart owned by an account.
func (r *MockCartRepository) GetByUserID(_ context.Context, userID string) (*models.Cart, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.carts {
		if c.UserID == userID && userID != "" {
			cart := cloneCart(c)
			return &cart, nil
		}
	}
	return nil, ErrCartNotFound
}

// GetByGuestID returns the cart owned by an anonymous session.
func (r *MockCartRepository) GetByGuestID(_ context.Context, guestID string) (*models.Cart, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.carts {
		if c.GuestID == guestID && guestID != "" {
			cart := cloneCart(c)
			return &cart, nil
		}
	}
	return nil, ErrCartNotFound
}

// GetByOwner returns the cart whose user or guest key matches ownerKey.
func (r *MockCartRepository) GetByOwner(_ context.Context, ownerKey string) (*models.Cart, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if ownerKey != "" {
		for _, c := range r.carts {
			if c.UserID == ownerKey || c.GuestID == ownerKey {
				cart := cloneCart(c)
				return &cart, nil
			}
		}
	}
	return nil, ErrCartNotFound
}

// Upsert writes the cart keyed by its owner.
func (r *MockCartRepository) Upsert(_ context.Context, cart *models.Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, c := range r.carts {
		if (cart.UserID != "" && c.UserID == cart.UserID) ||
			(cart.GuestID != "" && c.GuestID == cart.GuestID) {
			cart.ID = id
			r.carts[id] = cloneCart(*cart)
			return nil
		}
	}

	if cart.ID == "" {
		cart.ID = uuid.New().String()
	}
	r.carts[cart.ID] = cloneCart(*cart)
	return nil
}

// DeleteByGuestID removes a guest cart.
func (r *MockCartRepository) DeleteByGuestID(_ context.Context, guestID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, c := range r.carts {
		if c.GuestID == guestID {
			delete(r.carts, id)
			return nil
		}
	}
	return ErrCartNotFound
}

func cloneCart(c models.Cart) models.Cart {
	items := make([]models.CartItem, len(c.Items))
	copy(items, c.Items)
	c.Items = items
	return c
}

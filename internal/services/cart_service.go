package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"golang.org/x/sync/singleflight"

	"storefront/internal/cache"
	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/pkg/rabbitmq"
)

// ErrCartOwnerRequired is returned when neither a user id nor a guest id is
// supplied for a cart operation.
var ErrCartOwnerRequired = errors.New("cart owner required")

// CartService handles business logic for carts, including the guest cart
// merge performed at login.
type CartService struct {
	repo     repositories.CartRepository
	cache    cache.CartCache
	mqClient *rabbitmq.Client
	sfg      singleflight.Group // collapses concurrent reads for one owner
}

// NewCartService creates a new CartService. mqClient may be nil when no
// broker is configured.
func NewCartService(repo repositories.CartRepository, cartCache cache.CartCache, mqClient *rabbitmq.Client) *CartService {
	return &CartService{
		repo:     repo,
		cache:    cartCache,
		mqClient: mqClient,
	}
}

// GetCart returns the cart for an opaque owner key (user id or guest id),
// reading through the cache. A missing cart reads as an empty one.
func (s *CartService) GetCart(ctx context.Context, ownerKey string) (*models.Cart, error) {
	if ownerKey == "" {
		return nil, ErrCartOwnerRequired
	}

	v, err, _ := s.sfg.Do(ownerKey, func() (interface{}, error) {
		cart, err := s.cache.Get(ctx, ownerKey)
		if err == nil {
			return cart, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			log.Printf("cache get error: %v", err)
		}

		cart, err = s.repo.GetByOwner(ctx, ownerKey)
		if err != nil {
			if errors.Is(err, repositories.ErrCartNotFound) {
				return &models.Cart{Items: []models.CartItem{}}, nil
			}
			return nil, err
		}

		go func() {
			if errSet := s.cache.Set(context.Background(), ownerKey, cart); errSet != nil {
				log.Printf("cache set error: %v", errSet)
			}
		}()

		return cart, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*models.Cart), nil
}

// MergeGuestCart produces the account's post-login cart, folding in the
// guest cart when one exists.
//
// The merge is deliberately replay-safe instead of transactional: the
// account cart is upserted with its full item list first and the guest cart
// is deleted last, so a failure in between leaves a state that the next
// login resolves by re-running the merge.
func (s *CartService) MergeGuestCart(ctx context.Context, userID, guestID string) (*models.Cart, error) {
	if userID == "" {
		return nil, ErrCartOwnerRequired
	}

	if guestID == "" {
		return s.accountCart(ctx, userID)
	}

	guestCart, err := s.repo.GetByGuestID(ctx, guestID)
	if err != nil {
		if errors.Is(err, repositories.ErrCartNotFound) {
			// Stale guest reference: behave exactly as a login without one.
			return s.accountCart(ctx, userID)
		}
		return nil, fmt.Errorf("failed to load guest cart: %w", err)
	}

	userCart, err := s.accountCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	for _, guestItem := range guestCart.Items {
		if i := userCart.FindItem(guestItem.ProductID); i >= 0 {
			userCart.Items[i].Quantity += guestItem.Quantity
		} else {
			userCart.Items = append(userCart.Items, guestItem)
		}
	}

	if err := s.repo.Upsert(ctx, userCart); err != nil {
		return nil, fmt.Errorf("failed to persist merged cart: %w", err)
	}
	if err := s.repo.DeleteByGuestID(ctx, guestID); err != nil && !errors.Is(err, repositories.ErrCartNotFound) {
		return nil, fmt.Errorf("failed to delete guest cart: %w", err)
	}

	s.invalidate(ctx, userID)
	s.invalidate(ctx, guestID)

	s.publishEvent("cart.merged", map[string]interface{}{
		"userId":  userID,
		"guestId": guestID,
		"items":   len(userCart.Items),
	})

	return userCart, nil
}

// AddItem adds a product to the owner's cart, creating the cart lazily and
// incrementing the quantity when the product is already present. Exactly one
// of userID/guestID identifies the owner; userID wins when both are set.
func (s *CartService) AddItem(ctx context.Context, userID, guestID, productID string, quantity int) (*models.Cart, error) {
	key, err := resolveOwnerKey(userID, guestID)
	if err != nil {
		return nil, err
	}

	cart, err := s.repo.GetByOwner(ctx, key)
	if err != nil {
		if !errors.Is(err, repositories.ErrCartNotFound) {
			return nil, fmt.Errorf("failed to load cart: %w", err)
		}
		cart = s.newOwnerCart(userID, guestID)
	}

	if i := cart.FindItem(productID); i >= 0 {
		cart.Items[i].Quantity += quantity
	} else {
		cart.Items = append(cart.Items, models.CartItem{
			ProductID: productID,
			Quantity:  quantity,
			AddedAt:   time.Now(),
		})
	}

	if err := s.repo.Upsert(ctx, cart); err != nil {
		return nil, fmt.Errorf("failed to save cart: %w", err)
	}
	s.invalidate(ctx, key)
	return cart, nil
}

// UpdateItemQuantity sets the quantity of an existing line item.
func (s *CartService) UpdateItemQuantity(ctx context.Context, ownerKey, productID string, quantity int) (*models.Cart, error) {
	if ownerKey == "" {
		return nil, ErrCartOwnerRequired
	}

	cart, err := s.repo.GetByOwner(ctx, ownerKey)
	if err != nil {
		return nil, err
	}

	i := cart.FindItem(productID)
	if i < 0 {
		return nil, repositories.ErrItemNotFound
	}
	cart.Items[i].Quantity = quantity

	if err := s.repo.Upsert(ctx, cart); err != nil {
		return nil, fmt.Errorf("failed to save cart: %w", err)
	}
	s.invalidate(ctx, ownerKey)
	return cart, nil
}

// RemoveItem drops a line item from the owner's cart.
func (s *CartService) RemoveItem(ctx context.Context, ownerKey, productID string) (*models.Cart, error) {
	if ownerKey == "" {
		return nil, ErrCartOwnerRequired
	}

	cart, err := s.repo.GetByOwner(ctx, ownerKey)
	if err != nil {
		return nil, err
	}

	i := cart.FindItem(productID)
	if i < 0 {
		return nil, repositories.ErrItemNotFound
	}
	cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)

	if err := s.repo.Upsert(ctx, cart); err != nil {
		return nil, fmt.Errorf("failed to save cart: %w", err)
	}
	s.invalidate(ctx, ownerKey)
	return cart, nil
}

// accountCart loads the account's cart or returns a fresh empty one.
func (s *CartService) accountCart(ctx context.Context, userID string) (*models.Cart, error) {
	cart, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrCartNotFound) {
			return s.newOwnerCart(userID, ""), nil
		}
		return nil, fmt.Errorf("failed to load account cart: %w", err)
	}
	return cart, nil
}

func (s *CartService) newOwnerCart(userID, guestID string) *models.Cart {
	now := time.Now()
	cart := &models.Cart{
		Items:     []models.CartItem{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	// A cart belongs to exactly one owner key.
	if userID != "" {
		cart.UserID = userID
	} else {
		cart.GuestID = guestID
	}
	return cart
}

func (s *CartService) invalidate(ctx context.Context, key string) {
	if err := s.cache.Delete(ctx, key); err != nil {
		log.Printf("cache delete error: %v", err)
	}
}

func (s *CartService) publishEvent(kind string, payload map[string]interface{}) {
	if s.mqClient == nil {
		return
	}
	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Failed to marshal %s event: %v", kind, err)
		return
	}
	if err := s.mqClient.Publish(kind, body); err != nil {
		log.Printf("Warning: failed to publish %s event: %v", kind, err)
	}
}

func resolveOwnerKey(userID, guestID string) (string, error) {
	switch {
	case userID != "":
		return userID, nil
	case guestID != "":
		return guestID, nil
	default:
		return "", ErrCartOwnerRequired
	}
}

package services_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/cache"
	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/internal/services"
)

// memoryCache is an in-process cache.CartCache for tests.
type memoryCache struct {
	mu    sync.Mutex
	carts map[string]*models.Cart
}

func newMemoryCache() *memoryCache {
	return &memoryCache{carts: make(map[string]*models.Cart)}
}

func (m *memoryCache) Get(_ context.Context, key string) (*models.Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if cart, ok := m.carts[key]; ok {
		return cart, nil
	}
	return nil, cache.ErrCacheMiss
}

func (m *memoryCache) Set(_ context.Context, key string, cart *models.Cart) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.carts[key] = cart
	return nil
}

func (m *memoryCache) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.carts, key)
	return nil
}

func newCartFixture(t *testing.T) (*services.CartService, *repositories.MockCartRepository) {
	t.Helper()
	repo := repositories.NewMockCartRepository()
	return services.NewCartService(repo, newMemoryCache(), nil), repo
}

func seedCart(t *testing.T, repo *repositories.MockCartRepository, cart *models.Cart) {
	t.Helper()
	require.NoError(t, repo.Upsert(context.Background(), cart))
}

func TestCartService_MergeGuestCart_AddsQuantities(t *testing.T) {
	ctx := context.Background()
	svc, repo := newCartFixture(t)

	seedCart(t, repo, &models.Cart{UserID: "user-1", Items: []models.CartItem{
		{ProductID: "P", Quantity: 3},
	}})
	seedCart(t, repo, &models.Cart{GuestID: "guest-1", Items: []models.CartItem{
		{ProductID: "P", Quantity: 2},
	}})

	merged, err := svc.MergeGuestCart(ctx, "user-1", "guest-1")
	require.NoError(t, err)
	require.Len(t, merged.Items, 1)
	assert.Equal(t, "P", merged.Items[0].ProductID)
	assert.Equal(t, 5, merged.Items[0].Quantity)

	// The guest cart no longer exists.
	_, err = repo.GetByGuestID(ctx, "guest-1")
	assert.ErrorIs(t, err, repositories.ErrCartNotFound)
}

func TestCartService_MergeGuestCart_AppendsNewProducts(t *testing.T) {
	ctx := context.Background()
	svc, repo := newCartFixture(t)

	seedCart(t, repo, &models.Cart{UserID: "user-1", Items: []models.CartItem{
		{ProductID: "A", Quantity: 1},
	}})
	seedCart(t, repo, &models.Cart{GuestID: "guest-1", Items: []models.CartItem{
		{ProductID: "A", Quantity: 1},
		{ProductID: "B", Quantity: 2},
	}})

	merged, err := svc.MergeGuestCart(ctx, "user-1", "guest-1")
	require.NoError(t, err)
	require.Len(t, merged.Items, 2)
	assert.Equal(t, "A", merged.Items[0].ProductID)
	assert.Equal(t, 2, merged.Items[0].Quantity)
	assert.Equal(t, "B", merged.Items[1].ProductID)
	assert.Equal(t, 2, merged.Items[1].Quantity)

	// No product reference appears twice.
	seen := make(map[string]bool)
	for _, item := range merged.Items {
		assert.False(t, seen[item.ProductID])
		seen[item.ProductID] = true
	}
}

func TestCartService_MergeGuestCart_CreatesAccountCart(t *testing.T) {
	ctx := context.Background()
	svc, repo := newCartFixture(t)

	seedCart(t, repo, &models.Cart{GuestID: "guest-1", Items: []models.CartItem{
		{ProductID: "Q", Quantity: 4},
	}})

	merged, err := svc.MergeGuestCart(ctx, "user-1", "guest-1")
	require.NoError(t, err)
	require.Len(t, merged.Items, 1)
	assert.Equal(t, 4, merged.Items[0].Quantity)

	// The merged cart is persisted under the account key.
	persisted, err := repo.GetByUserID(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, merged.Items, persisted.Items)
}

func TestCartService_MergeGuestCart_StaleGuestReference(t *testing.T) {
	ctx := context.Background()
	svc, repo := newCartFixture(t)

	seedCart(t, repo, &models.Cart{UserID: "user-1", Items: []models.CartItem{
		{ProductID: "A", Quantity: 1},
	}})

	// A guest id with no cart behaves exactly like a login without one.
	merged, err := svc.MergeGuestCart(ctx, "user-1", "guest-gone")
	require.NoError(t, err)
	require.Len(t, merged.Items, 1)
	assert.Equal(t, "A", merged.Items[0].ProductID)
}

func TestCartService_MergeGuestCart_NoGuestID(t *testing.T) {
	ctx := context.Background()
	svc, _ := newCartFixture(t)

	// No cart anywhere: login yields an empty cart, not an error.
	merged, err := svc.MergeGuestCart(ctx, "user-1", "")
	require.NoError(t, err)
	assert.Empty(t, merged.Items)
}

func TestCartService_MergeGuestCart_RequiresUser(t *testing.T) {
	svc, _ := newCartFixture(t)

	_, err := svc.MergeGuestCart(context.Background(), "", "guest-1")
	assert.ErrorIs(t, err, services.ErrCartOwnerRequired)
}

func TestCartService_AddItem(t *testing.T) {
	ctx := context.Background()
	svc, repo := newCartFixture(t)

	// First add creates the cart lazily.
	cart, err := svc.AddItem(ctx, "", "guest-1", "P", 1)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)

	// Adding the same product increments instead of duplicating.
	cart, err = svc.AddItem(ctx, "", "guest-1", "P", 2)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 3, cart.Items[0].Quantity)

	persisted, err := repo.GetByGuestID(ctx, "guest-1")
	require.NoError(t, err)
	assert.Equal(t, 3, persisted.Items[0].Quantity)

	_, err = svc.AddItem(ctx, "", "", "P", 1)
	assert.ErrorIs(t, err, services.ErrCartOwnerRequired)
}

func TestCartService_UpdateAndRemoveItem(t *testing.T) {
	ctx := context.Background()
	svc, _ := newCartFixture(t)

	_, err := svc.AddItem(ctx, "user-1", "", "P", 1)
	require.NoError(t, err)

	cart, err := svc.UpdateItemQuantity(ctx, "user-1", "P", 7)
	require.NoError(t, err)
	assert.Equal(t, 7, cart.Items[0].Quantity)

	_, err = svc.UpdateItemQuantity(ctx, "user-1", "missing", 1)
	assert.ErrorIs(t, err, repositories.ErrItemNotFound)

	cart, err = svc.RemoveItem(ctx, "user-1", "P")
	require.NoError(t, err)
	assert.Empty(t, cart.Items)

	_, err = svc.RemoveItem(ctx, "user-1", "P")
	assert.ErrorIs(t, err, repositories.ErrItemNotFound)
}

func TestCartService_GetCart(t *testing.T) {
	ctx := context.Background()
	svc, repo := newCartFixture(t)

	// Missing carts read as empty.
	cart, err := svc.GetCart(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, cart.Items)

	seedCart(t, repo, &models.Cart{GuestID: "guest-1", Items: []models.CartItem{
		{ProductID: "P", Quantity: 2},
	}})

	// The opaque owner key resolves guest carts too.
	cart, err = svc.GetCart(ctx, "guest-1")
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, "P", cart.Items[0].ProductID)

	_, err = svc.GetCart(ctx, "")
	assert.ErrorIs(t, err, services.ErrCartOwnerRequired)
}

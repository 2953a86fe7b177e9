package repositories

import (
	"context"
	"errors"

	"storefront/internal/models"
)

// ErrProductNotFound is returned when no product matches the id.
var ErrProductNotFound = errors.New("product not found")

// ProductFilter narrows and orders product listings. Zero values mean
// "no filter" / "no ordering".
type ProductFilter struct {
	Category    string
	Subcategory string
	SortBy      string // "price-asc" or "price-desc"
}

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	GetAll(ctx context.Context, filter ProductFilter) ([]models.Product, error)
	GetByID(ctx context.Context, id string) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id string) error
}

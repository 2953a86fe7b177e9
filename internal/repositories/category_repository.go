package repositories

import (
	"context"
	"errors"

	"storefront/internal/models"
)

// ErrCategoryNotFound is returned when no category matches the name.
var ErrCategoryNotFound = errors.New("category not found")

// CategoryRepository defines the interface for category data access.
// Categories are addressed by name, which is unique.
type CategoryRepository interface {
	GetAll(ctx context.Context) ([]models.Category, error)
	GetByName(ctx context.Context, name string) (*models.Category, error)
	Create(ctx context.Context, category *models.Category) error
	Update(ctx context.Context, category *models.Category) error
	DeleteByName(ctx context.Context, name string) error
}

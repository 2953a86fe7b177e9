package repositories

import (
	"context"
	"errors"

	"storefront/internal/models"
)

// ErrColorNotFound is returned when no color matches the id.
var ErrColorNotFound = errors.New("color not found")

// ColorRepository defines the interface for color data access.
type ColorRepository interface {
	GetAll(ctx context.Context) ([]models.Color, error)
	GetByName(ctx context.Context, name string) (*models.Color, error)
	Create(ctx context.Context, color *models.Color) error
	Delete(ctx context.Context, id string) error
}

package repositories

import (
	"context"
	"errors"

	"storefront/internal/models"
)

// ErrUserNotFound is returned when no account matches the lookup key.
var ErrUserNotFound = errors.New("user not found")

// UserRepository defines the interface for account data access.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	List(ctx context.Context, page, limit int) ([]models.User, int64, error)
	UpdateRole(ctx context.Context, id, role string) error
	Delete(ctx context.Context, id string) error
}

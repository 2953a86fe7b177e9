package services

import (
	"context"
	"fmt"

	"storefront/internal/models"
	"storefront/internal/repositories"
)

// UserPage is one page of the admin account listing.
type UserPage struct {
	Users       []models.User `json:"data"`
	TotalUsers  int64         `json:"totalUsers"`
	TotalPages  int64         `json:"totalPages"`
	CurrentPage int           `json:"currentPage"`
}

// UserAdminService handles back-office account management.
type UserAdminService struct {
	userRepo repositories.UserRepository
}

// NewUserAdminService creates a new UserAdminService.
func NewUserAdminService(userRepo repositories.UserRepository) *UserAdminService {
	return &UserAdminService{
		userRepo: userRepo,
	}
}

// ListUsers returns one page of accounts.
func (s *UserAdminService) ListUsers(ctx context.Context, page, limit int) (*UserPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}

	users, total, err := s.userRepo.List(ctx, page, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	totalPages := total / int64(limit)
	if total%int64(limit) != 0 {
		totalPages++
	}

	return &UserPage{
		Users:       users,
		TotalUsers:  total,
		TotalPages:  totalPages,
		CurrentPage: page,
	}, nil
}

// UpdateUserRole sets the role of an account.
func (s *UserAdminService) UpdateUserRole(ctx context.Context, id, role string) error {
	validRoles := map[string]bool{models.RoleUser: true, models.RoleAdmin: true}
	if _, ok := validRoles[role]; !ok {
		return fmt.Errorf("invalid role: %s", role)
	}
	return s.userRepo.UpdateRole(ctx, id, role)
}

// DeleteUser removes an account.
func (s *UserAdminService) DeleteUser(ctx context.Context, id string) error {
	return s.userRepo.Delete(ctx, id)
}

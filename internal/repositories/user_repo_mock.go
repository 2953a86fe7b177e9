package repositories

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"storefront/internal/models"
)

// MockUserRepository is an in-memory implementation of UserRepository.
type MockUserRepository struct {
	users map[string]models.User
	order []string // insertion order, keeps List stable
	mu    sync.RWMutex
}

// NewMockUserRepository creates a new instance of MockUserRepository.
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users: make(map[string]models.User),
	}
}

// Create adds a new account.
func (r *MockUserRepository) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	r.users[user.ID] = *user
	r.order = append(r.order, user.ID)
	return nil
}

// GetByEmail returns the account with the given email.
func (r *MockUserRepository) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Email == email {
			user := u
			return &user, nil
		}
	}
	return nil, ErrUserNotFound
}

// GetByID returns the account with the given id.
func (r *MockUserRepository) GetByID(_ context.Context, id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	return &user, nil
}

// List returns one page of accounts plus the total count.
func (r *MockUserRepository) List(_ context.Context, page, limit int) ([]models.User, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	start := (page - 1) * limit
	if start > len(r.order) {
		start = len(r.order)
	}
	end := start + limit
	if end > len(r.order) {
		end = len(r.order)
	}

	users := make([]models.User, 0, end-start)
	for _, id := range r.order[start:end] {
		users = append(users, r.users[id])
	}
	return users, int64(len(r.order)), nil
}

// UpdateRole sets the role of an account.
func (r *MockUserRepository) UpdateRole(_ context.Context, id, role string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return ErrUserNotFound
	}
	user.Role = role
	r.users[id] = user
	return nil
}

// Delete removes an account.
func (r *MockUserRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[id]; !ok {
		return ErrUserNotFound
	}
	delete(r.users, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

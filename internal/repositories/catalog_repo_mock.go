package repositories

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"storefront/internal/models"
)

// MockCategoryRepository is an in-memory implementation of CategoryRepository.
type MockCategoryRepository struct {
	categories map[string]models.Category // keyed by name
	mu         sync.RWMutex
}

// NewMockCategoryRepository creates a new instance of MockCategoryRepository.
func NewMockCategoryRepository() *MockCategoryRepository {
	return &MockCategoryRepository{
		categories: make(map[string]models.Category),
	}
}

// GetAll returns every category.
func (r *MockCategoryRepository) GetAll(_ context.Context) ([]models.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]models.Category, 0, len(r.categories))
	for _, c := range r.categories {
		list = append(list, c)
	}
	return list, nil
}

// GetByName returns a category by its name.
func (r *MockCategoryRepository) GetByName(_ context.Context, name string) (*models.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	category, ok := r.categories[name]
	if !ok {
		return nil, ErrCategoryNotFound
	}
	return &category, nil
}

// Create adds a new category.
func (r *MockCategoryRepository) Create(_ context.Context, category *models.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if category.ID == "" {
		category.ID = uuid.New().String()
	}
	if category.Subcategories == nil {
		category.Subcategories = []string{}
	}
	r.categories[category.Name] = *category
	return nil
}

// Update rewrites an existing category.
func (r *MockCategoryRepository) Update(_ context.Context, category *models.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.categories[category.Name]; !ok {
		return ErrCategoryNotFound
	}
	r.categories[category.Name] = *category
	return nil
}

// DeleteByName removes a category.
func (r *MockCategoryRepository) DeleteByName(_ context.Context, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.categories, name)
	return nil
}

// MockColorRepository is an in-memory implementation of ColorRepository.
type MockColorRepository struct {
	colors map[string]models.Color // keyed by id
	mu     sync.RWMutex
}

// NewMockColorRepository creates a new instance of MockColorRepository.
func NewMockColorRepository() *MockColorRepository {
	return &MockColorRepository{
		colors: make(map[string]models.Color),
	}
}

// GetAll returns every color.
func (r *MockColorRepository) GetAll(_ context.Context) ([]models.Color, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]models.Color, 0, len(r.colors))
	for _, c := range r.colors {
		list = append(list, c)
	}
	return list, nil
}

// GetByName returns a color by its name.
func (r *MockColorRepository) GetByName(_ context.Context, name string) (*models.Color, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.colors {
		if c.Name == name {
			color := c
			return &color, nil
		}
	}
	return nil, ErrColorNotFound
}

// Create adds a new color.
func (r *MockColorRepository) Create(_ context.Context, color *models.Color) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if color.ID == "" {
		color.ID = uuid.New().String()
	}
	r.colors[color.ID] = *color
	return nil
}

// Delete removes a color by its id.
func (r *MockColorRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.colors, id)
	return nil
}

package services

import (
	"context"
	"errors"
	"fmt"

	"storefront/internal/models"
	"storefront/internal/repositories"
)

var (
	// ErrCategoryExists is returned when adding a duplicate category name.
	ErrCategoryExists = errors.New("category already exists")
	// ErrSubcategoryExists is returned when a subcategory name is already
	// registered under the parent.
	ErrSubcategoryExists = errors.New("subcategory already exists")
	// ErrColorExists is returned when adding a duplicate color name.
	ErrColorExists = errors.New("color already exists")
)

// CatalogService handles business logic for categories and colors.
type CatalogService struct {
	categoryRepo repositories.CategoryRepository
	colorRepo    repositories.ColorRepository
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(categoryRepo repositories.CategoryRepository, colorRepo repositories.ColorRepository) *CatalogService {
	return &CatalogService{
		categoryRepo: categoryRepo,
		colorRepo:    colorRepo,
	}
}

// ListCategories returns every category.
func (s *CatalogService) ListCategories(ctx context.Context) ([]models.Category, error) {
	return s.categoryRepo.GetAll(ctx)
}

// AddCategory registers a new parent category with no subcategories.
func (s *CatalogService) AddCategory(ctx context.Context, name string) (*models.Category, error) {
	if existing, err := s.categoryRepo.GetByName(ctx, name); err == nil && existing != nil {
		return nil, ErrCategoryExists
	} else if err != nil && !errors.Is(err, repositories.ErrCategoryNotFound) {
		return nil, fmt.Errorf("failed to check existing category: %w", err)
	}

	category := &models.Category{Name: name, Subcategories: []string{}}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// AddSubcategory appends a subcategory under an existing parent.
func (s *CatalogService) AddSubcategory(ctx context.Context, parent, name string) (*models.Category, error) {
	category, err := s.categoryRepo.GetByName(ctx, parent)
	if err != nil {
		return nil, err
	}
	if category.HasSubcategory(name) {
		return nil, ErrSubcategoryExists
	}

	category.Subcategories = append(category.Subcategories, name)
	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// DeleteCategory removes a parent category and its subcategories.
func (s *CatalogService) DeleteCategory(ctx context.Context, name string) error {
	return s.categoryRepo.DeleteByName(ctx, name)
}

// DeleteSubcategory removes one subcategory from its parent.
func (s *CatalogService) DeleteSubcategory(ctx context.Context, parent, name string) (*models.Category, error) {
	category, err := s.categoryRepo.GetByName(ctx, parent)
	if err != nil {
		return nil, err
	}

	kept := category.Subcategories[:0]
	for _, sub := range category.Subcategories {
		if sub != name {
			kept = append(kept, sub)
		}
	}
	category.Subcategories = kept

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// ListColors returns every color.
func (s *CatalogService) ListColors(ctx context.Context) ([]models.Color, error) {
	return s.colorRepo.GetAll(ctx)
}

// AddColor registers a new color swatch.
func (s *CatalogService) AddColor(ctx context.Context, name, value string) (*models.Color, error) {
	if existing, err := s.colorRepo.GetByName(ctx, name); err == nil && existing != nil {
		return nil, ErrColorExists
	} else if err != nil && !errors.Is(err, repositories.ErrColorNotFound) {
		return nil, fmt.Errorf("failed to check existing color: %w", err)
	}

	color := &models.Color{Name: name, Value: value}
	if err := s.colorRepo.Create(ctx, color); err != nil {
		return nil, err
	}
	return color, nil
}

// DeleteColor removes a color by its id.
func (s *CatalogService) DeleteColor(ctx context.Context, id string) error {
	return s.colorRepo.Delete(ctx, id)
}

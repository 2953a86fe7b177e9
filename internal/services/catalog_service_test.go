package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/repositories"
	"storefront/internal/services"
)

func newCatalogFixture() *services.CatalogService {
	return services.NewCatalogService(
		repositories.NewMockCategoryRepository(),
		repositories.NewMockColorRepository(),
	)
}

func TestCatalogService_Categories(t *testing.T) {
	ctx := context.Background()
	svc := newCatalogFixture()

	category, err := svc.AddCategory(ctx, "men")
	require.NoError(t, err)
	assert.Equal(t, "men", category.Name)
	assert.Empty(t, category.Subcategories)

	// Duplicate names are rejected.
	_, err = svc.AddCategory(ctx, "men")
	assert.ErrorIs(t, err, services.ErrCategoryExists)

	category, err = svc.AddSubcategory(ctx, "men", "shirts")
	require.NoError(t, err)
	assert.Equal(t, []string{"shirts"}, category.Subcategories)

	_, err = svc.AddSubcategory(ctx, "men", "shirts")
	assert.ErrorIs(t, err, services.ErrSubcategoryExists)

	// Unknown parent category.
	_, err = svc.AddSubcategory(ctx, "kids", "shoes")
	assert.ErrorIs(t, err, repositories.ErrCategoryNotFound)

	category, err = svc.DeleteSubcategory(ctx, "men", "shirts")
	require.NoError(t, err)
	assert.Empty(t, category.Subcategories)

	require.NoError(t, svc.DeleteCategory(ctx, "men"))
	categories, err := svc.ListCategories(ctx)
	require.NoError(t, err)
	assert.Empty(t, categories)
}

func TestCatalogService_Colors(t *testing.T) {
	ctx := context.Background()
	svc := newCatalogFixture()

	color, err := svc.AddColor(ctx, "Midnight", "#191970")
	require.NoError(t, err)
	assert.NotEmpty(t, color.ID)
	assert.Equal(t, "#191970", color.Value)

	_, err = svc.AddColor(ctx, "Midnight", "#000000")
	assert.ErrorIs(t, err, services.ErrColorExists)

	colors, err := svc.ListColors(ctx)
	require.NoError(t, err)
	require.Len(t, colors, 1)

	require.NoError(t, svc.DeleteColor(ctx, color.ID))
	colors, err = svc.ListColors(ctx)
	require.NoError(t, err)
	assert.Empty(t, colors)
}

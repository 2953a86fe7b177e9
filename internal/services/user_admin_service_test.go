package services_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/internal/services"
)

func seedUsers(t *testing.T, repo *repositories.MockUserRepository, count int) {
	t.Helper()
	for i := 0; i < count; i++ {
		err := repo.Create(context.Background(), &models.User{
			UserName: fmt.Sprintf("user%d", i),
			Email:    fmt.Sprintf("user%d@example.com", i),
			Role:     models.RoleUser,
		})
		require.NoError(t, err)
	}
}

func TestUserAdminService_ListUsers(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewMockUserRepository()
	svc := services.NewUserAdminService(repo)

	seedUsers(t, repo, 25)

	page, err := svc.ListUsers(ctx, 1, 10)
	require.NoError(t, err)
	assert.Len(t, page.Users, 10)
	assert.Equal(t, int64(25), page.TotalUsers)
	assert.Equal(t, int64(3), page.TotalPages)
	assert.Equal(t, 1, page.CurrentPage)

	// The last page is a partial one.
	page, err = svc.ListUsers(ctx, 3, 10)
	require.NoError(t, err)
	assert.Len(t, page.Users, 5)
	assert.Equal(t, 3, page.CurrentPage)

	// Out-of-range values fall back to defaults.
	page, err = svc.ListUsers(ctx, 0, -1)
	require.NoError(t, err)
	assert.Len(t, page.Users, 20)
	assert.Equal(t, 1, page.CurrentPage)
}

func TestUserAdminService_UpdateUserRole(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewMockUserRepository()
	svc := services.NewUserAdminService(repo)

	user := &models.User{UserName: "alice", Email: "alice@example.com", Role: models.RoleUser}
	require.NoError(t, repo.Create(ctx, user))

	require.NoError(t, svc.UpdateUserRole(ctx, user.ID, models.RoleAdmin))
	got, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, got.Role)

	// Only the known roles are accepted.
	err = svc.UpdateUserRole(ctx, user.ID, "superadmin")
	assert.Error(t, err)

	err = svc.UpdateUserRole(ctx, "no-such-id", models.RoleAdmin)
	assert.ErrorIs(t, err, repositories.ErrUserNotFound)
}

func TestUserAdminService_DeleteUser(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewMockUserRepository()
	svc := services.NewUserAdminService(repo)

	user := &models.User{UserName: "bob", Email: "bob@example.com", Role: models.RoleUser}
	require.NoError(t, repo.Create(ctx, user))

	require.NoError(t, svc.DeleteUser(ctx, user.ID))
	_, err := repo.GetByID(ctx, user.ID)
	assert.ErrorIs(t, err, repositories.ErrUserNotFound)

	assert.ErrorIs(t, svc.DeleteUser(ctx, user.ID), repositories.ErrUserNotFound)
}

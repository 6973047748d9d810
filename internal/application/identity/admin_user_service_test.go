package identity

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jx4/backend/internal/domain/identity"
	"github.com/jx4/backend/internal/domain/shared"
)

func scopedAdminScope(t *testing.T) identity.Scope {
	t.Helper()
	user, err := identity.NewAdminUser("dept.admin", "password123", identity.RoleDeptAdmin, []string{"carnes"})
	require.NoError(t, err)
	return identity.ResolveScope(user)
}

func TestAdminUserService_Create(t *testing.T) {
	t.Run("super creates a scoped admin", func(t *testing.T) {
		repo := new(MockAdminUserRepository)
		svc := NewAdminUserService(repo, zap.NewNop())

		repo.On("FindByUsername", mock.Anything, "pedro.carnes").Return(nil, shared.ErrNotFound)
		repo.On("Save", mock.Anything, mock.AnythingOfType("*identity.AdminUser")).Return(nil)

		info, err := svc.Create(context.Background(), identity.SuperScope(), CreateAdminUserRequest{
			Username:  "pedro.carnes",
			Password:  "password123",
			Role:      "dept_admin",
			DeptSlugs: []string{"carnes"},
		})
		require.NoError(t, err)
		assert.Equal(t, "pedro.carnes", info.Username)
		assert.Equal(t, []string{"carnes"}, info.DeptSlugs)
	})

	t.Run("duplicate username is rejected", func(t *testing.T) {
		repo := new(MockAdminUserRepository)
		svc := NewAdminUserService(repo, zap.NewNop())

		existing, err := identity.NewAdminUser("pedro.carnes", "password123", identity.RoleDeptAdmin, []string{"carnes"})
		require.NoError(t, err)
		repo.On("FindByUsername", mock.Anything, "pedro.carnes").Return(existing, nil)

		_, createErr := svc.Create(context.Background(), identity.SuperScope(), CreateAdminUserRequest{
			Username:  "pedro.carnes",
			Password:  "password123",
			Role:      "dept_admin",
			DeptSlugs: []string{"carnes"},
		})
		require.Error(t, createErr)
		repo.AssertNotCalled(t, "Save")
	})

	t.Run("scoped admin cannot create users", func(t *testing.T) {
		repo := new(MockAdminUserRepository)
		svc := NewAdminUserService(repo, zap.NewNop())

		_, err := svc.Create(context.Background(), scopedAdminScope(t), CreateAdminUserRequest{
			Username: "otro.admin",
			Password: "password123",
			Role:     "super",
		})
		assert.ErrorIs(t, err, shared.ErrForbidden)
	})

	t.Run("dept_admin without slugs is rejected by the domain", func(t *testing.T) {
		repo := new(MockAdminUserRepository)
		svc := NewAdminUserService(repo, zap.NewNop())

		repo.On("FindByUsername", mock.Anything, "sin.depto").Return(nil, shared.ErrNotFound)

		_, err := svc.Create(context.Background(), identity.SuperScope(), CreateAdminUserRequest{
			Username: "sin.depto",
			Password: "password123",
			Role:     "dept_admin",
		})
		require.Error(t, err)
	})
}

func TestAdminUserService_Update(t *testing.T) {
	t.Run("demoting the last super is rejected", func(t *testing.T) {
		repo := new(MockAdminUserRepository)
		svc := NewAdminUserService(repo, zap.NewNop())

		super, err := identity.NewAdminUser("maria.super", "password123", identity.RoleSuper, nil)
		require.NoError(t, err)

		repo.On("FindByID", mock.Anything, super.ID).Return(super, nil)
		repo.On("CountSupers", mock.Anything).Return(int64(1), nil)

		role := "dept_admin"
		_, updateErr := svc.Update(context.Background(), identity.SuperScope(), super.ID, UpdateAdminUserRequest{
			Role:      &role,
			DeptSlugs: []string{"carnes"},
		})
		require.Error(t, updateErr)
		var domainErr *shared.DomainError
		require.ErrorAs(t, updateErr, &domainErr)
		assert.Equal(t, "LAST_SUPER", domainErr.Code)
	})

	t.Run("scope edit with another super present succeeds", func(t *testing.T) {
		repo := new(MockAdminUserRepository)
		svc := NewAdminUserService(repo, zap.NewNop())

		super, err := identity.NewAdminUser("maria.super", "password123", identity.RoleSuper, nil)
		require.NoError(t, err)

		repo.On("FindByID", mock.Anything, super.ID).Return(super, nil)
		repo.On("CountSupers", mock.Anything).Return(int64(2), nil)
		repo.On("Save", mock.Anything, super).Return(nil)

		role := "dept_admin"
		info, err := svc.Update(context.Background(), identity.SuperScope(), super.ID, UpdateAdminUserRequest{
			Role:      &role,
			DeptSlugs: []string{"viveres"},
		})
		require.NoError(t, err)
		assert.Equal(t, "dept_admin", info.Role)
		assert.Equal(t, []string{"viveres"}, info.DeptSlugs)
	})
}

func TestAdminUserService_Delete(t *testing.T) {
	t.Run("super users are never deletable", func(t *testing.T) {
		repo := new(MockAdminUserRepository)
		svc := NewAdminUserService(repo, zap.NewNop())

		super, err := identity.NewAdminUser("maria.super", "password123", identity.RoleSuper, nil)
		require.NoError(t, err)

		// Even with other supers present, deletion is rejected; only
		// demotion via Update can retire a super account.
		repo.On("FindByID", mock.Anything, super.ID).Return(super, nil)

		deleteErr := svc.Delete(context.Background(), identity.SuperScope(), super.ID)
		require.Error(t, deleteErr)
		var domainErr *shared.DomainError
		require.ErrorAs(t, deleteErr, &domainErr)
		assert.Equal(t, "SUPER_NOT_DELETABLE", domainErr.Code)
		repo.AssertNotCalled(t, "Delete")
		repo.AssertNotCalled(t, "CountSupers")
	})

	t.Run("scoped admin can be deleted", func(t *testing.T) {
		repo := new(MockAdminUserRepository)
		svc := NewAdminUserService(repo, zap.NewNop())

		user, err := identity.NewAdminUser("pedro.carnes", "password123", identity.RoleDeptAdmin, []string{"carnes"})
		require.NoError(t, err)

		repo.On("FindByID", mock.Anything, user.ID).Return(user, nil)
		repo.On("Delete", mock.Anything, user.ID).Return(nil)

		require.NoError(t, svc.Delete(context.Background(), identity.SuperScope(), user.ID))
		repo.AssertExpectations(t)
	})
}

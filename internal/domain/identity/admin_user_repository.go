package identity

import (
	"context"

	"github.com/jx4/backend/internal/domain/shared"
)

// AdminUserRepository defines the persistence contract for admin users
type AdminUserRepository interface {
	shared.Repository[AdminUser]

	// FindByUsername finds an admin user by their unique username
	FindByUsername(ctx context.Context, username string) (*AdminUser, error)

	// CountSupers returns the number of super users
	CountSupers(ctx context.Context) (int64, error)
}

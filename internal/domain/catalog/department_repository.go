package catalog

import (
	"context"

	"github.com/jx4/backend/internal/domain/shared"
)

// DepartmentRepository defines the persistence contract for departments
type DepartmentRepository interface {
	shared.Repository[Department]

	// FindBySlug finds a department by its slug. When duplicate slugs exist
	// the most recently updated record wins.
	FindBySlug(ctx context.Context, slug string) (*Department, error)

	// FindActive finds departments visible on the storefront
	FindActive(ctx context.Context) ([]Department, error)
}

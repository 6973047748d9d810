package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/jx4/backend/internal/domain/shared"
)

// ProductRepository defines the persistence contract for products
type ProductRepository interface {
	shared.Repository[Product]

	// FindByIDs finds products by a list of IDs
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Product, error)

	// FindByDepartment finds products belonging to the given department slugs
	FindByDepartment(ctx context.Context, slugs []string, filter shared.Filter) ([]Product, error)

	// FindAvailable finds products visible on the storefront
	FindAvailable(ctx context.Context, filter shared.Filter) ([]Product, error)

	// FindCarriers finds products under the reserved logistics department
	FindCarriers(ctx context.Context) ([]Product, error)
}

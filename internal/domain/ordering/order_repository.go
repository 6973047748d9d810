package ordering

import (
	"context"

	"github.com/jx4/backend/internal/domain/shared"
)

// OrderRepository defines the persistence contract for orders. Orders are
// written once at checkout; this system never updates or deletes them.
type OrderRepository interface {
	shared.Repository[Order]

	// FindByCode finds an order by its human-readable code
	FindByCode(ctx context.Context, code string) (*Order, error)

	// FindByDepartments finds orders belonging to the given department slugs,
	// most recent first
	FindByDepartments(ctx context.Context, slugs []string, filter shared.Filter) ([]Order, error)
}

package cache

import (
	"github.com/jx4/backend/internal/domain/catalog"
	"github.com/jx4/backend/internal/domain/siteconfig"
)

// Snapshot is a read-only view of the whole catalog: every product, every
// department and the site configuration, resolved together so the
// storefront renders from one consistent-enough unit.
type Snapshot struct {
	Products    []catalog.Product      `json:"productos"`
	Departments []catalog.Department   `json:"departamentos"`
	Config      *siteconfig.SiteConfig `json:"configuracion"`
}

// Empty reports whether the snapshot carries no data at all
func (s Snapshot) Empty() bool {
	return len(s.Products) == 0 && len(s.Departments) == 0 && s.Config == nil
}

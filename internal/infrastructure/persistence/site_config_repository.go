package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/jx4/backend/internal/domain/shared"
	"github.com/jx4/backend/internal/domain/siteconfig"
)

// GormSiteConfigRepository implements siteconfig.Repository using GORM.
// The table holds at most one row.
type GormSiteConfigRepository struct {
	db *gorm.DB
}

// NewGormSiteConfigRepository creates a new GormSiteConfigRepository
func NewGormSiteConfigRepository(db *gorm.DB) *GormSiteConfigRepository {
	return &GormSiteConfigRepository{db: db}
}

// Get returns the site configuration, or shared.ErrNotFound before the
// first Save.
func (r *GormSiteConfigRepository) Get(ctx context.Context) (*siteconfig.SiteConfig, error) {
	var cfg siteconfig.SiteConfig
	if err := r.db.WithContext(ctx).
		Order("updated_at DESC").
		First(&cfg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &cfg, nil
}

// Save upserts the single configuration record
func (r *GormSiteConfigRepository) Save(ctx context.Context, cfg *siteconfig.SiteConfig) error {
	return r.db.WithContext(ctx).Save(cfg).Error
}

// Ensure GormSiteConfigRepository implements Repository
var _ siteconfig.Repository = (*GormSiteConfigRepository)(nil)

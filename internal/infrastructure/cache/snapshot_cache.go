package cache

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/jx4/backend/internal/domain/catalog"
	"github.com/jx4/backend/internal/domain/shared"
	"github.com/jx4/backend/internal/domain/siteconfig"
)

// slice identifies one independently refreshed portion of the snapshot
type slice int

const (
	sliceProducts slice = iota
	sliceDepartments
	sliceConfig
	sliceCount
)

// SnapshotCache serves the storefront catalog from memory and refreshes
// it from the repositories slice by slice. A failed refresh of one slice
// never discards another slice's fresh data, and never discards the
// previous value of its own slice. Writers invalidate; there is no TTL
// clock.
type SnapshotCache struct {
	products    catalog.ProductRepository
	departments catalog.DepartmentRepository
	config      siteconfig.Repository

	mu       sync.RWMutex
	snapshot Snapshot
	loaded   [sliceCount]bool

	store          SnapshotStore
	logger         *zap.Logger
	refreshTimeout time.Duration
}

// SnapshotCacheOption configures a SnapshotCache
type SnapshotCacheOption func(*SnapshotCache)

// WithSnapshotStore mirrors snapshots into a persisted store so a restart
// starts warm
func WithSnapshotStore(store SnapshotStore) SnapshotCacheOption {
	return func(c *SnapshotCache) {
		c.store = store
	}
}

// WithSnapshotLogger sets the logger
func WithSnapshotLogger(logger *zap.Logger) SnapshotCacheOption {
	return func(c *SnapshotCache) {
		c.logger = logger
	}
}

// WithRefreshTimeout bounds a single refresh pass
func WithRefreshTimeout(d time.Duration) SnapshotCacheOption {
	return func(c *SnapshotCache) {
		c.refreshTimeout = d
	}
}

// NewSnapshotCache creates a snapshot cache over the three catalog
// repositories
func NewSnapshotCache(
	products catalog.ProductRepository,
	departments catalog.DepartmentRepository,
	config siteconfig.Repository,
	opts ...SnapshotCacheOption,
) *SnapshotCache {
	c := &SnapshotCache{
		products:       products,
		departments:    departments,
		config:         config,
		logger:         zap.NewNop(),
		refreshTimeout: 10 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Warm seeds the in-memory snapshot from the persisted store, if one is
// configured. Missing or malformed entries are simply a miss.
func (c *SnapshotCache) Warm(ctx context.Context) {
	if c.store == nil {
		return
	}
	snap, ok := c.store.Load(ctx)
	if !ok {
		c.logger.Debug("No persisted snapshot to warm from")
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if len(snap.Products) > 0 {
		c.snapshot.Products = snap.Products
		c.loaded[sliceProducts] = true
	}
	if len(snap.Departments) > 0 {
		c.snapshot.Departments = snap.Departments
		c.loaded[sliceDepartments] = true
	}
	if snap.Config != nil {
		c.snapshot.Config = snap.Config
		c.loaded[sliceConfig] = true
	}
	c.logger.Info("Warmed snapshot cache from persisted store",
		zap.Int("products", len(snap.Products)),
		zap.Int("departments", len(snap.Departments)))
}

// Load returns the catalog snapshot. With forceRefresh=false, slices that
// are already cached are served as-is; only missing or invalidated slices
// hit the repositories. With forceRefresh=true every slice is refetched.
// A slice whose fetch fails keeps its previous value; Load itself never
// returns an error. On a cold start where everything fails the result is
// an empty snapshot.
func (c *SnapshotCache) Load(ctx context.Context, forceRefresh bool) Snapshot {
	c.mu.RLock()
	stale := [sliceCount]bool{}
	anyStale := false
	for s := slice(0); s < sliceCount; s++ {
		if forceRefresh || !c.loaded[s] {
			stale[s] = true
			anyStale = true
		}
	}
	snap := c.copySnapshotLocked()
	c.mu.RUnlock()

	if !anyStale {
		return snap
	}

	refreshCtx, cancel := context.WithTimeout(ctx, c.refreshTimeout)
	defer cancel()

	var (
		newProducts    []catalog.Product
		newDepartments []catalog.Department
		newConfig      *siteconfig.SiteConfig
		okProducts     bool
		okDepartments  bool
		okConfig       bool
	)

	if stale[sliceProducts] {
		if items, err := c.products.FindAll(refreshCtx, unpagedFilter()); err != nil {
			c.logger.Warn("Product refresh failed, keeping previous slice", zap.Error(err))
		} else {
			newProducts, okProducts = items, true
		}
	}
	if stale[sliceDepartments] {
		if items, err := c.departments.FindAll(refreshCtx, unpagedFilter()); err != nil {
			c.logger.Warn("Department refresh failed, keeping previous slice", zap.Error(err))
		} else {
			newDepartments, okDepartments = items, true
		}
	}
	if stale[sliceConfig] {
		cfg, err := c.config.Get(refreshCtx)
		switch {
		case err == nil:
			newConfig, okConfig = cfg, true
		case err == shared.ErrNotFound:
			// No config saved yet; the storefront falls back to defaults
			def := siteconfig.Default()
			newConfig, okConfig = def, true
		default:
			c.logger.Warn("Config refresh failed, keeping previous slice", zap.Error(err))
		}
	}

	c.mu.Lock()
	if okProducts {
		c.snapshot.Products = newProducts
		c.loaded[sliceProducts] = true
	}
	if okDepartments {
		c.snapshot.Departments = newDepartments
		c.loaded[sliceDepartments] = true
	}
	if okConfig {
		c.snapshot.Config = newConfig
		c.loaded[sliceConfig] = true
	}
	result := c.copySnapshotLocked()
	c.mu.Unlock()

	if c.store != nil && (okProducts || okDepartments || okConfig) {
		if err := c.store.Save(ctx, result); err != nil {
			c.logger.Warn("Failed to persist snapshot", zap.Error(err))
		}
	}

	return result
}

// InvalidateProducts marks the product slice stale; the next Load refetches it
func (c *SnapshotCache) InvalidateProducts() {
	c.invalidate(sliceProducts)
}

// InvalidateDepartments marks the department slice stale
func (c *SnapshotCache) InvalidateDepartments() {
	c.invalidate(sliceDepartments)
}

// InvalidateConfig marks the site configuration slice stale
func (c *SnapshotCache) InvalidateConfig() {
	c.invalidate(sliceConfig)
}

func (c *SnapshotCache) invalidate(s slice) {
	c.mu.Lock()
	c.loaded[s] = false
	c.mu.Unlock()
}

// copySnapshotLocked returns a shallow copy with fresh slice headers so
// callers can't observe a half-swapped slice. Caller must hold mu.
func (c *SnapshotCache) copySnapshotLocked() Snapshot {
	snap := Snapshot{Config: c.snapshot.Config}
	if c.snapshot.Products != nil {
		snap.Products = make([]catalog.Product, len(c.snapshot.Products))
		copy(snap.Products, c.snapshot.Products)
	}
	if c.snapshot.Departments != nil {
		snap.Departments = make([]catalog.Department, len(c.snapshot.Departments))
		copy(snap.Departments, c.snapshot.Departments)
	}
	return snap
}

func unpagedFilter() shared.Filter {
	return shared.Filter{}
}

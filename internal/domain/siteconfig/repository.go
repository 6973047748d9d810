package siteconfig

import "context"

// Repository is a zero-or-one record store for the site configuration.
// Get returns shared.ErrNotFound until the first Save; Save upserts the
// single record. There is no delete.
type Repository interface {
	Get(ctx context.Context) (*SiteConfig, error)
	Save(ctx context.Context, config *SiteConfig) error
}

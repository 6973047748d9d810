// Package siteconfig exposes the store-wide configuration to the admin
// console: exchange rate, promotional banner, branding and the general
// WhatsApp contact.
package siteconfig

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jx4/backend/internal/domain/identity"
	"github.com/jx4/backend/internal/domain/shared"
	"github.com/jx4/backend/internal/domain/siteconfig"
)

// CacheInvalidator marks the config slice of the snapshot cache stale
type CacheInvalidator interface {
	InvalidateConfig()
}

// UpdateRequest replaces the editable configuration fields
type UpdateRequest struct {
	ExchangeRate    decimal.Decimal `json:"tasa_cambio" binding:"required"`
	PromoBanner     string          `json:"cintillo_promocional" binding:"max=300"`
	Tagline         string          `json:"slogan" binding:"max=200"`
	LogoURL         string          `json:"logo_url" binding:"max=500"`
	WhatsAppGeneral string          `json:"whatsapp_general" binding:"max=30"`
}

// Response represents the site configuration in API responses
type Response struct {
	ExchangeRate    decimal.Decimal `json:"tasa_cambio"`
	PromoBanner     string          `json:"cintillo_promocional"`
	Tagline         string          `json:"slogan"`
	LogoURL         string          `json:"logo_url"`
	WhatsAppGeneral string          `json:"whatsapp_general"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// Service handles site configuration reads and the super-only update
type Service struct {
	repo  siteconfig.Repository
	cache CacheInvalidator
}

// NewService creates a new Service
func NewService(repo siteconfig.Repository, cache CacheInvalidator) *Service {
	return &Service{repo: repo, cache: cache}
}

// Get returns the active configuration. Before the first save it returns the
// built-in defaults, never an error.
func (s *Service) Get(ctx context.Context) (*Response, error) {
	config, err := s.repo.Get(ctx)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			config = siteconfig.Default()
		} else {
			return nil, err
		}
	}
	response := toResponse(config)
	return &response, nil
}

// Update replaces the configuration. The record is created implicitly on the
// first update; there is never more than one.
func (s *Service) Update(ctx context.Context, scope identity.Scope, req UpdateRequest) (*Response, error) {
	if err := scope.RequireSuper(); err != nil {
		return nil, err
	}

	config, err := s.repo.Get(ctx)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		config = siteconfig.Default()
	}

	if err := config.Update(req.ExchangeRate, req.PromoBanner, req.Tagline, req.LogoURL, req.WhatsAppGeneral); err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, config); err != nil {
		return nil, err
	}
	s.cache.InvalidateConfig()

	response := toResponse(config)
	return &response, nil
}

func toResponse(c *siteconfig.SiteConfig) Response {
	return Response{
		ExchangeRate:    c.ExchangeRate,
		PromoBanner:     c.PromoBanner,
		Tagline:         c.Tagline,
		LogoURL:         c.LogoURL,
		WhatsAppGeneral: c.WhatsAppGeneral,
		UpdatedAt:       c.UpdatedAt,
	}
}

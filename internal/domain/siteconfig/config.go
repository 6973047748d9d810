package siteconfig

import (
	"strings"
	"time"

	"github.com/jx4/backend/internal/domain/shared"
	"github.com/jx4/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// SiteConfig is the store-wide configuration. The backing store holds zero or
// one record; it is created implicitly on first save and never deleted.
type SiteConfig struct {
	shared.BaseEntity
	ExchangeRate    decimal.Decimal `gorm:"column:tasa_cambio;type:decimal(18,4);not null;default:0" json:"tasa_cambio"`
	PromoBanner     string          `gorm:"column:cintillo_promocional;type:varchar(300)" json:"cintillo_promocional"`
	Tagline         string          `gorm:"column:slogan;type:varchar(200)" json:"slogan"`
	LogoURL         string          `gorm:"column:logo_url;type:varchar(500)" json:"logo_url"`
	WhatsAppGeneral string          `gorm:"column:whatsapp_general;type:varchar(30)" json:"whatsapp_general"`
}

// TableName returns the table name for GORM
func (SiteConfig) TableName() string {
	return "site_config"
}

// Default returns the configuration used before an admin ever saved one
func Default() *SiteConfig {
	return &SiteConfig{
		BaseEntity:      shared.NewBaseEntity(),
		ExchangeRate:    decimal.NewFromFloat(36.5),
		PromoBanner:     "¡Bienvenidos a JX4 Paracotos!",
		Tagline:         "Calidad y Frescura en tu Mesa",
		LogoURL:         "https://cdn-icons-png.flaticon.com/512/3063/3063822.png",
		WhatsAppGeneral: "584241112233",
	}
}

// Update replaces the editable configuration fields
func (c *SiteConfig) Update(rate decimal.Decimal, promoBanner, tagline, logoURL, whatsappGeneral string) error {
	if !rate.IsPositive() {
		return shared.NewDomainError("INVALID_RATE", "Exchange rate must be positive")
	}
	if len(promoBanner) > 300 {
		return shared.NewDomainError("INVALID_BANNER", "Promotional banner cannot exceed 300 characters")
	}
	c.ExchangeRate = rate
	c.PromoBanner = promoBanner
	c.Tagline = tagline
	c.LogoURL = logoURL
	c.WhatsAppGeneral = strings.TrimSpace(whatsappGeneral)
	c.UpdatedAt = time.Now()
	return nil
}

// Rate returns the exchange rate as a value object
func (c *SiteConfig) Rate() (valueobject.ExchangeRate, error) {
	return valueobject.NewExchangeRate(c.ExchangeRate)
}

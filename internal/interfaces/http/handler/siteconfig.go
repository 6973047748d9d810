package handler

import (
	"github.com/gin-gonic/gin"

	siteconfigapp "github.com/jx4/backend/internal/application/siteconfig"
	"github.com/jx4/backend/internal/interfaces/http/middleware"
)

// SiteConfigHandler serves the store-wide settings: exchange rate,
// promo banner, tagline, logo and the general WhatsApp contact.
type SiteConfigHandler struct {
	BaseHandler
	configService *siteconfigapp.Service
}

func NewSiteConfigHandler(configService *siteconfigapp.Service) *SiteConfigHandler {
	return &SiteConfigHandler{configService: configService}
}

// Get returns the current site configuration, falling back to defaults
// when nothing has been saved yet.
func (h *SiteConfigHandler) Get(c *gin.Context) {
	config, err := h.configService.Get(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, config)
}

// Update replaces the site configuration. Super-only.
func (h *SiteConfigHandler) Update(c *gin.Context) {
	scope, ok := middleware.GetScope(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req siteconfigapp.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	config, err := h.configService.Update(c.Request.Context(), scope, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, config)
}

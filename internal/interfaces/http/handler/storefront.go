package handler

import (
	"github.com/gin-gonic/gin"

	orderingapp "github.com/jx4/backend/internal/application/ordering"
	"github.com/jx4/backend/internal/infrastructure/cache"
	"github.com/jx4/backend/internal/infrastructure/messaging"
)

// StorefrontHandler serves the public endpoints the customer-facing
// storefront renders from. Nothing here requires authentication.
type StorefrontHandler struct {
	BaseHandler
	snapshotCache   *cache.SnapshotCache
	checkoutService *orderingapp.CheckoutService
	customers       cache.CustomerStore // may be nil when Redis is disabled
}

func NewStorefrontHandler(
	snapshotCache *cache.SnapshotCache,
	checkoutService *orderingapp.CheckoutService,
	customers cache.CustomerStore,
) *StorefrontHandler {
	return &StorefrontHandler{
		snapshotCache:   snapshotCache,
		checkoutService: checkoutService,
		customers:       customers,
	}
}

// GetCatalog returns the catalog snapshot: products, departments and site
// configuration in one payload. Stale data is served while a background
// refresh runs; ?refresh=true forces a synchronous rebuild.
func (h *StorefrontHandler) GetCatalog(c *gin.Context) {
	forceRefresh := c.Query("refresh") == "true"
	snapshot := h.snapshotCache.Load(c.Request.Context(), forceRefresh)
	h.Success(c, snapshot)
}

// Checkout finalizes a cart into an order and returns the WhatsApp deep
// link. Persistence and notification outcomes are reported per-step so
// the storefront can tell the customer exactly what happened.
func (h *StorefrontHandler) Checkout(c *gin.Context) {
	var req orderingapp.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	result, err := h.checkoutService.Finalize(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// GetCustomerProfile returns the saved checkout profile for a phone
// number so the storefront can prefill the checkout form. A miss is a
// 404; the storefront treats it as an empty form.
func (h *StorefrontHandler) GetCustomerProfile(c *gin.Context) {
	phone := messaging.NormalizePhone(c.Param("telefono"))
	if phone == "" {
		h.BadRequest(c, "Invalid phone number")
		return
	}

	if h.customers == nil {
		h.NotFound(c, "No saved profile")
		return
	}

	profile, found := h.customers.Get(c.Request.Context(), phone)
	if !found {
		h.NotFound(c, "No saved profile")
		return
	}

	h.Success(c, profile)
}

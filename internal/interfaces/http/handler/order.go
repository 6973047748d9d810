package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	orderingapp "github.com/jx4/backend/internal/application/ordering"
	"github.com/jx4/backend/internal/interfaces/http/dto"
	"github.com/jx4/backend/internal/interfaces/http/middleware"
)

// OrderHandler serves the admin order console. Orders are written once at
// checkout; this surface only reads them.
type OrderHandler struct {
	BaseHandler
	orderService *orderingapp.OrderService
}

func NewOrderHandler(orderService *orderingapp.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// List returns orders visible to the caller's scope, paginated
func (h *OrderHandler) List(c *gin.Context) {
	scope, ok := middleware.GetScope(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var filter orderingapp.OrderListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindingError(c, err)
		return
	}

	orders, total, err := h.orderService.List(c.Request.Context(), scope, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, orders, dto.NewMeta(filter.Page, filter.PageSize, total))
}

// GetByID returns a single order visible to the caller's scope
func (h *OrderHandler) GetByID(c *gin.Context) {
	scope, ok := middleware.GetScope(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	order, err := h.orderService.GetByID(c.Request.Context(), scope, orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/jx4/backend/internal/infrastructure/advisory"
	"github.com/jx4/backend/internal/interfaces/http/middleware"
)

// AdvisoryHandler exposes the product text generator to the admin
// console. The adapter is best-effort: it always answers with some text,
// falling back to canned copy when the upstream model is unavailable.
type AdvisoryHandler struct {
	BaseHandler
	adapter *advisory.GeminiAdapter
}

func NewAdvisoryHandler(adapter *advisory.GeminiAdapter) *AdvisoryHandler {
	return &AdvisoryHandler{adapter: adapter}
}

// SuggestRequest asks for generated product copy
type SuggestRequest struct {
	Kind        string `json:"tipo" binding:"required,oneof=description tip"`
	ProductName string `json:"nombre_producto" binding:"required,min=1,max=200"`
	Context     string `json:"contexto" binding:"max=500"`
}

// SuggestResponse carries the generated text
type SuggestResponse struct {
	Text string `json:"texto"`
}

// Suggest generates a product description or usage tip
func (h *AdvisoryHandler) Suggest(c *gin.Context) {
	scope, ok := middleware.GetScope(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}
	if !scope.CanManageProducts() {
		h.Forbidden(c, "Insufficient permissions")
		return
	}

	var req SuggestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	text := h.adapter.Suggest(c.Request.Context(), advisory.Kind(req.Kind), req.ProductName, req.Context)
	h.Success(c, SuggestResponse{Text: text})
}

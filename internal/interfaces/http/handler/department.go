package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	catalogapp "github.com/jx4/backend/internal/application/catalog"
	"github.com/jx4/backend/internal/interfaces/http/middleware"
)

// DepartmentHandler serves the super-only department management endpoints
type DepartmentHandler struct {
	BaseHandler
	departmentService *catalogapp.DepartmentService
}

func NewDepartmentHandler(departmentService *catalogapp.DepartmentService) *DepartmentHandler {
	return &DepartmentHandler{departmentService: departmentService}
}

// Create creates a department
func (h *DepartmentHandler) Create(c *gin.Context) {
	scope, ok := middleware.GetScope(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req catalogapp.CreateDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	department, err := h.departmentService.Create(c.Request.Context(), scope, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, department)
}

// GetByID returns a single department
func (h *DepartmentHandler) GetByID(c *gin.Context) {
	scope, ok := middleware.GetScope(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	departmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid department ID")
		return
	}

	department, err := h.departmentService.GetByID(c.Request.Context(), scope, departmentID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, department)
}

// List returns all departments
func (h *DepartmentHandler) List(c *gin.Context) {
	scope, ok := middleware.GetScope(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	departments, err := h.departmentService.List(c.Request.Context(), scope)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, departments)
}

// Update applies a partial update to a department. The slug never changes.
func (h *DepartmentHandler) Update(c *gin.Context) {
	scope, ok := middleware.GetScope(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	departmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid department ID")
		return
	}

	var req catalogapp.UpdateDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	department, err := h.departmentService.Update(c.Request.Context(), scope, departmentID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, department)
}

// Delete removes a department
func (h *DepartmentHandler) Delete(c *gin.Context) {
	scope, ok := middleware.GetScope(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	departmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid department ID")
		return
	}

	if err := h.departmentService.Delete(c.Request.Context(), scope, departmentID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

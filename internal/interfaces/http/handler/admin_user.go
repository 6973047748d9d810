package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	identityapp "github.com/jx4/backend/internal/application/identity"
	"github.com/jx4/backend/internal/interfaces/http/middleware"
)

// AdminUserHandler serves the super-only admin account management endpoints
type AdminUserHandler struct {
	BaseHandler
	userService *identityapp.AdminUserService
}

func NewAdminUserHandler(userService *identityapp.AdminUserService) *AdminUserHandler {
	return &AdminUserHandler{userService: userService}
}

// Create creates an admin account
func (h *AdminUserHandler) Create(c *gin.Context) {
	scope, ok := middleware.GetScope(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req identityapp.CreateAdminUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	user, err := h.userService.Create(c.Request.Context(), scope, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, user)
}

// List returns all admin accounts
func (h *AdminUserHandler) List(c *gin.Context) {
	scope, ok := middleware.GetScope(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	users, err := h.userService.List(c.Request.Context(), scope)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, users)
}

// Update changes an admin's password, role or department scope. Demoting
// the last super is rejected.
func (h *AdminUserHandler) Update(c *gin.Context) {
	scope, ok := middleware.GetScope(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid user ID")
		return
	}

	var req identityapp.UpdateAdminUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	user, err := h.userService.Update(c.Request.Context(), scope, userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, user)
}

// Delete removes an admin account
func (h *AdminUserHandler) Delete(c *gin.Context) {
	scope, ok := middleware.GetScope(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid user ID")
		return
	}

	if err := h.userService.Delete(c.Request.Context(), scope, userID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

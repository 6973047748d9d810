package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jx4/backend/internal/domain/identity"
	"github.com/jx4/backend/internal/infrastructure/auth"
	"github.com/jx4/backend/internal/interfaces/http/dto"
)

// Context keys set by the JWT middleware
const (
	ContextKeyClaims = "jwt_claims"
	ContextKeyUserID = "user_id"
	ContextKeyScope  = "admin_scope"
)

// JWTAuth validates the Bearer token on every request and stores the
// claims plus the computed admin scope in the gin context. The scope is
// rebuilt from the token's role and department slugs, so a stale token
// keeps its old capabilities until it is refreshed.
func JWTAuth(jwtService *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := extractBearerToken(c)
		if err != nil {
			abortUnauthorized(c, dto.ErrCodeUnauthorized, "Authentication required")
			return
		}

		claims, err := jwtService.ValidateAccessToken(token)
		if err != nil {
			if errors.Is(err, auth.ErrExpiredToken) {
				abortUnauthorized(c, "TOKEN_EXPIRED", "Token has expired")
				return
			}
			abortUnauthorized(c, "TOKEN_INVALID", "Token is invalid")
			return
		}

		userID, err := claims.GetUserUUID()
		if err != nil {
			abortUnauthorized(c, "TOKEN_INVALID", "Token is invalid")
			return
		}

		scope := identity.ResolveScope(&identity.AdminUser{
			Role:      identity.Role(claims.Role),
			DeptSlugs: identity.DeptSlugs(claims.DeptSlugs),
		})

		c.Set(ContextKeyClaims, claims)
		c.Set(ContextKeyUserID, userID)
		c.Set(ContextKeyScope, scope)
		c.Next()
	}
}

func extractBearerToken(c *gin.Context) (string, error) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", auth.ErrInvalidToken
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", auth.ErrInvalidToken
	}
	return parts[1], nil
}

func abortUnauthorized(c *gin.Context, code, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(code, message))
}

// GetScope returns the admin scope stored by JWTAuth
func GetScope(c *gin.Context) (identity.Scope, bool) {
	value, exists := c.Get(ContextKeyScope)
	if !exists {
		return identity.Scope{}, false
	}
	scope, ok := value.(identity.Scope)
	return scope, ok
}

// GetUserID returns the authenticated admin's ID stored by JWTAuth
func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get(ContextKeyUserID)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := value.(uuid.UUID)
	return id, ok
}

// GetClaims returns the raw token claims stored by JWTAuth
func GetClaims(c *gin.Context) (*auth.Claims, bool) {
	value, exists := c.Get(ContextKeyClaims)
	if !exists {
		return nil, false
	}
	claims, ok := value.(*auth.Claims)
	return claims, ok
}

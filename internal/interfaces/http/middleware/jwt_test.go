package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jx4/backend/internal/domain/identity"
	"github.com/jx4/backend/internal/infrastructure/auth"
	"github.com/jx4/backend/internal/infrastructure/config"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newJWTService(accessExpiration time.Duration) *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-that-is-long-enough!",
		AccessTokenExpiration:  accessExpiration,
		RefreshTokenExpiration: 24 * time.Hour,
		Issuer:                 "jx4-test",
	})
}

type authContext struct {
	scope    identity.Scope
	scopeOK  bool
	userID   uuid.UUID
	userOK   bool
	claims   *auth.Claims
	claimsOK bool
}

func setupEngine(jwtService *auth.JWTService) (*gin.Engine, *authContext) {
	engine := gin.New()
	captured := &authContext{}
	engine.GET("/protegido", JWTAuth(jwtService), func(c *gin.Context) {
		captured.scope, captured.scopeOK = GetScope(c)
		captured.userID, captured.userOK = GetUserID(c)
		captured.claims, captured.claimsOK = GetClaims(c)
		c.Status(http.StatusOK)
	})
	return engine, captured
}

func TestJWTAuth_ValidToken(t *testing.T) {
	jwtService := newJWTService(15 * time.Minute)
	engine, captured := setupEngine(jwtService)

	userID := uuid.New()
	pair, err := jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		UserID:    userID,
		Username:  "carlos.carnes",
		Role:      "dept_admin",
		DeptSlugs: []string{"carnes", "charcuteria"},
	})
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/protegido", nil)
	req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	require.True(t, captured.scopeOK)
	assert.False(t, captured.scope.IsSuper())
	assert.True(t, captured.scope.CanViewDepartment("carnes"))
	assert.False(t, captured.scope.CanViewDepartment("viveres"))

	require.True(t, captured.userOK)
	assert.Equal(t, userID, captured.userID)

	require.True(t, captured.claimsOK)
	assert.Equal(t, "carlos.carnes", captured.claims.Username)
}

func TestJWTAuth_SuperScope(t *testing.T) {
	jwtService := newJWTService(15 * time.Minute)
	engine, captured := setupEngine(jwtService)

	pair, err := jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		UserID:   uuid.New(),
		Username: "maria.super",
		Role:     string(identity.RoleSuper),
	})
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/protegido", nil)
	req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, captured.scopeOK)
	assert.True(t, captured.scope.IsSuper())
}

func TestJWTAuth_MissingHeader(t *testing.T) {
	engine, _ := setupEngine(newJWTService(15 * time.Minute))

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest("GET", "/protegido", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "UNAUTHORIZED")
}

func TestJWTAuth_MalformedHeader(t *testing.T) {
	engine, _ := setupEngine(newJWTService(15 * time.Minute))

	req := httptest.NewRequest("GET", "/protegido", nil)
	req.Header.Set("Authorization", "Token abc123")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuth_ExpiredToken(t *testing.T) {
	jwtService := newJWTService(-1 * time.Minute)
	engine, _ := setupEngine(jwtService)

	pair, err := jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		UserID:   uuid.New(),
		Username: "maria.super",
		Role:     "super",
	})
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/protegido", nil)
	req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "TOKEN_EXPIRED")
}

func TestJWTAuth_RefreshTokenRejected(t *testing.T) {
	jwtService := newJWTService(15 * time.Minute)
	engine, _ := setupEngine(jwtService)

	pair, err := jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		UserID:   uuid.New(),
		Username: "maria.super",
		Role:     "super",
	})
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/protegido", nil)
	req.Header.Set("Authorization", "Bearer "+pair.RefreshToken)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "TOKEN_INVALID")
}

func TestJWTAuth_GarbageToken(t *testing.T) {
	engine, _ := setupEngine(newJWTService(15 * time.Minute))

	req := httptest.NewRequest("GET", "/protegido", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "TOKEN_INVALID")
}

package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jx4/backend/internal/domain/ordering"
	"github.com/jx4/backend/internal/domain/shared"
	"github.com/jx4/backend/internal/infrastructure/auth"
	"github.com/jx4/backend/internal/interfaces/http/dto"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serveError(err error) *httptest.ResponseRecorder {
	engine := gin.New()
	h := &BaseHandler{}
	engine.GET("/falla", func(c *gin.Context) {
		h.HandleError(c, err)
	})
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest("GET", "/falla", nil))
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	return resp
}

func TestHandleError_DomainError(t *testing.T) {
	w := serveError(shared.NewDomainError("CARRIER_REQUIRED", "A carrier must be selected for delivery"))

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	resp := decodeError(t, w)
	assert.Equal(t, "CARRIER_REQUIRED", resp.Error.Code)
	assert.Equal(t, "A carrier must be selected for delivery", resp.Error.Message)
}

func TestHandleError_CartConflict(t *testing.T) {
	w := serveError(ordering.ErrCrossDepartmentConflict)

	assert.Equal(t, http.StatusConflict, w.Code)
	resp := decodeError(t, w)
	assert.Equal(t, "CROSS_DEPARTMENT_CONFLICT", resp.Error.Code)
}

func TestHandleError_Sentinels(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"not found", shared.ErrNotFound, http.StatusNotFound},
		{"already exists", shared.ErrAlreadyExists, http.StatusConflict},
		{"invalid credentials", shared.ErrInvalidCredentials, http.StatusUnauthorized},
		{"forbidden", shared.ErrForbidden, http.StatusForbidden},
		{"unauthorized", shared.ErrUnauthorized, http.StatusUnauthorized},
		{"invalid input", shared.ErrInvalidInput, http.StatusBadRequest},
		{"expired token", auth.ErrExpiredToken, http.StatusUnauthorized},
		{"invalid token", auth.ErrInvalidToken, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serveError(tt.err)
			assert.Equal(t, tt.code, w.Code)
		})
	}
}

func TestHandleError_UnknownErrorDoesNotLeak(t *testing.T) {
	w := serveError(opaqueError{})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	resp := decodeError(t, w)
	assert.Equal(t, "INTERNAL_ERROR", resp.Error.Code)
	assert.NotContains(t, resp.Error.Message, "pq: connection refused")
}

type opaqueError struct{}

func (opaqueError) Error() string { return "pq: connection refused" }

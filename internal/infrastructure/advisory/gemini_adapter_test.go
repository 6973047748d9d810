package advisory

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jx4/backend/internal/infrastructure/config"
)

func newTestAdapter(baseURL string) *GeminiAdapter {
	return NewGeminiAdapter(config.AdvisoryConfig{
		Enabled: true,
		BaseURL: baseURL,
		APIKey:  "test-key",
		Model:   "gemini-2.0-flash",
		Timeout: 2 * time.Second,
	}, nil)
}

func TestGeminiAdapter_Suggest(t *testing.T) {
	t.Run("returns generated text on success", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Contains(t, r.URL.Path, ":generateContent")
			assert.Equal(t, "test-key", r.URL.Query().Get("key"))
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"  Corte fresco ideal para la parrilla.  "}]}}]}`))
		}))
		defer server.Close()

		adapter := newTestAdapter(server.URL)
		text := adapter.Suggest(context.Background(), KindDescription, "Carne de Res", "carnes")

		assert.Equal(t, "Corte fresco ideal para la parrilla.", text)
	})

	t.Run("missing key resolves to fixed fallback", func(t *testing.T) {
		adapter := NewGeminiAdapter(config.AdvisoryConfig{Enabled: true, Timeout: time.Second}, nil)

		assert.Equal(t, "Calidad superior garantizada.",
			adapter.Suggest(context.Background(), KindDescription, "Carne de Res", "carnes"))
		assert.Equal(t, "Cocina con amor para mejores resultados.",
			adapter.Suggest(context.Background(), KindTip, "Carne de Res", ""))
	})

	t.Run("disabled adapter resolves to fixed fallback", func(t *testing.T) {
		adapter := NewGeminiAdapter(config.AdvisoryConfig{Enabled: false, APIKey: "k", Timeout: time.Second}, nil)

		assert.Equal(t, "Calidad superior garantizada.",
			adapter.Suggest(context.Background(), KindDescription, "Pollo", "aves"))
	})

	t.Run("server error resolves to error fallback", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		adapter := newTestAdapter(server.URL)

		assert.Equal(t, "Excelente producto para tu hogar.",
			adapter.Suggest(context.Background(), KindDescription, "Pollo", "aves"))
		assert.Equal(t, "Mantener refrigerado.",
			adapter.Suggest(context.Background(), KindTip, "Pollo", ""))
	})

	t.Run("malformed body resolves to error fallback", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{not json`))
		}))
		defer server.Close()

		adapter := newTestAdapter(server.URL)

		assert.Equal(t, "Excelente producto para tu hogar.",
			adapter.Suggest(context.Background(), KindDescription, "Pollo", "aves"))
	})

	t.Run("empty generated text resolves to empty fallback", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"   "}]}}]}`))
		}))
		defer server.Close()

		adapter := newTestAdapter(server.URL)

		assert.Equal(t, "Cocina a fuego lento para mejores resultados.",
			adapter.Suggest(context.Background(), KindTip, "Pollo", ""))
	})

	t.Run("unreachable host resolves to error fallback", func(t *testing.T) {
		adapter := newTestAdapter("http://127.0.0.1:1")

		assert.Equal(t, "Excelente producto para tu hogar.",
			adapter.Suggest(context.Background(), KindDescription, "Pollo", "aves"))
	})
}

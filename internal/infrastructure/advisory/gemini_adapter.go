package advisory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/jx4/backend/internal/infrastructure/config"
)

// maxResponseSize bounds the generator's response body (1MB)
const maxResponseSize = 1 * 1024 * 1024

// Kind selects which flavor of advisory copy to generate
type Kind string

const (
	KindDescription Kind = "description"
	KindTip         Kind = "tip"
)

// Fixed fallback copy. Every failure path resolves to one of these;
// callers only ever consume the returned text.
const (
	fallbackDescriptionNoKey = "Calidad superior garantizada."
	fallbackDescriptionError = "Excelente producto para tu hogar."
	fallbackTipNoKey         = "Cocina con amor para mejores resultados."
	fallbackTipEmpty         = "Cocina a fuego lento para mejores resultados."
	fallbackTipError         = "Mantener refrigerado."
)

// Provider generates short advisory copy for products
type Provider interface {
	Suggest(ctx context.Context, kind Kind, productName, productContext string) string
}

// GeminiAdapter implements Provider against a Gemini-style REST endpoint.
// Best-effort only: any failure resolves to fixed fallback copy. No
// retries, no caching.
type GeminiAdapter struct {
	cfg        config.AdvisoryConfig
	httpClient *http.Client
	logger     *zap.Logger
}

// NewGeminiAdapter creates a new adapter from configuration
func NewGeminiAdapter(cfg config.AdvisoryConfig, logger *zap.Logger) *GeminiAdapter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GeminiAdapter{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger,
	}
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// Suggest returns advisory copy for a product. It never fails: missing
// credentials, transport errors and malformed bodies all resolve to the
// fixed fallback for the requested kind.
func (a *GeminiAdapter) Suggest(ctx context.Context, kind Kind, productName, productContext string) string {
	if !a.cfg.Enabled || a.cfg.APIKey == "" {
		return fallbackNoKey(kind)
	}

	text, err := a.generate(ctx, prompt(kind, productName, productContext))
	if err != nil {
		a.logger.Warn("Advisory generation failed, using fallback",
			zap.String("kind", string(kind)),
			zap.String("product", productName),
			zap.Error(err))
		return fallbackError(kind)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return fallbackEmpty(kind)
	}
	return text
}

func (a *GeminiAdapter) generate(ctx context.Context, promptText string) (string, error) {
	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: promptText}}}},
	})
	if err != nil {
		return "", err
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s",
		strings.TrimRight(a.cfg.BaseURL, "/"), a.cfg.Model, a.cfg.APIKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("generator returned status %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return "", err
	}

	var decoded generateResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return "", fmt.Errorf("malformed generator response: %w", err)
	}
	if len(decoded.Candidates) == 0 || len(decoded.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("generator response has no candidates")
	}
	return decoded.Candidates[0].Content.Parts[0].Text, nil
}

func prompt(kind Kind, productName, productContext string) string {
	switch kind {
	case KindTip:
		return fmt.Sprintf("Dame un tip rápido de cocina para preparar %q. Máximo 100 caracteres.", productName)
	default:
		return fmt.Sprintf("Escribe una descripción comercial corta y apetitosa (máximo 150 caracteres) para un producto llamado %q en la categoría de %q.", productName, productContext)
	}
}

func fallbackNoKey(kind Kind) string {
	if kind == KindTip {
		return fallbackTipNoKey
	}
	return fallbackDescriptionNoKey
}

func fallbackError(kind Kind) string {
	if kind == KindTip {
		return fallbackTipError
	}
	return fallbackDescriptionError
}

func fallbackEmpty(kind Kind) string {
	if kind == KindTip {
		return fallbackTipEmpty
	}
	return fallbackDescriptionNoKey
}

// Ensure GeminiAdapter implements Provider
var _ Provider = (*GeminiAdapter)(nil)

package messaging

import (
	"net/url"
	"strings"

	"github.com/jx4/backend/internal/infrastructure/config"
)

// LinkBuilder builds WhatsApp deep links of the form
// <base>/<phone>?text=<percent-encoded message>
type LinkBuilder struct {
	baseURL string
}

// NewLinkBuilder creates a LinkBuilder from configuration
func NewLinkBuilder(cfg config.WhatsAppConfig) *LinkBuilder {
	return &LinkBuilder{baseURL: strings.TrimRight(cfg.BaseURL, "/")}
}

// BuildLink addresses a message to a phone number. The phone is reduced
// to digits; the text is percent-encoded with literal newlines preserved
// as %0A.
func (b *LinkBuilder) BuildLink(phone, text string) string {
	return b.baseURL + "/" + NormalizePhone(phone) + "?text=" + encodeText(text)
}

// NormalizePhone strips everything but digits from a phone-number-like
// string ("+58 424-111.2233" -> "584241112233")
func NormalizePhone(phone string) string {
	var sb strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// encodeText percent-encodes the message. url.QueryEscape turns spaces
// into '+', which WhatsApp renders literally, so those become %20.
func encodeText(text string) string {
	return strings.ReplaceAll(url.QueryEscape(text), "+", "%20")
}

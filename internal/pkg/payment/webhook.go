package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// WebhookVerifier handles webhook signature verification
type WebhookVerifier struct {
	webhookToken string
}

// NewWebhookVerifier creates a new webhook verifier
func NewWebhookVerifier(webhookToken string) *WebhookVerifier {
	return &WebhookVerifier{
		webhookToken: webhookToken,
	}
}

// VerifySignature verifies the callback token the processor sends in the
// x-callback-token header against the configured webhook token.
func (v *WebhookVerifier) VerifySignature(callbackToken string) bool {
	expected := []byte(strings.TrimSpace(v.webhookToken))
	got := []byte(strings.TrimSpace(callbackToken))
	return hmac.Equal(expected, got)
}

// VerifyHMACSignature verifies an HMAC-SHA256 signature over the raw payload
// (alternative signing scheme some processor accounts use)
func (v *WebhookVerifier) VerifyHMACSignature(payload []byte, signature string) bool {
	mac := hmac.New(sha256.New, []byte(v.webhookToken))
	mac.Write(payload)
	expectedMAC := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expectedMAC), []byte(signature))
}

// InvoiceWebhookPayload is the processor's invoice event body. Only the fields
// the billing flow consumes are declared; the processor sends more.
type InvoiceWebhookPayload struct {
	ID             string  `json:"id"`
	ExternalID     string  `json:"external_id"`
	Status         string  `json:"status"`
	Amount         float64 `json:"amount"`
	PaidAmount     float64 `json:"paid_amount"`
	PaidAt         string  `json:"paid_at"`
	PayerEmail     string  `json:"payer_email"`
	Description    string  `json:"description"`
	Currency       string  `json:"currency"`
	PaymentMethod  string  `json:"payment_method"`
	PaymentChannel string  `json:"payment_channel"`
}

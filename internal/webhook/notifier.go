package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"proposal-analyzer/internal/shared/metrics"
	"proposal-analyzer/internal/shared/telemetry"
	"proposal-analyzer/internal/shared/util"
)

const (
	// SignatureHeader carries the HMAC-SHA256 of the exact request body.
	SignatureHeader = "X-CF1-Signature"

	DefaultTimeout = 30 * time.Second

	userAgent = "proposal-analyzer-webhook/1.0"
)

// Notifier delivers signed result payloads to caller-specified endpoints.
// Delivery is single-attempt with a bounded timeout; there is no retry or
// backoff, and success is strictly an HTTP 200 response.
type Notifier struct {
	Secret string
	Client *http.Client
}

// New builds a notifier with the default delivery timeout.
func New(secret string) *Notifier {
	return &Notifier{
		Secret: secret,
		Client: &http.Client{Timeout: DefaultTimeout},
	}
}

// Notify serializes payload, signs the serialized bytes, and posts them to
// url. Returns true only on HTTP 200. Failures are logged and reported as
// false; the caller takes no further action.
func (n *Notifier) Notify(ctx context.Context, url string, payload any) bool {
	if url == "" {
		telemetry.Warn("webhook.skipped", map[string]any{"reason": "no webhook url"})
		return false
	}

	body, err := json.Marshal(payload)
	if err != nil {
		telemetry.Error("webhook.marshal_failed", map[string]any{"error": err.Error()})
		metrics.IncWebhookFailed()
		return false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		telemetry.Error("webhook.request_failed", map[string]any{"error": err.Error()})
		metrics.IncWebhookFailed()
		return false
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set(SignatureHeader, "sha256="+util.SignHMAC(n.Secret, body))

	client := n.Client
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}

	resp, err := client.Do(req)
	if err != nil {
		telemetry.Error("webhook.delivery_failed", map[string]any{
			"url":   url,
			"error": err.Error(),
		})
		metrics.IncWebhookFailed()
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		telemetry.Error("webhook.delivery_rejected", map[string]any{
			"url":         url,
			"status_code": resp.StatusCode,
		})
		metrics.IncWebhookFailed()
		return false
	}

	metrics.IncWebhookDelivered()
	telemetry.Info("webhook.delivered", map[string]any{
		"url":        url,
		"body_bytes": len(body),
	})
	return true
}

package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"strings"
	"time"

	"smartcv-backend/internal/shared/telemetry"
)

const retryBaseDelay = 300 * time.Millisecond

// WithRetry wraps a client with a single retry on transient provider
// failures. Non-transient errors pass through untouched.
func WithRetry(base Client) Client {
	if base == nil {
		return nil
	}
	return retryingClient{base: base}
}

type retryingClient struct {
	base Client
}

func (r retryingClient) Generate(ctx context.Context, prompt string) (json.RawMessage, error) {
	resp, err := r.base.Generate(ctx, prompt)
	if err == nil || !shouldRetry(err) {
		return resp, err
	}

	telemetry.Warn("llm retry", map[string]any{"error": err.Error()})
	select {
	case <-time.After(retryBaseDelay):
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	return r.base.Generate(ctx, prompt)
}

func shouldRetry(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "http status 5") || strings.Contains(msg, "server_error") {
		return true
	}
	if strings.Contains(msg, "timeout") && (strings.Contains(msg, "openai") || strings.Contains(msg, "llm") || strings.Contains(msg, "client.timeout")) {
		return true
	}
	if strings.Contains(msg, "connection reset") ||
		strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "connection closed") ||
		strings.Contains(msg, "broken pipe") ||
		strings.Contains(msg, "tls handshake timeout") ||
		strings.Contains(msg, "eof") {
		return true
	}

	return false
}

// Package llm abstracts the text-generation provider behind the resume
// drafting endpoints. Every call returns a JSON object; prompt builders pin
// the shape the caller decodes.
package llm

import (
	"context"
	"encoding/json"
	"errors"
)

// Client runs one generation request and returns the provider's JSON object.
type Client interface {
	Generate(ctx context.Context, prompt string) (json.RawMessage, error)
}

// ErrNotConfigured is returned when no provider is wired.
var ErrNotConfigured = errors.New("LLM provider not configured")

// PlaceholderClient is used when LLM_PROVIDER is unset; the drafting
// endpoints then answer 503 instead of failing at startup.
type PlaceholderClient struct{}

func (PlaceholderClient) Generate(ctx context.Context, prompt string) (json.RawMessage, error) {
	_ = ctx
	_ = prompt
	return nil, ErrNotConfigured
}

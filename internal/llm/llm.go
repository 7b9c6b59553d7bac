package llm

import (
	"context"
	"errors"
)

// Request is a single chat completion exchange sent to the model provider.
type Request struct {
	System   string
	User     string
	JSONMode bool
}

// Client abstracts LLM providers for resume writing and analysis.
type Client interface {
	// Generate runs one completion and returns the raw model text.
	// There are no retries; any provider failure surfaces as-is.
	Generate(ctx context.Context, req Request) (string, error)
}

// ErrNotConfigured is returned by the placeholder client.
var ErrNotConfigured = errors.New("LLM provider not configured")

// PlaceholderClient is a stub implementation used when no API key is set.
type PlaceholderClient struct{}

// Generate returns ErrNotConfigured.
func (PlaceholderClient) Generate(ctx context.Context, req Request) (string, error) {
	_ = ctx
	_ = req
	return "", ErrNotConfigured
}

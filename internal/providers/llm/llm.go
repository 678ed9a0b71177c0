package llm

import (
	"context"
	"errors"
)

// ErrUnavailable signals that the completion path is not usable (no API key,
// network failure, timeout). Callers degrade to their deterministic fallback.
var ErrUnavailable = errors.New("llm provider unavailable")

type Message struct {
	Role    string `json:"role"` // "system" | "user" | "assistant"
	Content string `json:"content"`
}

// Provider is the hosted text-completion collaborator.
type Provider interface {
	// Complete sends the system instruction plus a bounded ordered history and
	// returns the model's reply text.
	Complete(ctx context.Context, system string, history []Message, userMessage string) (string, error)
	// Available reports whether the provider is configured at all; false means
	// the LLM path is disabled, not an error.
	Available() bool
}

// Package ai turns preferences into plan fragments through an external
// chat-completion service.
package ai

import "context"

// CompletionRequest is one system instruction plus one user prompt.
type CompletionRequest struct {
	System      string
	Prompt      string
	Temperature float64
	MaxTokens   int
	JSON        bool // ask the service for a JSON-only answer
}

// Completer sends a single completion request and returns the raw text.
// Implementations must not retry; see RetryingCompleter.
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
	Model() string
}

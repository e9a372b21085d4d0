// Package llm provides clients for external language-model back-ends and an
// ordered fallback chain over them. Back-ends are treated as unreliable:
// callers degrade to deterministic behavior when every back-end fails or
// when no credential is configured.
package llm

import (
	"context"
	"errors"
)

// Request is a single completion request.
type Request struct {
	System      string
	User        string
	MaxTokens   int
	Temperature float64
}

// Client is a single model back-end.
type Client interface {
	// Name identifies the back-end in logs and collected errors.
	Name() string
	// Complete sends the prompts and returns the model's text answer.
	// An empty answer without error is treated as a failure by callers.
	Complete(ctx context.Context, req Request) (string, error)
}

// ErrEmptyResponse is returned when a back-end answers with no content.
var ErrEmptyResponse = errors.New("llm: empty response")

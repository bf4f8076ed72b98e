package llm

import (
	"context"
	"errors"
)

// ErrUnrecoverable marks provider failures that retrying the same prompt cannot
// fix: rejected credentials, a response that carries no completion at all.
var ErrUnrecoverable = errors.New("unrecoverable completion failure")

type CompletionRequest struct {
	System      string
	Prompt      string
	MaxTokens   int64
	Temperature float64
}

type Provider interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

package port

import "context"

// GenerateInput carries one chat-style text generation request.
type GenerateInput struct {
	System      string
	Prompt      string
	Temperature float64
	MaxTokens   int
}

// TextGenerator abstracts a synchronous chat-style text generation call.
// Implementations are treated as unreliable: callers own the degradation
// policy when a call errors or returns unusable output.
type TextGenerator interface {
	Generate(ctx context.Context, input GenerateInput) (string, error)
}

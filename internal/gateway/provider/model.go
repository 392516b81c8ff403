package provider

import "context"

// ChatPayload is a single text-in/text-out model invocation.
type ChatPayload struct {
	System    string
	User      string
	MaxTokens int
}

// ModelProvider is the black-box reasoning model boundary: text in, text
// out, bounded by ctx. Implementations make exactly one attempt per Call;
// retry policy belongs to the caller.
type ModelProvider interface {
	ID() string
	Enabled() bool
	Call(ctx context.Context, payload ChatPayload) (string, error)
}

package decision

import (
	"context"
	"fmt"
	"time"

	"stockpilot/internal/gateway/provider"
	"stockpilot/internal/logger"
)

// ModelClient wraps a provider with the per-call timeout and the retry
// policy: one retry with the identical payload on timeout or transport
// failure, then ErrModelUnavailable. Responses that later fail parsing are
// a parsing problem, not a transport problem, and are never retried here.
type ModelClient struct {
	Provider  provider.ModelProvider
	Timeout   time.Duration
	MaxTokens int
}

func NewModelClient(p provider.ModelProvider, timeout time.Duration, maxTokens int) *ModelClient {
	return &ModelClient{Provider: p, Timeout: timeout, MaxTokens: maxTokens}
}

func (c *ModelClient) Call(ctx context.Context, ticker string, prompt PromptBundle) (string, error) {
	payload := provider.ChatPayload{
		System:    prompt.System,
		User:      prompt.User,
		MaxTokens: c.MaxTokens,
	}
	logger.LogLLMRequest(c.Provider.ID(), ticker, prompt.System, prompt.User)

	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		if attempt > 0 {
			logger.Warnf("model call failed for %s, retrying once: %v", ticker, lastErr)
		}
		callCtx := ctx
		cancel := func() {}
		if c.Timeout > 0 {
			callCtx, cancel = context.WithTimeout(ctx, c.Timeout)
		}
		raw, err := c.Provider.Call(callCtx, payload)
		cancel()
		if err == nil {
			logger.LogLLMResponse(c.Provider.ID(), ticker, raw)
			return raw, nil
		}
		lastErr = err
		// Upstream cancellation is not a transport failure; stop immediately.
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
	}
	return "", fmt.Errorf("model %s failed after retry: %v: %w", c.Provider.ID(), lastErr, ErrModelUnavailable)
}

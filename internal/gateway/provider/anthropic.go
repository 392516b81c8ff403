package provider

import (
	"context"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// AnthropicModelProvider calls Claude through the official SDK.
type AnthropicModelProvider struct {
	id      string
	enabled bool
	model   string
	client  *anthropic.Client
}

func NewAnthropicModelProvider(id string, enabled bool, apiKey, model string) *AnthropicModelProvider {
	client := anthropic.NewClient(option.WithAPIKey(apiKey))
	return &AnthropicModelProvider{id: id, enabled: enabled, model: model, client: &client}
}

func (p *AnthropicModelProvider) ID() string    { return p.id }
func (p *AnthropicModelProvider) Enabled() bool { return p.enabled }

func (p *AnthropicModelProvider) Call(ctx context.Context, payload ChatPayload) (string, error) {
	maxTokens := payload.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 1024
	}
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(p.model),
		MaxTokens: int64(maxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(payload.User)),
		},
	}
	if payload.System != "" {
		params.System = []anthropic.TextBlockParam{{Text: payload.System}}
	}

	resp, err := p.client.Messages.New(ctx, params)
	if err != nil {
		return "", err
	}
	if resp == nil || len(resp.Content) == 0 {
		return "", fmt.Errorf("empty anthropic response")
	}
	return resp.Content[0].Text, nil
}

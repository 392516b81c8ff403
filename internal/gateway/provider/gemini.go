package provider

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// GeminiModelProvider calls Google Gemini through the genai SDK.
type GeminiModelProvider struct {
	id      string
	enabled bool
	model   string
	client  *genai.Client
}

func NewGeminiModelProvider(ctx context.Context, id string, enabled bool, apiKey, model string) (*GeminiModelProvider, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}
	return &GeminiModelProvider{id: id, enabled: enabled, model: model, client: client}, nil
}

func (p *GeminiModelProvider) ID() string    { return p.id }
func (p *GeminiModelProvider) Enabled() bool { return p.enabled }

func (p *GeminiModelProvider) Call(ctx context.Context, payload ChatPayload) (string, error) {
	config := &genai.GenerateContentConfig{}
	if payload.System != "" {
		config.SystemInstruction = genai.NewContentFromText(payload.System, genai.RoleUser)
	}
	if payload.MaxTokens > 0 {
		config.MaxOutputTokens = int32(payload.MaxTokens)
	}
	contents := []*genai.Content{
		genai.NewContentFromText(payload.User, genai.RoleUser),
	}

	resp, err := p.client.Models.GenerateContent(ctx, p.model, contents, config)
	if err != nil {
		return "", err
	}

	var out strings.Builder
	if resp != nil {
		for _, cand := range resp.Candidates {
			if cand.Content == nil {
				continue
			}
			for _, part := range cand.Content.Parts {
				if part.Text != "" {
					out.WriteString(part.Text)
				}
			}
			if out.Len() > 0 {
				break
			}
		}
	}
	if out.Len() == 0 {
		return "", fmt.Errorf("empty gemini response")
	}
	return out.String(), nil
}

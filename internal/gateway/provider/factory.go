package provider

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"stockpilot/internal/logger"
)

// ModelCfg is one configured model entry.
type ModelCfg struct {
	ID       string
	Provider string // "openai" | "groq" | "deepseek" | "gemini" | "anthropic"
	APIURL   string
	APIKey   string
	Model    string
	Enabled  bool
	Headers  map[string]string
}

// BuildProviders constructs every enabled provider from config. Entries
// without an explicit id get one derived from provider and model.
func BuildProviders(ctx context.Context, models []ModelCfg, timeout time.Duration) ([]ModelProvider, error) {
	out := make([]ModelProvider, 0, len(models))
	for _, m := range models {
		if !m.Enabled {
			continue
		}
		id := strings.TrimSpace(m.ID)
		if id == "" {
			base := strings.TrimSpace(m.Provider)
			if base == "" {
				base = "provider"
			}
			if model := strings.TrimSpace(m.Model); model != "" {
				id = fmt.Sprintf("%s:%s", base, model)
			} else {
				id = base
			}
			logger.Warnf("ai.models.id not set, generated id %q for provider %q", id, m.Provider)
		}

		p, err := buildOne(ctx, id, m, timeout)
		if err != nil {
			return nil, fmt.Errorf("building model %s: %w", id, err)
		}
		logger.Debugf("model provider ready: id=%s model=%s key=%s", id, m.Model, maskKey(m.APIKey))
		out = append(out, p)
	}
	return out, nil
}

func buildOne(ctx context.Context, id string, m ModelCfg, timeout time.Duration) (ModelProvider, error) {
	switch strings.ToLower(strings.TrimSpace(m.Provider)) {
	case "gemini":
		return NewGeminiModelProvider(ctx, id, true, m.APIKey, m.Model)
	case "anthropic":
		return NewAnthropicModelProvider(id, true, m.APIKey, m.Model), nil
	default:
		// Everything else is assumed OpenAI-compatible (Groq, DeepSeek, ...).
		client := &OpenAIChatClient{
			BaseURL:      m.APIURL,
			APIKey:       m.APIKey,
			Model:        m.Model,
			ExtraHeaders: m.Headers,
		}
		if timeout > 0 {
			client.HTTPClient = &http.Client{Timeout: timeout}
		}
		return NewOpenAIModelProvider(id, true, client), nil
	}
}

// Pick returns the provider with the given id, or the first one when the id
// is empty.
func Pick(providers []ModelProvider, id string) (ModelProvider, error) {
	if len(providers) == 0 {
		return nil, fmt.Errorf("no enabled model providers")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return providers[0], nil
	}
	for _, p := range providers {
		if p.ID() == id {
			return p, nil
		}
	}
	return nil, fmt.Errorf("model provider %q not configured", id)
}

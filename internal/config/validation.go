package config

import (
	"fmt"
	"strings"
)

func validate(c *Config) error {
	enabled := 0
	for i, m := range c.AI.Models {
		if !m.Enabled {
			continue
		}
		enabled++
		if strings.TrimSpace(m.Model) == "" {
			return fmt.Errorf("ai.models[%d]: model name is required", i)
		}
		switch strings.ToLower(strings.TrimSpace(m.Provider)) {
		case "gemini", "anthropic":
			if strings.TrimSpace(m.APIKey) == "" {
				return fmt.Errorf("ai.models[%d]: api_key is required for provider %q", i, m.Provider)
			}
		}
	}
	if enabled == 0 {
		return fmt.Errorf("ai.models: at least one enabled model is required")
	}
	if use := strings.TrimSpace(c.AI.UseModel); use != "" {
		found := false
		for _, m := range c.AI.Models {
			if m.Enabled && m.ID == use {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("ai.use_model %q does not match any enabled model id", use)
		}
	}
	if c.Notify.Telegram.Enabled {
		if c.Notify.Telegram.BotToken == "" || c.Notify.Telegram.ChatID == "" {
			return fmt.Errorf("notify.telegram: bot_token and chat_id are required when enabled")
		}
	}
	return nil
}

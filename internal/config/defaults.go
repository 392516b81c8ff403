package config

func (c *Config) applyDefaults() {
	if c.App.LogLevel == "" {
		c.App.LogLevel = "info"
	}
	if c.App.HTTPAddr == "" {
		c.App.HTTPAddr = ":9980"
	}
	if c.Market.Range == "" {
		c.Market.Range = "1y"
	}
	if c.News.MaxItems <= 0 {
		c.News.MaxItems = 10
	}
	if c.News.MaxChars <= 0 {
		c.News.MaxChars = 2000
	}
	if c.AI.TimeoutSeconds <= 0 {
		c.AI.TimeoutSeconds = 60
	}
	if c.AI.MaxTokens <= 0 {
		c.AI.MaxTokens = 500
	}
	if c.AI.MaxResponseChars <= 0 {
		c.AI.MaxResponseChars = 800
	}
	if c.AI.MaxRationaleChars <= 0 {
		c.AI.MaxRationaleChars = 500
	}
	if c.AI.Concurrency <= 0 {
		c.AI.Concurrency = 4
	}
	if c.Store.Enabled && c.Store.Path == "" {
		c.Store.Path = "data/recommendations.db"
	}
}

package config

// Config is the top-level configuration carrier.
type Config struct {
	App    AppConfig    `toml:"app"`
	Market MarketConfig `toml:"market"`
	News   NewsConfig   `toml:"news"`
	AI     AIConfig     `toml:"ai"`
	Prompt PromptConfig `toml:"prompt"`
	Notify NotifyConfig `toml:"notify"`
	Store  StoreConfig  `toml:"store"`
}

type AppConfig struct {
	Env            string   `toml:"env"`
	LogLevel       string   `toml:"log_level"`
	HTTPAddr       string   `toml:"http_addr"`
	LogPath        string   `toml:"log_path"`
	LLMLog         string   `toml:"llm_log_path"`
	AnalyzeOnStart []string `toml:"analyze_on_start"`
}

type MarketConfig struct {
	ProxyURL string `toml:"proxy_url"`
	Range    string `toml:"range"` // chart lookback, e.g. "1y"
}

// NewsConfig bounds the digest: at most MaxItems headlines and MaxChars
// total headline characters reach the prompt.
type NewsConfig struct {
	MaxItems      int    `toml:"max_items"`
	MaxChars      int    `toml:"max_chars"`
	FinnhubAPIKey string `toml:"finnhub_api_key"`
}

type AIConfig struct {
	Models            []ModelConfig `toml:"models"`
	UseModel          string        `toml:"use_model"`
	TimeoutSeconds    int           `toml:"timeout_seconds"`
	MaxTokens         int           `toml:"max_tokens"`
	MaxResponseChars  int           `toml:"max_response_chars"`
	MaxRationaleChars int           `toml:"max_rationale_chars"`
	Concurrency       int           `toml:"concurrency"`
}

type ModelConfig struct {
	ID       string            `toml:"id"`
	Provider string            `toml:"provider"`
	APIURL   string            `toml:"api_url"`
	APIKey   string            `toml:"api_key"`
	Model    string            `toml:"model"`
	Enabled  bool              `toml:"enabled"`
	Headers  map[string]string `toml:"headers"`
}

type PromptConfig struct {
	Path string `toml:"path"` // optional prompt template file, hot-reloaded
}

type NotifyConfig struct {
	Telegram TelegramConfig `toml:"telegram"`
}

type TelegramConfig struct {
	Enabled  bool   `toml:"enabled"`
	BotToken string `toml:"bot_token"`
	ChatID   string `toml:"chat_id"`
}

type StoreConfig struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

package app

import (
	"context"
	"fmt"
	"time"

	"stockpilot/internal/config"
	"stockpilot/internal/config/loader"
	"stockpilot/internal/decision"
	"stockpilot/internal/gateway/notifier"
	"stockpilot/internal/gateway/provider"
	"stockpilot/internal/logger"
	"stockpilot/internal/market"
	"stockpilot/internal/news"
	"stockpilot/internal/store/gormstore"
	apihttp "stockpilot/internal/transport/http"
)

func buildApp(ctx context.Context, cfg *config.Config) (*App, error) {
	source := market.NewYahooSource(cfg.Market.ProxyURL)
	source.Range = cfg.Market.Range

	providers := buildNewsProviders(cfg)

	prompts, err := loader.NewPromptLoader(cfg.Prompt.Path)
	if err != nil {
		return nil, fmt.Errorf("prompt templates: %w", err)
	}

	timeout := time.Duration(cfg.AI.TimeoutSeconds) * time.Second
	modelProviders, err := provider.BuildProviders(ctx, modelConfigs(cfg), timeout)
	if err != nil {
		return nil, err
	}
	chosen, err := provider.Pick(modelProviders, cfg.AI.UseModel)
	if err != nil {
		return nil, err
	}
	logger.Infof("decision model: %s", chosen.ID())

	composer := decision.NewComposer(prompts)
	composer.MaxResponseChars = cfg.AI.MaxResponseChars
	parser := decision.NewParser()
	parser.MaxRationaleLen = cfg.AI.MaxRationaleChars

	engine := &decision.Engine{
		Market:       source,
		News:         providers,
		Client:       decision.NewModelClient(chosen, timeout, cfg.AI.MaxTokens),
		Composer:     composer,
		Parser:       parser,
		MaxNewsItems: cfg.News.MaxItems,
		MaxNewsChars: cfg.News.MaxChars,
		Concurrency:  cfg.AI.Concurrency,
	}

	var store *gormstore.Store
	if cfg.Store.Enabled {
		store, err = gormstore.NewStore(cfg.Store.Path)
		if err != nil {
			return nil, fmt.Errorf("recommendation store: %w", err)
		}
	}
	var notify notifier.Notifier
	if cfg.Notify.Telegram.Enabled {
		notify = notifier.NewTelegram(cfg.Notify.Telegram.BotToken, cfg.Notify.Telegram.ChatID)
	}
	if store != nil || notify != nil {
		engine.Recorder = &recorder{store: store, notify: notify}
	}

	httpSrv, err := apihttp.NewServer(apihttp.ServerConfig{
		Addr:     cfg.App.HTTPAddr,
		Analyzer: engine,
		Store:    store,
		Market:   source,
	})
	if err != nil {
		return nil, err
	}

	return &App{
		cfg:     cfg,
		engine:  engine,
		httpSrv: httpSrv,
		prompts: prompts,
	}, nil
}

func buildNewsProviders(cfg *config.Config) []news.Provider {
	providers := []news.Provider{news.NewDuckDuckGo()}
	if key := cfg.News.FinnhubAPIKey; key != "" {
		providers = append(providers, news.NewFinnhub(key))
	}
	return providers
}

func modelConfigs(cfg *config.Config) []provider.ModelCfg {
	out := make([]provider.ModelCfg, 0, len(cfg.AI.Models))
	for _, m := range cfg.AI.Models {
		out = append(out, provider.ModelCfg{
			ID:       m.ID,
			Provider: m.Provider,
			APIURL:   m.APIURL,
			APIKey:   m.APIKey,
			Model:    m.Model,
			Enabled:  m.Enabled,
			Headers:  m.Headers,
		})
	}
	return out
}

package app

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"stockpilot/internal/config"
	"stockpilot/internal/config/loader"
	"stockpilot/internal/decision"
	"stockpilot/internal/logger"
	apihttp "stockpilot/internal/transport/http"
)

// App wires the configuration into running services: the HTTP API, the
// prompt template watcher and the optional startup analyses.
type App struct {
	cfg     *config.Config
	engine  *decision.Engine
	httpSrv *apihttp.Server
	prompts *loader.PromptLoader
}

// NewApp builds the application object from config without starting it.
func NewApp(cfg *config.Config) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("nil config")
	}
	logger.SetLevel(cfg.App.LogLevel)
	return buildApp(context.Background(), cfg)
}

// Run starts all services and blocks until ctx is done or one of them
// fails.
func (a *App) Run(ctx context.Context) error {
	if a == nil || a.cfg == nil {
		return fmt.Errorf("app not initialized")
	}
	group, ctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		if err := a.httpSrv.Start(ctx); err != nil {
			return fmt.Errorf("http server error: %w", err)
		}
		return nil
	})

	group.Go(func() error {
		return a.prompts.Watch(ctx)
	})

	if tickers := a.cfg.App.AnalyzeOnStart; len(tickers) > 0 {
		group.Go(func() error {
			a.runStartupAnalyses(ctx, tickers)
			return nil
		})
	}

	return group.Wait()
}

func (a *App) runStartupAnalyses(ctx context.Context, tickers []string) {
	logger.Infof("running startup analyses for %d tickers", len(tickers))
	for _, res := range a.engine.AnalyzeAll(ctx, tickers) {
		if res.Err != nil {
			logger.Errorf("startup analysis %s failed: %v", res.Ticker, res.Err)
			continue
		}
		logger.Infof("startup analysis %s: %s", res.Ticker, res.Recommendation.Action)
	}
}

// Engine exposes the decision engine (for tests and replay harnesses).
func (a *App) Engine() *decision.Engine {
	if a == nil {
		return nil
	}
	return a.engine
}

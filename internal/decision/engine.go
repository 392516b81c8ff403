package decision

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"stockpilot/internal/analysis/indicator"
	"stockpilot/internal/logger"
	"stockpilot/internal/market"
	"stockpilot/internal/news"
)

// Recorder observes completed analyses. Recording is best-effort and
// outside the pipeline: a recorder failure never fails the analysis.
type Recorder interface {
	Record(ctx context.Context, rec Recommendation, digest news.Digest, latency time.Duration)
}

// Engine runs the full analysis pipeline for one ticker: fetch and
// normalize, compose, call the model, parse. Each request is stateless and
// independent; the engine is safe for concurrent use.
type Engine struct {
	Market   market.Source
	News     []news.Provider
	Client   *ModelClient
	Composer *Composer
	Parser   *Parser
	Recorder Recorder

	MaxNewsItems int
	MaxNewsChars int
	Concurrency  int
}

// Analyze produces a Recommendation or a failure; it never returns a
// half-populated result. Missing metrics and missing news degrade to
// explicit gaps in the prompt, an unresolvable ticker and model failures
// surface to the caller.
func (e *Engine) Analyze(ctx context.Context, ticker string) (Recommendation, error) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	if ticker == "" {
		return Recommendation{}, fmt.Errorf("empty ticker")
	}
	traceID := uuid.NewString()
	started := time.Now()

	snap := e.fetchSnapshot(ctx, ticker)
	if snap.err != nil {
		return Recommendation{}, snap.err
	}
	candles := e.fetchCandles(ctx, ticker)
	digest := e.fetchDigest(ctx, ticker, snap.snapshot.Company)
	if ctx.Err() != nil {
		return Recommendation{}, ctx.Err()
	}

	logger.Debugf("analysis %s [%s]: composing", ticker, traceID)
	bundle := e.Composer.Compose(Input{
		Ticker:     ticker,
		Snapshot:   snap.snapshot,
		Digest:     digest,
		Indicators: indicator.Compute(candles),
	})

	logger.Debugf("analysis %s [%s]: calling model", ticker, traceID)
	raw, err := e.Client.Call(ctx, ticker, bundle)
	if err != nil {
		return Recommendation{}, err
	}

	logger.Debugf("analysis %s [%s]: parsing", ticker, traceID)
	rec, err := e.Parser.Parse(ticker, traceID, raw)
	if err != nil {
		return Recommendation{}, err
	}
	latency := time.Since(started)
	logger.Infof("analysis %s [%s]: %s in %s", ticker, traceID, rec.Action, latency.Round(time.Millisecond))
	if e.Recorder != nil {
		e.Recorder.Record(ctx, rec, digest, latency)
	}
	return rec, nil
}

type snapshotResult struct {
	snapshot market.Snapshot
	err      error
}

// fetchSnapshot surfaces only unresolvable tickers and cancellation. Any
// other provider failure degrades to an all-unavailable snapshot so the
// pipeline can still complete.
func (e *Engine) fetchSnapshot(ctx context.Context, ticker string) snapshotResult {
	snap, err := e.Market.Snapshot(ctx, ticker)
	if err == nil {
		return snapshotResult{snapshot: snap}
	}
	if errors.Is(err, market.ErrDataUnavailable) {
		return snapshotResult{err: err}
	}
	if ctx.Err() != nil {
		return snapshotResult{err: ctx.Err()}
	}
	logger.Warnf("snapshot fetch failed for %s, proceeding without metrics: %v", ticker, err)
	return snapshotResult{snapshot: market.Snapshot{Ticker: ticker, AsOf: time.Now()}}
}

func (e *Engine) fetchCandles(ctx context.Context, ticker string) []market.Candle {
	candles, err := e.Market.DailyCandles(ctx, ticker)
	if err != nil {
		logger.Warnf("candle fetch failed for %s, indicators unavailable: %v", ticker, err)
		return nil
	}
	return candles
}

// fetchDigest walks the provider chain until one returns items. A fully
// failed or empty chain yields an empty digest, which the composer renders
// as "no recent news".
func (e *Engine) fetchDigest(ctx context.Context, ticker, company string) news.Digest {
	q := news.Query{Ticker: ticker, Company: company}
	for _, p := range e.News {
		items, err := p.Fetch(ctx, q, e.MaxNewsItems)
		if err != nil {
			logger.Warnf("news fetch via %s failed for %s: %v", p.Name(), ticker, err)
			continue
		}
		if len(items) > 0 {
			return news.BuildDigest(items, e.MaxNewsItems, e.MaxNewsChars)
		}
	}
	return news.Digest{}
}

// Result pairs one ticker with its outcome in a batch run.
type Result struct {
	Ticker         string
	Recommendation Recommendation
	Err            error
}

// AnalyzeAll runs independent analyses concurrently, one per ticker. A
// failure on one ticker never affects the others.
func (e *Engine) AnalyzeAll(ctx context.Context, tickers []string) []Result {
	results := make([]Result, len(tickers))
	limit := e.Concurrency
	if limit <= 0 {
		limit = 4
	}
	var eg errgroup.Group
	eg.SetLimit(limit)
	for i, ticker := range tickers {
		i, ticker := i, ticker
		eg.Go(func() error {
			rec, err := e.Analyze(ctx, ticker)
			results[i] = Result{Ticker: ticker, Recommendation: rec, Err: err}
			return nil
		})
	}
	_ = eg.Wait()
	return results
}

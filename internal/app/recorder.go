package app

import (
	"context"
	"time"

	"stockpilot/internal/decision"
	"stockpilot/internal/gateway/notifier"
	"stockpilot/internal/logger"
	"stockpilot/internal/news"
	"stockpilot/internal/store/gormstore"
)

// recorder persists and announces completed recommendations. Both sides are
// best-effort: a storage or notification failure is logged, never surfaced
// into the analysis result.
type recorder struct {
	store  *gormstore.Store
	notify notifier.Notifier
}

func (r *recorder) Record(ctx context.Context, rec decision.Recommendation, digest news.Digest, latency time.Duration) {
	if r.store != nil {
		if err := r.store.Save(ctx, rec, digest, latency); err != nil {
			logger.Warnf("saving recommendation %s [%s] failed: %v", rec.Ticker, rec.TraceID, err)
		}
	}
	if r.notify != nil {
		if err := r.notify.NotifyRecommendation(rec); err != nil {
			logger.Warnf("notifying recommendation %s [%s] failed: %v", rec.Ticker, rec.TraceID, err)
		}
	}
}

package market

import (
	"context"
	"errors"
)

// ErrDataUnavailable marks a ticker the provider cannot resolve at all.
// Individual missing fields never raise it; they degrade to unavailable
// metrics instead.
var ErrDataUnavailable = errors.New("market data unavailable")

// Source fetches point-in-time valuation data and daily history.
type Source interface {
	Name() string
	Snapshot(ctx context.Context, ticker string) (Snapshot, error)
	DailyCandles(ctx context.Context, ticker string) ([]Candle, error)
}

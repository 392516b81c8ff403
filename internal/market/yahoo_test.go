package market

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newYahooServer(t *testing.T, handler http.HandlerFunc) *YahooSource {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return &YahooSource{Client: srv.Client(), BaseURL: srv.URL, Range: "1y"}
}

func TestYahooSnapshot(t *testing.T) {
	src := newYahooServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, "/v10/finance/quoteSummary/AAPL")
		assert.Contains(t, r.URL.RawQuery, "modules=")
		w.Write([]byte(`{"quoteSummary": {"result": [{
			"price": {"longName": "Apple Inc.", "regularMarketPrice": {"raw": 189.84}},
			"summaryDetail": {"trailingPE": {"raw": 29.5}}
		}], "error": null}}`))
	})

	snap, err := src.Snapshot(context.Background(), "AAPL")
	require.NoError(t, err)
	assert.Equal(t, "Apple Inc.", snap.Company)
	assert.Equal(t, "189.84", snap.Price.Format(2, ""))
	assert.False(t, snap.MarketCap.Available())
}

func TestYahooSnapshotUnknownTicker(t *testing.T) {
	tests := map[string]http.HandlerFunc{
		"api error": func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"quoteSummary": {"result": null, "error": {"code": "Not Found", "description": "Quote not found for ticker symbol: NOSUCH"}}}`))
		},
		"empty result": func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"quoteSummary": {"result": [], "error": null}}`))
		},
		"http 404": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		},
	}
	for name, handler := range tests {
		t.Run(name, func(t *testing.T) {
			src := newYahooServer(t, handler)
			_, err := src.Snapshot(context.Background(), "NOSUCH")
			assert.ErrorIs(t, err, ErrDataUnavailable)
		})
	}
}

func TestYahooSnapshotServerError(t *testing.T) {
	src := newYahooServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})
	_, err := src.Snapshot(context.Background(), "AAPL")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrDataUnavailable, "a transient upstream failure is not an unknown ticker")
}

func TestYahooDailyCandles(t *testing.T) {
	src := newYahooServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasPrefix(r.URL.Path, "/v8/finance/chart/"))
		assert.Equal(t, "1y", r.URL.Query().Get("range"))
		w.Write([]byte(`{"chart": {"result": [{
			"timestamp": [1722470400, 1722556800, 1722643200],
			"indicators": {"quote": [{
				"open":   [100.0, null, 102.0],
				"high":   [101.0, null, 103.5],
				"low":    [99.0,  null, 101.5],
				"close":  [100.5, null, 103.0],
				"volume": [1000,  null, 1200]
			}]}
		}], "error": null}}`))
	})

	candles, err := src.DailyCandles(context.Background(), "AAPL")
	require.NoError(t, err)
	require.Len(t, candles, 2, "null bars are skipped")
	assert.Equal(t, 100.5, candles[0].Close)
	assert.Equal(t, 103.0, candles[1].Close)
	assert.Equal(t, 1200.0, candles[1].Volume)
	assert.True(t, candles[0].Time.Before(candles[1].Time))
}

func TestYahooDailyCandlesCancellation(t *testing.T) {
	src := newYahooServer(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := src.DailyCandles(ctx, "AAPL")
	assert.ErrorIs(t, err, context.Canceled)
}

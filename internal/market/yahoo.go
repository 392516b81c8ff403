package market

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	"github.com/tidwall/gjson"
)

const yahooBaseURL = "https://query1.finance.yahoo.com"

// YahooSource implements Source using the Yahoo Finance public API.
type YahooSource struct {
	Client  *http.Client
	BaseURL string // overridable for tests
	Range   string // chart lookback, e.g. "1y"
}

// NewYahooSource creates a Yahoo Finance source. proxyURL may be empty.
func NewYahooSource(proxyURL string) *YahooSource {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &YahooSource{
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
		BaseURL: yahooBaseURL,
		Range:   "1y",
	}
}

func (s *YahooSource) Name() string { return "yahoo" }

// Snapshot fetches the quoteSummary modules and normalizes them. An unknown
// ticker surfaces ErrDataUnavailable; missing modules or fields degrade to
// unavailable metrics.
func (s *YahooSource) Snapshot(ctx context.Context, ticker string) (Snapshot, error) {
	u := fmt.Sprintf("%s/v10/finance/quoteSummary/%s?modules=price,summaryDetail,summaryProfile,financialData",
		s.BaseURL, url.PathEscape(ticker))
	body, err := s.get(ctx, u)
	if err != nil {
		return Snapshot{}, fmt.Errorf("yahoo quoteSummary %s: %w", ticker, err)
	}
	doc := gjson.GetBytes(body, "quoteSummary")
	if errMsg := doc.Get("error.description"); errMsg.Exists() && errMsg.Str != "" {
		return Snapshot{}, fmt.Errorf("yahoo quoteSummary %s: %s: %w", ticker, errMsg.Str, ErrDataUnavailable)
	}
	result := doc.Get("result.0")
	if !result.Exists() {
		return Snapshot{}, fmt.Errorf("yahoo quoteSummary %s: empty result: %w", ticker, ErrDataUnavailable)
	}
	return NormalizeSnapshot(ticker, []byte(result.Raw), time.Now()), nil
}

// DailyCandles fetches up to Range of daily bars from the chart API.
func (s *YahooSource) DailyCandles(ctx context.Context, ticker string) ([]Candle, error) {
	rng := s.Range
	if rng == "" {
		rng = "1y"
	}
	u := fmt.Sprintf("%s/v8/finance/chart/%s?range=%s&interval=1d", s.BaseURL, url.PathEscape(ticker), rng)
	body, err := s.get(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("yahoo chart %s: %w", ticker, err)
	}
	doc := gjson.GetBytes(body, "chart")
	if errMsg := doc.Get("error.description"); errMsg.Exists() && errMsg.Str != "" {
		return nil, fmt.Errorf("yahoo chart %s: %s: %w", ticker, errMsg.Str, ErrDataUnavailable)
	}
	result := doc.Get("result.0")
	if !result.Exists() {
		return nil, fmt.Errorf("yahoo chart %s: empty result: %w", ticker, ErrDataUnavailable)
	}

	timestamps := result.Get("timestamp").Array()
	quote := result.Get("indicators.quote.0")
	opens := quote.Get("open").Array()
	highs := quote.Get("high").Array()
	lows := quote.Get("low").Array()
	closes := quote.Get("close").Array()
	volumes := quote.Get("volume").Array()

	candles := make([]Candle, 0, len(timestamps))
	for i, ts := range timestamps {
		if i >= len(opens) || i >= len(highs) || i >= len(lows) || i >= len(closes) {
			break
		}
		// Yahoo emits nulls for halted sessions; skip incomplete bars.
		if closes[i].Type != gjson.Number || opens[i].Type != gjson.Number {
			continue
		}
		c := Candle{
			Time:  time.Unix(ts.Int(), 0).UTC(),
			Open:  opens[i].Num,
			High:  highs[i].Num,
			Low:   lows[i].Num,
			Close: closes[i].Num,
		}
		if i < len(volumes) && volumes[i].Type == gjson.Number {
			c.Volume = volumes[i].Num
		}
		candles = append(candles, c)
	}
	sort.Slice(candles, func(i, j int) bool { return candles[i].Time.Before(candles[j].Time) })
	return candles, nil
}

func (s *YahooSource) get(ctx context.Context, u string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (stockpilot)")
	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrDataUnavailable
	}
	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("status=%d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

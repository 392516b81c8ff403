package news

import (
	"context"
	"time"

	finnhub "github.com/Finnhub-Stock-API/finnhub-go/v2"
)

// Finnhub fetches company news through the official Finnhub SDK. Used as an
// alternative provider when an API key is configured.
type Finnhub struct {
	client   *finnhub.DefaultApiService
	lookback time.Duration
}

func NewFinnhub(apiKey string) *Finnhub {
	cfg := finnhub.NewConfiguration()
	cfg.AddDefaultHeader("X-Finnhub-Token", apiKey)
	return &Finnhub{
		client:   finnhub.NewAPIClient(cfg).DefaultApi,
		lookback: 14 * 24 * time.Hour,
	}
}

func (p *Finnhub) Name() string { return "finnhub" }

// Fetch queries company news by ticker symbol over the lookback window.
func (p *Finnhub) Fetch(ctx context.Context, q Query, limit int) ([]Item, error) {
	if limit <= 0 {
		limit = 10
	}
	now := time.Now().UTC()
	from := now.Add(-p.lookback)
	res, _, err := p.client.CompanyNews(ctx).
		Symbol(q.Ticker).
		From(from.Format("2006-01-02")).
		To(now.Format("2006-01-02")).
		Execute()
	if err != nil {
		return nil, err
	}

	items := make([]Item, 0, limit)
	for _, n := range res {
		if len(items) >= limit {
			break
		}
		it := Item{}
		if n.Headline != nil {
			it.Headline = *n.Headline
		}
		if it.Headline == "" {
			continue
		}
		if n.Source != nil {
			it.Source = *n.Source
		}
		if n.Url != nil {
			it.URL = *n.Url
		}
		if n.Datetime != nil {
			it.PublishedAt = time.Unix(*n.Datetime, 0).UTC()
		}
		items = append(items, it)
	}
	return items, nil
}

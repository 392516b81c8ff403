package news

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"time"

	"github.com/tidwall/gjson"
)

const ddgBaseURL = "https://duckduckgo.com"

var ddgVqdPattern = regexp.MustCompile(`vqd=['"]?([\d-]+)`)

// DuckDuckGo fetches headlines from the DuckDuckGo news endpoint. The
// endpoint is unauthenticated but requires a per-query vqd token scraped
// from the search page first.
type DuckDuckGo struct {
	Client  *http.Client
	BaseURL string
}

func NewDuckDuckGo() *DuckDuckGo {
	return &DuckDuckGo{
		Client:  &http.Client{Timeout: 20 * time.Second},
		BaseURL: ddgBaseURL,
	}
}

func (p *DuckDuckGo) Name() string { return "duckduckgo" }

func (p *DuckDuckGo) Fetch(ctx context.Context, q Query, limit int) ([]Item, error) {
	if limit <= 0 {
		limit = 10
	}
	query := q.Text()
	vqd, err := p.fetchVqd(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("ddg vqd: %w", err)
	}
	u := fmt.Sprintf("%s/news.js?l=us-en&o=json&noamp=1&q=%s&vqd=%s",
		p.BaseURL, url.QueryEscape(query), url.QueryEscape(vqd))
	body, err := p.get(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("ddg news: %w", err)
	}

	results := gjson.GetBytes(body, "results").Array()
	items := make([]Item, 0, limit)
	for _, r := range results {
		if len(items) >= limit {
			break
		}
		title := r.Get("title").String()
		if title == "" {
			continue
		}
		it := Item{
			Headline: title,
			Source:   r.Get("source").String(),
			URL:      r.Get("url").String(),
		}
		if ts := r.Get("date"); ts.Type == gjson.Number {
			it.PublishedAt = time.Unix(ts.Int(), 0).UTC()
		}
		items = append(items, it)
	}
	return items, nil
}

func (p *DuckDuckGo) fetchVqd(ctx context.Context, query string) (string, error) {
	u := fmt.Sprintf("%s/?q=%s&iar=news", p.BaseURL, url.QueryEscape(query))
	body, err := p.get(ctx, u)
	if err != nil {
		return "", err
	}
	m := ddgVqdPattern.FindSubmatch(body)
	if len(m) < 2 {
		return "", fmt.Errorf("vqd token not found")
	}
	return string(m[1]), nil
}

func (p *DuckDuckGo) get(ctx context.Context, u string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (stockpilot)")
	resp, err := p.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("status=%d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

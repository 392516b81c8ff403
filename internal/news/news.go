package news

import (
	"context"
	"strings"
	"time"
)

// Item is a single raw news entry as returned by a provider.
type Item struct {
	Headline    string
	Source      string
	URL         string
	PublishedAt time.Time
}

// Query identifies what to search news for. Company may be empty when the
// market provider could not resolve a long name.
type Query struct {
	Ticker  string
	Company string
}

// Text returns the free-text form of the query for search-style providers.
func (q Query) Text() string {
	name := strings.TrimSpace(q.Company)
	if name == "" {
		name = strings.TrimSpace(q.Ticker)
	}
	return name + " stock news"
}

// Provider fetches recent news for a ticker or company name. An empty
// result is a valid answer, not an error.
type Provider interface {
	Name() string
	Fetch(ctx context.Context, q Query, limit int) ([]Item, error)
}

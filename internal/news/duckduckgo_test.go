package news

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDuckDuckGoFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/":
			assert.Equal(t, "Apple Inc. stock news", r.URL.Query().Get("q"))
			w.Write([]byte(`<script>vqd="4-123456789";</script>`))
		case "/news.js":
			assert.Equal(t, "4-123456789", r.URL.Query().Get("vqd"))
			w.Write([]byte(`{"results": [
				{"title": "Apple unveils new chip", "source": "Reuters", "url": "https://example.com/1", "date": 1722470400},
				{"title": "", "source": "skipped"},
				{"title": "iPhone sales climb", "source": "Bloomberg", "date": 1722384000},
				{"title": "over limit", "source": "x"}
			]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	p := &DuckDuckGo{Client: srv.Client(), BaseURL: srv.URL}
	items, err := p.Fetch(context.Background(), Query{Ticker: "AAPL", Company: "Apple Inc."}, 2)
	require.NoError(t, err)
	require.Len(t, items, 2, "empty titles skipped, limit enforced")
	assert.Equal(t, "Apple unveils new chip", items[0].Headline)
	assert.Equal(t, "Reuters", items[0].Source)
	assert.False(t, items[0].PublishedAt.IsZero())
	assert.Equal(t, "iPhone sales climb", items[1].Headline)
}

func TestDuckDuckGoMissingVqd(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>no token here</html>`))
	}))
	defer srv.Close()

	p := &DuckDuckGo{Client: srv.Client(), BaseURL: srv.URL}
	_, err := p.Fetch(context.Background(), Query{Ticker: "AAPL"}, 5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "vqd")
}

func TestQueryText(t *testing.T) {
	assert.Equal(t, "Apple Inc. stock news", Query{Ticker: "AAPL", Company: "Apple Inc."}.Text())
	assert.Equal(t, "AAPL stock news", Query{Ticker: "AAPL"}.Text())
}

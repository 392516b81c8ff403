package news

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func itemsAt(base time.Time, headlines ...string) []Item {
	items := make([]Item, len(headlines))
	for i, h := range headlines {
		// Older items come later so tests can hand input in recency order.
		items[i] = Item{Headline: h, PublishedAt: base.Add(-time.Duration(i) * time.Hour)}
	}
	return items
}

func headlines(d Digest) []string {
	out := make([]string, len(d.Items))
	for i, it := range d.Items {
		out[i] = it.Headline
	}
	return out
}

func TestBuildDigestRecencyOrder(t *testing.T) {
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	items := itemsAt(base, "newest", "middle", "oldest")
	// Shuffle the input order; output must still be most-recent-first.
	shuffled := []Item{items[2], items[0], items[1]}

	d := BuildDigest(shuffled, 10, 1000)
	assert.Equal(t, []string{"newest", "middle", "oldest"}, headlines(d))
}

func TestBuildDigestItemLimit(t *testing.T) {
	base := time.Now()
	d := BuildDigest(itemsAt(base, "a", "b", "c", "d"), 2, 1000)
	require.Len(t, d.Items, 2)
	assert.Equal(t, []string{"a", "b"}, headlines(d))
}

func TestBuildDigestCharBudgetKeepsWholeItems(t *testing.T) {
	base := time.Now()
	items := itemsAt(base, "aaaaaaaaaa", "bbbbbbbbbb", "cccccccccc")

	// Budget fits two headlines plus half of the third; the third is dropped
	// whole, never split.
	d := BuildDigest(items, 10, 25)
	assert.Equal(t, []string{"aaaaaaaaaa", "bbbbbbbbbb"}, headlines(d))
	assert.LessOrEqual(t, d.TotalChars(), 25)
}

func TestBuildDigestIdempotent(t *testing.T) {
	base := time.Now()
	items := itemsAt(base, "first headline", "second headline", "third headline", "fourth headline")

	once := BuildDigest(items, 3, 40)
	twice := BuildDigest(once.Items, 3, 40)
	assert.Equal(t, once, twice, "re-digesting a digest under the same limits must be a no-op")
}

func TestBuildDigestEdgeCases(t *testing.T) {
	assert.True(t, BuildDigest(nil, 10, 1000).Empty())
	assert.True(t, BuildDigest(itemsAt(time.Now(), "x"), 0, 1000).Empty())
	assert.True(t, BuildDigest(itemsAt(time.Now(), "x"), 10, 0).Empty())

	// Blank headlines are skipped without consuming a slot.
	items := itemsAt(time.Now(), "  ", "kept")
	d := BuildDigest(items, 1, 1000)
	assert.Equal(t, []string{"kept"}, headlines(d))
}

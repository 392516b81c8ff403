package news

import (
	"sort"
	"strings"
)

// Digest is the bounded, recency-ordered news summary handed to the
// decision prompt.
type Digest struct {
	Items []Item
}

func (d Digest) Empty() bool { return len(d.Items) == 0 }

// TotalChars counts headline characters, the budget BuildDigest enforces.
func (d Digest) TotalChars() int {
	n := 0
	for _, it := range d.Items {
		n += len(it.Headline)
	}
	return n
}

// BuildDigest sorts items most-recent-first and keeps whole items until
// either the item count K or the character budget C would be exceeded.
// Headlines are never split mid-item. Empty input yields an empty digest.
// Re-digesting an already-truncated digest with the same limits is a no-op.
func BuildDigest(items []Item, maxItems, maxChars int) Digest {
	if len(items) == 0 || maxItems <= 0 || maxChars <= 0 {
		return Digest{}
	}
	sorted := make([]Item, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].PublishedAt.After(sorted[j].PublishedAt)
	})

	kept := make([]Item, 0, maxItems)
	chars := 0
	for _, it := range sorted {
		if len(kept) >= maxItems {
			break
		}
		headline := strings.TrimSpace(it.Headline)
		if headline == "" {
			continue
		}
		if chars+len(headline) > maxChars {
			break
		}
		it.Headline = headline
		kept = append(kept, it)
		chars += len(headline)
	}
	return Digest{Items: kept}
}

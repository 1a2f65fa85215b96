package sheetcore

import (
	"time"

	"github.com/wooil/sheetsync/internal/types"
)

// NaturalKey builds the composite key identifying a logical keyword entry.
func NaturalKey(company, keyword, popularTopic, url string) string {
	return company + "||" + keyword + "||" + popularTopic + "||" + url
}

func keywordKey(kw types.Keyword) string {
	return NaturalKey(kw.Company, kw.Keyword, kw.PopularTopic, kw.URL)
}

// effectiveTime is max(updatedAt, createdAt, lastChecked, epoch0). Records
// written by different code paths populate different subsets of the three
// timestamps.
func effectiveTime(kw types.Keyword) time.Time {
	t := time.Unix(0, 0).UTC()
	for _, cand := range []time.Time{kw.UpdatedAt, kw.CreatedAt, kw.LastChecked} {
		if cand.After(t) {
			t = cand
		}
	}
	return t
}

// BuildLatestIndex reduces records sharing a natural key to the single
// freshest one. Later effective timestamp wins; on an exact tie the record
// whose id hex string compares greater wins, so the outcome is total and
// independent of input order. Repeated partial re-syncs leave stale
// duplicates behind and downstream matching must only see the survivor.
func BuildLatestIndex(records []types.Keyword) map[string]types.Keyword {
	latest := make(map[string]types.Keyword, len(records))
	for _, kw := range records {
		key := keywordKey(kw)
		prev, ok := latest[key]
		if !ok {
			latest[key] = kw
			continue
		}
		prevTime := effectiveTime(prev)
		curTime := effectiveTime(kw)
		if curTime.After(prevTime) ||
			(curTime.Equal(prevTime) && kw.ID.Hex() > prev.ID.Hex()) {
			latest[key] = kw
		}
	}
	return latest
}

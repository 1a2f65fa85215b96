package sheetcore

import (
	"math/rand"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/wooil/sheetsync/internal/types"
)

func kwAt(id byte, updated time.Time) types.Keyword {
	var oid primitive.ObjectID
	oid[11] = id
	return types.Keyword{
		ID:        oid,
		Company:   "A Corp",
		Keyword:   "kw",
		UpdatedAt: updated,
	}
}

func TestBuildLatestIndexPicksNewest(t *testing.T) {
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	records := []types.Keyword{
		kwAt(1, base),
		kwAt(2, base.Add(time.Hour)),
		kwAt(3, base.Add(-time.Hour)),
	}
	latest := BuildLatestIndex(records)
	if len(latest) != 1 {
		t.Fatalf("expected one surviving key, got %d", len(latest))
	}
	got := latest[NaturalKey("A Corp", "kw", "", "")]
	if got.ID[11] != 2 {
		t.Fatalf("expected record 2 to survive, got %d", got.ID[11])
	}
}

func TestBuildLatestIndexTieBreaksByID(t *testing.T) {
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	records := []types.Keyword{kwAt(7, base), kwAt(9, base), kwAt(8, base)}
	latest := BuildLatestIndex(records)
	got := latest[NaturalKey("A Corp", "kw", "", "")]
	if got.ID[11] != 9 {
		t.Fatalf("expected greatest id to win the tie, got %d", got.ID[11])
	}
}

func TestBuildLatestIndexFallsBackThroughTimestamps(t *testing.T) {
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	withCreated := kwAt(1, time.Time{})
	withCreated.CreatedAt = base.Add(2 * time.Hour)
	withChecked := kwAt(2, time.Time{})
	withChecked.LastChecked = base

	latest := BuildLatestIndex([]types.Keyword{withChecked, withCreated})
	got := latest[NaturalKey("A Corp", "kw", "", "")]
	if got.ID[11] != 1 {
		t.Fatalf("createdAt should count toward the effective time, got %d", got.ID[11])
	}
}

func TestBuildLatestIndexOrderIndependent(t *testing.T) {
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	records := []types.Keyword{
		kwAt(1, base), kwAt(2, base), kwAt(3, base.Add(time.Minute)),
		kwAt(4, base), kwAt(5, base.Add(time.Minute)),
	}
	want := BuildLatestIndex(records)[NaturalKey("A Corp", "kw", "", "")]

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 20; i++ {
		shuffled := append([]types.Keyword(nil), records...)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})
		got := BuildLatestIndex(shuffled)[NaturalKey("A Corp", "kw", "", "")]
		if got.ID != want.ID {
			t.Fatalf("shuffle %d: selected %v, want %v", i, got.ID, want.ID)
		}
	}
}

func TestBuildLatestIndexKeepsDistinctKeys(t *testing.T) {
	a := kwAt(1, time.Now())
	b := kwAt(2, time.Now())
	b.Keyword = "other"
	latest := BuildLatestIndex([]types.Keyword{a, b})
	if len(latest) != 2 {
		t.Fatalf("distinct keys must both survive, got %d", len(latest))
	}
}

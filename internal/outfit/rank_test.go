package outfit

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/actuallystonmai/outfit-service/internal/domain"
)

func scored(scores ...float64) []ScoredOutfit {
	out := make([]ScoredOutfit, len(scores))
	for i, s := range scores {
		out[i] = ScoredOutfit{Items: Outfit{item(int64(i+1), "Topwear", "", "", "")}, Score: s}
	}
	return out
}

func primaryID(sel Selection) int64 {
	return sel.Primary.Items[0].ID
}

func alternateIDs(sel Selection) []int64 {
	var ids []int64
	for _, a := range sel.Alternates {
		ids = append(ids, a.Items[0].ID)
	}
	return ids
}

func TestRankSortsDescending(t *testing.T) {
	input := scored(0.1, 0.9, 0.5)
	ranked := Rank(input)
	assert.Equal(t, []float64{0.9, 0.5, 0.1}, []float64{ranked[0].Score, ranked[1].Score, ranked[2].Score})
	assert.Equal(t, 0.1, input[0].Score, "input untouched")
}

func TestFilterAnchored(t *testing.T) {
	outfits := []ScoredOutfit{
		{Items: Outfit{item(1, "Topwear", "", "", ""), item(2, "Bottomwear", "", "", "")}},
		{Items: Outfit{item(1, "Topwear", "", "", ""), item(3, "Bottomwear", "", "", "")}},
	}
	kept := FilterAnchored(outfits, AnchorSet{2: {}})
	require.Len(t, kept, 1)
	assert.Equal(t, []int64{1, 2}, kept[0].Items.IDs())

	assert.Len(t, FilterAnchored(outfits, nil), 2)
	assert.Empty(t, FilterAnchored(outfits, AnchorSet{2: {}, 3: {}}))
}

func TestSelectDeterministic(t *testing.T) {
	ranked := Rank(scored(0.9, 0.8, 0.7, 0.6, 0.5))
	sel, ok := Selector{Mode: ModeDeterministic, Window: 3}.Select(ranked, 0, nil)
	require.True(t, ok)
	assert.Equal(t, int64(1), primaryID(sel))
	assert.Equal(t, []int64{2, 3}, alternateIDs(sel))

	sel, ok = Selector{Mode: ModeDeterministic, Window: 3}.Select(ranked[:1], 0, nil)
	require.True(t, ok)
	assert.Empty(t, sel.Alternates)

	_, ok = Selector{Mode: ModeDeterministic, Window: 3}.Select(nil, 0, nil)
	assert.False(t, ok)
}

func TestSelectOffsetWraps(t *testing.T) {
	ranked := Rank(scored(0.9, 0.8, 0.7, 0.6, 0.5))
	s := Selector{Mode: ModeOffset, Window: 15}

	sel, ok := s.Select(ranked, 6, nil)
	require.True(t, ok)
	assert.Equal(t, int64(2), primaryID(sel))
	assert.Equal(t, []int64{3, 4}, alternateIDs(sel))
	assert.Equal(t, 5, sel.WindowSize)

	sel, _ = s.Select(ranked, 4, nil)
	assert.Equal(t, int64(5), primaryID(sel))
	assert.Equal(t, []int64{1, 2}, alternateIDs(sel))

	sel, _ = s.Select(ranked[:2], 1, nil)
	assert.Equal(t, int64(2), primaryID(sel))
	assert.Equal(t, []int64{1}, alternateIDs(sel), "no duplicates in a short window")
}

func TestSelectVariety(t *testing.T) {
	ranked := Rank(scored(0.9, 0.8, 0.7, 0.6, 0.5, 0.4, 0.3))
	s := Selector{Mode: ModeVariety, Window: 5}
	seen := make(map[int64]bool)
	for seed := int64(0); seed < 50; seed++ {
		sel, ok := s.Select(ranked, 0, rand.New(rand.NewSource(seed)))
		require.True(t, ok)
		p := primaryID(sel)
		assert.LessOrEqual(t, p, int64(5), "primary comes from the window")
		assert.Len(t, sel.Alternates, 4)
		assert.NotContains(t, alternateIDs(sel), p)
		seen[p] = true
	}
	assert.Greater(t, len(seen), 1, "variety mode should not always pick the same outfit")
}

func TestParseSelectionMode(t *testing.T) {
	m, err := ParseSelectionMode("variety")
	require.NoError(t, err)
	assert.Equal(t, ModeVariety, m)

	_, err = ParseSelectionMode("best")
	assert.Error(t, err)
}

func TestScoreAll(t *testing.T) {
	o := Outfit{
		domain.ClothingItem{ID: 1, Embedding: []float64{1, 0}},
		domain.ClothingItem{ID: 2, Embedding: []float64{1, 0}},
	}
	s := ScoreAll([]Outfit{o})
	require.Len(t, s, 1)
	assert.InDelta(t, 1.0, s[0].Score, 1e-12)
}

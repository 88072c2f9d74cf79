package outfit

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/actuallystonmai/outfit-service/internal/domain"
)

func newTestEngine(mode SelectionMode) *Engine {
	cfg := DefaultConfig()
	cfg.Mode = mode
	return NewEngine(cfg, zerolog.Nop())
}

func responseIDs(items []domain.ClothingItem) []int64 {
	return Outfit(items).IDs()
}

// closetABC is the three item closet used by the scenario tests:
// A and B are matching summer casual pieces, C a winter formal bottom.
func closetABC() []domain.ClothingItem {
	return []domain.ClothingItem{
		item(1, "Topwear", "Summer", "Casual", "Blue", 1, 0),
		item(2, "Bottomwear", "Summer", "Casual", "Blue", 1, 0),
		item(3, "Bottomwear", "Winter", "Formal", "Black", 0, 1),
	}
}

func recommend(t *testing.T, e *Engine, closet []domain.ClothingItem, raw Request, seed int64) *Result {
	t.Helper()
	req, err := Normalize(raw)
	require.NoError(t, err)
	return e.Recommend(closet, req, rand.New(rand.NewSource(seed)))
}

func TestRecommendPrunesSeasonConflict(t *testing.T) {
	res := recommend(t, newTestEngine(ModeDeterministic), closetABC(), Request{
		UserID:        "user-1",
		RequiredSlots: []string{"Top", "Bottom"},
	}, 1)

	assert.Equal(t, []int64{1, 2}, responseIDs(res.Response.Items))
	assert.Equal(t, 100, res.Response.HarmonyScore)
	assert.Empty(t, res.Response.Alternatives, "A+C is pruned by the summer/winter conflict")
	assert.Equal(t, 1, res.Stats.Assembled)
	assert.Contains(t, res.Response.SuggestionLogic, "any occasion")
}

func TestRecommendAnchorForcesPool(t *testing.T) {
	res := recommend(t, newTestEngine(ModeDeterministic), closetABC(), Request{
		UserID:        "user-1",
		AnchorIDs:     []int64{2},
		RequiredSlots: []string{"Top", "Bottom"},
		Constraints: domain.Constraints{
			Season:     []string{"Winter"},
			BaseColour: []string{"Black"},
		},
	}, 1)

	require.NotEmpty(t, res.Response.Items)
	assert.Contains(t, responseIDs(res.Response.Items), int64(2))
	assert.Equal(t, 1, res.Stats.Pools["Bottom"])
}

func TestRecommendColdWeatherSummerCloset(t *testing.T) {
	closet := []domain.ClothingItem{
		item(1, "Topwear", "Summer", "Casual", "Blue", 1, 0),
		item(2, "Bottomwear", "Summer", "Casual", "Blue", 1, 0),
	}
	res := recommend(t, newTestEngine(ModeDeterministic), closet, Request{
		UserID:      "user-1",
		Temperature: ptr(5.0),
	}, 1)

	assert.Empty(t, res.Response.Items)
	assert.NotNil(t, res.Response.Items)
	assert.Zero(t, res.Response.HarmonyScore)
	assert.Empty(t, res.Response.Alternatives)
	assert.Contains(t, res.Response.SuggestionLogic, "Top")
	assert.Contains(t, res.Response.SuggestionLogic, "Bottom")
}

// Weather-derived seasons never fall back to the whole category, whichever
// side of the year the closet is on.
func TestRecommendHotWeatherWinterCloset(t *testing.T) {
	closet := []domain.ClothingItem{
		item(1, "Topwear", "Winter", "Casual", "Grey", 1, 0),
		item(2, "Bottomwear", "Winter", "Casual", "Grey", 1, 0),
	}
	res := recommend(t, newTestEngine(ModeDeterministic), closet, Request{
		UserID:      "user-1",
		Temperature: ptr(30.0),
	}, 1)

	assert.Empty(t, res.Response.Items)
	assert.Zero(t, res.Stats.Pools["Top"])
	assert.Zero(t, res.Stats.Pools["Bottom"])
	assert.Contains(t, res.Response.SuggestionLogic, "No matching items for: Top, Bottom.")
}

func TestRecommendMissingAnchor(t *testing.T) {
	res := recommend(t, newTestEngine(ModeDeterministic), closetABC(), Request{
		UserID:    "user-1",
		AnchorIDs: []int64{99},
	}, 1)

	assert.Empty(t, res.Response.Items)
	assert.Contains(t, res.Response.SuggestionLogic, "99")
}

func TestRecommendAnchorInOptionalSlot(t *testing.T) {
	closet := append(closetABC(),
		item(4, "Footwear", "Summer", "Casual", "White", 1, 0),
		item(5, "Footwear", "Summer", "Casual", "Black", 0.5, 0.5),
	)
	res := recommend(t, newTestEngine(ModeDeterministic), closet, Request{
		UserID:    "user-1",
		AnchorIDs: []int64{5},
	}, 1)

	require.NotEmpty(t, res.Response.Items)
	assert.Contains(t, responseIDs(res.Response.Items), int64(5), "anchor category joins the layers")
	assert.NotContains(t, responseIDs(res.Response.Items), int64(4))
}

func TestRecommendOnePieceFromAnchor(t *testing.T) {
	closet := append(closetABC(),
		item(10, "Dress", "Summer", "Casual", "Red", 1, 0),
		item(11, "Footwear", "Summer", "Casual", "Red", 1, 0),
	)
	res := recommend(t, newTestEngine(ModeDeterministic), closet, Request{
		UserID:        "user-1",
		AnchorIDs:     []int64{10},
		RequiredSlots: []string{"Footwear"},
	}, 1)

	assert.Equal(t, []int64{10, 11}, responseIDs(res.Response.Items))
	assert.Equal(t, 100, res.Response.HarmonyScore)
}

// randomCloset builds a closet mixing conflicting seasons and usages.
func randomCloset(rng *rand.Rand, n int) []domain.ClothingItem {
	subs := []string{"Topwear", "Bottomwear", "Outerwear", "Footwear", "Accessory"}
	seasons := []string{"Summer", "Winter", "Spring", "Fall", "All Seasons", ""}
	usages := []string{"Casual", "Sports", "Formal"}
	colours := []string{"Blue", "Black", "White", "Red"}
	closet := make([]domain.ClothingItem, 0, n)
	for i := 0; i < n; i++ {
		closet = append(closet, item(int64(i+1),
			subs[rng.Intn(len(subs))],
			seasons[rng.Intn(len(seasons))],
			usages[rng.Intn(len(usages))],
			colours[rng.Intn(len(colours))],
			rng.Float64(), rng.Float64(), rng.Float64(),
		))
	}
	return closet
}

func allSuggestions(resp *domain.OutfitResponse) [][]domain.ClothingItem {
	out := [][]domain.ClothingItem{resp.Items}
	for _, alt := range resp.Alternatives {
		out = append(out, alt.Items)
	}
	return out
}

func TestRecommendNeverReturnsConflicts(t *testing.T) {
	slots := []string{"Top", "Bottom", "Outerwear", "Footwear", "Accessory"}
	for seed := int64(0); seed < 25; seed++ {
		closet := randomCloset(rand.New(rand.NewSource(seed)), 60)
		for _, mode := range []SelectionMode{ModeDeterministic, ModeOffset, ModeVariety} {
			res := recommend(t, newTestEngine(mode), closet, Request{UserID: "user-1", RequiredSlots: slots}, seed)
			for _, items := range allSuggestions(res.Response) {
				var hasSummer, hasWinter, hasSports, hasFormal bool
				for _, it := range items {
					hasSummer = hasSummer || it.Season == "Summer"
					hasWinter = hasWinter || it.Season == "Winter"
					hasSports = hasSports || it.Usage == "Sports"
					hasFormal = hasFormal || it.Usage == "Formal"
				}
				assert.False(t, hasSummer && hasWinter, "seed %d mode %s: %v", seed, mode, responseIDs(items))
				assert.False(t, hasSports && hasFormal, "seed %d mode %s: %v", seed, mode, responseIDs(items))
			}
		}
	}
}

func TestRecommendAlwaysContainsAnchors(t *testing.T) {
	for seed := int64(0); seed < 25; seed++ {
		rng := rand.New(rand.NewSource(seed))
		closet := randomCloset(rng, 40)
		var top, shoe int64
		for _, it := range closet {
			switch it.Category() {
			case domain.CategoryTop:
				top = it.ID
			case domain.CategoryFootwear:
				shoe = it.ID
			}
		}
		if top == 0 || shoe == 0 {
			continue
		}
		for _, mode := range []SelectionMode{ModeDeterministic, ModeOffset, ModeVariety} {
			res := recommend(t, newTestEngine(mode), closet, Request{
				UserID:        "user-1",
				AnchorIDs:     []int64{top, shoe},
				RequiredSlots: []string{"Top", "Bottom", "Accessory"},
				ResultOffset:  ptr(int(seed)),
			}, seed)
			if len(res.Response.Items) == 0 {
				continue
			}
			for _, items := range allSuggestions(res.Response) {
				assert.Subset(t, responseIDs(items), []int64{top, shoe}, fmt.Sprintf("seed %d mode %s", seed, mode))
			}
		}
	}
}

func TestRecommendPoolCaps(t *testing.T) {
	var closet []domain.ClothingItem
	for i := int64(1); i <= 30; i++ {
		closet = append(closet,
			item(i, "Topwear", "", "Casual", "Blue", 1, 0),
			item(100+i, "Bottomwear", "", "Casual", "Blue", 1, 0),
			item(200+i, "Footwear", "", "Casual", "Blue", 1, 0),
		)
	}
	res := recommend(t, newTestEngine(ModeDeterministic), closet, Request{
		UserID:        "user-1",
		RequiredSlots: []string{"Top", "Bottom", "Footwear"},
	}, 3)

	assert.Equal(t, 15, res.Stats.Pools["Top"])
	assert.Equal(t, 15, res.Stats.Pools["Bottom"])
	assert.Equal(t, 5, res.Stats.Pools["Footwear"])
	assert.Equal(t, 15*15*5, res.Stats.Assembled)
}

func TestRecommendDeterministicForSeed(t *testing.T) {
	closet := randomCloset(rand.New(rand.NewSource(42)), 80)
	raw := Request{UserID: "user-1", RequiredSlots: []string{"Top", "Bottom", "Footwear"}}
	e := newTestEngine(ModeVariety)
	a := recommend(t, e, closet, raw, 1234)
	b := recommend(t, e, closet, raw, 1234)
	assert.Equal(t, a.Response, b.Response)
}

func TestRecommendOffsetLogic(t *testing.T) {
	closet := []domain.ClothingItem{
		item(1, "Topwear", "All Seasons", "Casual", "Blue", 1, 0),
		item(2, "Topwear", "All Seasons", "Casual", "Red", 0, 1),
		item(3, "Bottomwear", "All Seasons", "Casual", "Blue", 1, 0),
		item(4, "Bottomwear", "All Seasons", "Casual", "Black", 1, 1),
	}
	res := recommend(t, newTestEngine(ModeOffset), closet, Request{
		UserID:        "user-1",
		ResultOffset:  ptr(1),
		Constraints:   domain.Constraints{Usage: []string{"Casual"}},
		RequiredSlots: []string{"Top", "Bottom"},
	}, 9)
	require.NotEmpty(t, res.Response.Items)
	assert.Equal(t, "Option 2 of 4 by visual harmony for Casual in any season", res.Response.SuggestionLogic)
	assert.Len(t, res.Response.Alternatives, 2)
}

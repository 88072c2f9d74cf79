package outfit

import "github.com/actuallystonmai/outfit-service/internal/domain"

// RelaxStep records which step of the fallback chain produced a pool.
type RelaxStep int

const (
	StepEmpty RelaxStep = iota
	StepAnchor
	StepStrict
	StepAnyColour
	StepAdjacentSeason
	StepCategoryFallback
)

func (s RelaxStep) String() string {
	switch s {
	case StepEmpty:
		return "empty"
	case StepAnchor:
		return "anchor"
	case StepStrict:
		return "strict"
	case StepAnyColour:
		return "any_colour"
	case StepAdjacentSeason:
		return "adjacent_season"
	case StepCategoryFallback:
		return "category_fallback"
	}
	return "unknown"
}

type PoolQuery struct {
	Category domain.Category
	Usage    []string
	Seasons  []string
	Colours  []string

	// Mandatory pools fall back to the whole category when every
	// constraint-based step comes up empty.
	Mandatory bool

	// NoFallback disables the final category fallback, used when the
	// seasons were derived from the weather.
	NoFallback bool
}

// BuildPool selects the candidates for one category, relaxing constraints
// step by step and stopping at the first non-empty result. anchors are the
// anchor items belonging to q.Category; when present they are the pool.
func BuildPool(closet, anchors []domain.ClothingItem, q PoolQuery) ([]domain.ClothingItem, RelaxStep) {
	if len(anchors) > 0 {
		return anchors, StepAnchor
	}

	usable := filterItems(closet, func(it domain.ClothingItem) bool {
		return it.Category() == q.Category && domain.MatchesAny(q.Usage, it.Usage)
	})
	if len(usable) == 0 {
		return nil, StepEmpty
	}

	if pool := filterItems(usable, func(it domain.ClothingItem) bool {
		return domain.MatchesSeason(q.Seasons, it.Season) && domain.MatchesAny(q.Colours, it.BaseColour)
	}); len(pool) > 0 {
		return pool, StepStrict
	}

	if pool := filterItems(usable, func(it domain.ClothingItem) bool {
		return domain.MatchesSeason(q.Seasons, it.Season)
	}); len(pool) > 0 {
		return pool, StepAnyColour
	}

	if pool := filterItems(usable, func(it domain.ClothingItem) bool {
		return domain.MatchesSeason(q.Seasons, it.Season) || domain.SeasonAdjacent(it.Season, q.Seasons)
	}); len(pool) > 0 {
		return pool, StepAdjacentSeason
	}

	if q.Mandatory && !q.NoFallback {
		return usable, StepCategoryFallback
	}
	return nil, StepEmpty
}

func filterItems(items []domain.ClothingItem, keep func(domain.ClothingItem) bool) []domain.ClothingItem {
	var out []domain.ClothingItem
	for _, it := range items {
		if keep(it) {
			out = append(out, it)
		}
	}
	return out
}

// Sample caps a pool for the cross product. Anchor items are always kept
// and placed first; the rest are shuffled and truncated so the pool never
// exceeds limit unless anchors alone do.
func Sample(pool []domain.ClothingItem, anchors AnchorSet, limit int, rng Rand) []domain.ClothingItem {
	kept := make([]domain.ClothingItem, 0, len(pool))
	rest := make([]domain.ClothingItem, 0, len(pool))
	for _, it := range pool {
		if anchors.Has(it.ID) {
			kept = append(kept, it)
		} else {
			rest = append(rest, it)
		}
	}

	rng.Shuffle(len(rest), func(i, j int) { rest[i], rest[j] = rest[j], rest[i] })

	room := limit - len(kept)
	if room < 0 {
		room = 0
	}
	if len(rest) > room {
		rest = rest[:room]
	}
	return append(kept, rest...)
}

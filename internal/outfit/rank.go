package outfit

import (
	"fmt"
	"sort"
)

type ScoredOutfit struct {
	Items Outfit
	Score float64
}

// SelectionMode is the deployment-wide policy for picking the returned outfit.
type SelectionMode string

const (
	ModeDeterministic SelectionMode = "deterministic"
	ModeOffset        SelectionMode = "offset"
	ModeVariety       SelectionMode = "variety"
)

func ParseSelectionMode(s string) (SelectionMode, error) {
	switch m := SelectionMode(s); m {
	case ModeDeterministic, ModeOffset, ModeVariety:
		return m, nil
	}
	return "", fmt.Errorf("unknown selection mode %q", s)
}

// ScoreAll attaches a harmony score to every outfit.
func ScoreAll(outfits []Outfit) []ScoredOutfit {
	scored := make([]ScoredOutfit, 0, len(outfits))
	for _, o := range outfits {
		scored = append(scored, ScoredOutfit{Items: o, Score: Harmony(o)})
	}
	return scored
}

// FilterAnchored drops every outfit missing one of the anchor ids.
func FilterAnchored(outfits []ScoredOutfit, anchors AnchorSet) []ScoredOutfit {
	if len(anchors) == 0 {
		return outfits
	}
	kept := make([]ScoredOutfit, 0, len(outfits))
	for _, o := range outfits {
		if containsAll(o.Items, anchors) {
			kept = append(kept, o)
		}
	}
	return kept
}

func containsAll(o Outfit, anchors AnchorSet) bool {
	present := make(map[int64]struct{}, len(o))
	for _, it := range o {
		present[it.ID] = struct{}{}
	}
	for id := range anchors {
		if _, ok := present[id]; !ok {
			return false
		}
	}
	return true
}

// Rank sorts a copy of the outfits by descending score.
func Rank(outfits []ScoredOutfit) []ScoredOutfit {
	ranked := make([]ScoredOutfit, len(outfits))
	copy(ranked, outfits)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}

// Selector picks the primary outfit and alternates from a ranked list.
type Selector struct {
	Mode   SelectionMode
	Window int
}

type Selection struct {
	Primary    ScoredOutfit
	Alternates []ScoredOutfit
	// Position is the primary's rank within the window, zero based.
	Position   int
	WindowSize int
}

// Select returns false when ranked is empty.
func (s Selector) Select(ranked []ScoredOutfit, offset int, rng Rand) (Selection, bool) {
	if len(ranked) == 0 {
		return Selection{}, false
	}
	size := s.Window
	if size <= 0 || size > len(ranked) {
		size = len(ranked)
	}
	window := ranked[:size]

	var idx int
	switch s.Mode {
	case ModeOffset:
		idx = offset % size
	case ModeVariety:
		idx = rng.Intn(size)
	case ModeDeterministic:
		idx = 0
	default:
		idx = 0
	}

	sel := Selection{Primary: window[idx], Position: idx, WindowSize: size}
	switch s.Mode {
	case ModeVariety:
		for i, o := range window {
			if i != idx {
				sel.Alternates = append(sel.Alternates, o)
			}
		}
	case ModeOffset:
		for k := 1; k <= 2 && k < size; k++ {
			sel.Alternates = append(sel.Alternates, window[(idx+k)%size])
		}
	case ModeDeterministic:
		sel.Alternates = append(sel.Alternates, window[1:min(size, 3)]...)
	default:
		sel.Alternates = append(sel.Alternates, window[1:min(size, 3)]...)
	}
	return sel, true
}

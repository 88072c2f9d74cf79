package outfit

import (
	"strings"

	"github.com/actuallystonmai/outfit-service/internal/domain"
)

// Compatibility prunes internally inconsistent outfits. Each rule only
// applies when the caller left the matching dimension unconstrained.
type Compatibility struct {
	CheckSeason bool
	CheckUsage  bool

	// Anchors never conflict with anything; the caller asked for them.
	Anchors AnchorSet
}

// NewCompatibility builds the checker for a normalized request.
func NewCompatibility(req *NormalizedRequest) Compatibility {
	return Compatibility{
		CheckSeason: req.SeasonSource == SeasonSourceNone,
		CheckUsage:  len(req.Constraints.Usage) == 0,
		Anchors:     req.Anchors,
	}
}

// Compatible is the stateless form of the check, without anchor exemptions.
func Compatible(existing []domain.ClothingItem, candidate domain.ClothingItem, seasons, usage []string) bool {
	c := Compatibility{CheckSeason: len(seasons) == 0, CheckUsage: len(usage) == 0}
	return c.Allows(existing, candidate)
}

// Allows reports whether candidate can join the existing items.
func (c Compatibility) Allows(existing []domain.ClothingItem, candidate domain.ClothingItem) bool {
	for _, it := range existing {
		if c.conflicts(it, candidate) {
			return false
		}
	}
	return true
}

func (c Compatibility) conflicts(a, b domain.ClothingItem) bool {
	if c.Anchors.Has(a.ID) || c.Anchors.Has(b.ID) {
		return false
	}
	if c.CheckSeason && seasonsClash(a.Season, b.Season) {
		return true
	}
	if c.CheckUsage && usagesClash(a.Usage, b.Usage) {
		return true
	}
	return false
}

func seasonsClash(a, b string) bool {
	a, b = domain.NormalizeSeason(a), domain.NormalizeSeason(b)
	return (a == domain.SeasonSummer && b == domain.SeasonWinter) ||
		(a == domain.SeasonWinter && b == domain.SeasonSummer)
}

func usagesClash(a, b string) bool {
	a, b = strings.ToLower(strings.TrimSpace(a)), strings.ToLower(strings.TrimSpace(b))
	return (a == "sports" && b == "formal") || (a == "formal" && b == "sports")
}

package outfit

import "github.com/actuallystonmai/outfit-service/internal/domain"

// Outfit is an ordered set of items, at most one per slot.
type Outfit []domain.ClothingItem

// IDs returns the item ids in outfit order.
func (o Outfit) IDs() []int64 {
	ids := make([]int64, len(o))
	for i, it := range o {
		ids[i] = it.ID
	}
	return ids
}

// Pools maps each category to its sampled candidates.
type Pools map[domain.Category][]domain.ClothingItem

var (
	onePieceOrder = []domain.Category{domain.CategoryDress, domain.CategoryJumpsuit, domain.CategorySet}
	layerOrder    = []domain.Category{domain.CategoryOuterwear, domain.CategoryFootwear, domain.CategoryAccessory}
)

// Plan describes the outfit shape for a set of slots.
type Plan struct {
	// OnePiece is the one-piece base category, or CategoryUnknown in separates mode.
	OnePiece  domain.Category
	Separates bool
	Layers    []domain.Category
}

// Categories returns every category the plan draws from.
func (p Plan) Categories() []domain.Category {
	var cats []domain.Category
	switch {
	case p.OnePiece != domain.CategoryUnknown:
		cats = append(cats, p.OnePiece)
	case p.Separates:
		cats = append(cats, domain.CategoryTop, domain.CategoryBottom)
	}
	return append(cats, p.Layers...)
}

// PlanFor picks the base mode and layers. One-piece categories take
// priority over separates in the order Dress, Jumpsuit, Set.
func PlanFor(slots SlotSet) Plan {
	var p Plan
	for _, c := range onePieceOrder {
		if slots.Has(c) {
			p.OnePiece = c
			break
		}
	}
	if p.OnePiece == domain.CategoryUnknown {
		p.Separates = slots.Has(domain.CategoryTop) || slots.Has(domain.CategoryBottom)
	}
	for _, c := range layerOrder {
		if slots.Has(c) {
			p.Layers = append(p.Layers, c)
		}
	}
	return p
}

// Assemble builds the base outfits for the plan and layers the optional
// slots on top. accessoryCap bounds how many accessories are crossed in.
func Assemble(plan Plan, pools Pools, compat Compatibility, accessoryCap int) []Outfit {
	outfits := baseOutfits(plan, pools, compat)
	for _, cat := range plan.Layers {
		pool := pools[cat]
		if cat == domain.CategoryAccessory && len(pool) > accessoryCap {
			pool = pool[:accessoryCap]
		}
		if len(pool) == 0 {
			continue
		}
		if layered := Layer(outfits, pool, compat.Allows); len(layered) > 0 {
			outfits = layered
		}
	}
	return outfits
}

func baseOutfits(plan Plan, pools Pools, compat Compatibility) []Outfit {
	switch {
	case plan.OnePiece != domain.CategoryUnknown:
		pool := pools[plan.OnePiece]
		outfits := make([]Outfit, 0, len(pool))
		for _, it := range pool {
			outfits = append(outfits, Outfit{it})
		}
		return outfits
	case plan.Separates:
		tops, bottoms := pools[domain.CategoryTop], pools[domain.CategoryBottom]
		outfits := make([]Outfit, 0, len(tops)*len(bottoms))
		for _, top := range tops {
			for _, bottom := range bottoms {
				if compat.Allows(Outfit{top}, bottom) {
					outfits = append(outfits, Outfit{top, bottom})
				}
			}
		}
		return outfits
	default:
		// layer-only request: start from a single empty outfit
		return []Outfit{{}}
	}
}

// Layer crosses every outfit with every pool item that allow accepts,
// returning a new collection. The inputs are never modified.
func Layer(outfits []Outfit, pool []domain.ClothingItem, allow func([]domain.ClothingItem, domain.ClothingItem) bool) []Outfit {
	next := make([]Outfit, 0, len(outfits)*len(pool))
	for _, o := range outfits {
		for _, it := range pool {
			if !allow(o, it) {
				continue
			}
			grown := make(Outfit, len(o), len(o)+1)
			copy(grown, o)
			next = append(next, append(grown, it))
		}
	}
	return next
}

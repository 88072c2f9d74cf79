// Package outfit assembles, scores and ranks outfits from a user's closet.
//
// A request flows through a fixed pipeline: constraint-relaxing pool
// construction per slot, pool sampling, base outfit assembly with optional
// layers, harmony scoring, anchor validation and finally selection of a
// primary outfit plus alternates. The engine holds no per-request state;
// all randomness comes from the Rand passed to Recommend.
package outfit

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/actuallystonmai/outfit-service/internal/domain"
)

const alternativeLogic = "Great alternative based on your closet."

type Config struct {
	Mode              SelectionMode
	BasePoolCap       int
	AddonPoolCap      int
	AccessoryLayerCap int

	DeterministicWindow int
	OffsetWindow        int
	VarietyWindow       int
}

func DefaultConfig() Config {
	return Config{
		Mode:                ModeDeterministic,
		BasePoolCap:         15,
		AddonPoolCap:        5,
		AccessoryLayerCap:   3,
		DeterministicWindow: 3,
		OffsetWindow:        15,
		VarietyWindow:       5,
	}
}

func (c Config) window() int {
	switch c.Mode {
	case ModeOffset:
		return c.OffsetWindow
	case ModeVariety:
		return c.VarietyWindow
	case ModeDeterministic:
		return c.DeterministicWindow
	}
	return c.DeterministicWindow
}

type Engine struct {
	cfg    Config
	logger zerolog.Logger
}

//nolint:gocritic // zerolog loggers are passed by value
func NewEngine(cfg Config, logger zerolog.Logger) *Engine {
	return &Engine{
		cfg:    cfg,
		logger: logger.With().Str("component", "outfit").Logger(),
	}
}

func (e *Engine) Mode() SelectionMode {
	return e.cfg.Mode
}

// Stats summarises one run for logging and metrics.
type Stats struct {
	Assembled int
	Valid     int
	Pools     map[string]int
}

type Result struct {
	Response *domain.OutfitResponse
	Stats    Stats
}

// Recommend runs the pipeline over an already fetched closet.
func (e *Engine) Recommend(closet []domain.ClothingItem, req *NormalizedRequest, rng Rand) *Result {
	anchorsByCat, missing := groupAnchors(closet, req.Anchors)

	slots := make(SlotSet, len(req.Slots)+len(anchorsByCat))
	for c := range req.Slots {
		slots[c] = struct{}{}
	}
	for c := range anchorsByCat {
		slots[c] = struct{}{}
	}
	plan := PlanFor(slots)

	pools := make(Pools)
	stats := Stats{Pools: make(map[string]int)}
	var emptyPools []string
	for _, cat := range plan.Categories() {
		raw, step := BuildPool(closet, anchorsByCat[cat], PoolQuery{
			Category:   cat,
			Usage:      req.Constraints.Usage,
			Seasons:    req.Seasons,
			Colours:    req.Constraints.BaseColour,
			Mandatory:  cat == domain.CategoryTop || cat == domain.CategoryBottom || req.Slots.Has(cat),
			NoFallback: req.SeasonSource == SeasonSourceWeather,
		})
		limit := e.cfg.AddonPoolCap
		if cat.IsBase() {
			limit = e.cfg.BasePoolCap
		}
		pools[cat] = Sample(raw, req.Anchors, limit, rng)
		stats.Pools[cat.String()] = len(pools[cat])
		if len(raw) == 0 {
			emptyPools = append(emptyPools, cat.String())
		}

		e.logger.Debug().
			Str("user_id", req.UserID).
			Str("category", cat.String()).
			Str("step", step.String()).
			Int("raw", len(raw)).
			Int("sampled", len(pools[cat])).
			Msg("built pool")
	}

	outfits := Assemble(plan, pools, NewCompatibility(req), e.cfg.AccessoryLayerCap)
	outfits = dropEmpty(outfits)
	stats.Assembled = len(outfits)

	valid := FilterAnchored(ScoreAll(outfits), req.Anchors)
	stats.Valid = len(valid)

	selector := Selector{Mode: e.cfg.Mode, Window: e.cfg.window()}
	sel, ok := selector.Select(Rank(valid), req.Offset, rng)
	if !ok {
		return &Result{
			Response: domain.EmptyOutfitResponse(noOutfitLogic(missing, emptyPools, req.Anchors)),
			Stats:    stats,
		}
	}

	resp := &domain.OutfitResponse{
		Items:           []domain.ClothingItem(sel.Primary.Items),
		HarmonyScore:    HarmonyPercent(sel.Primary.Score),
		SuggestionLogic: e.suggestionLogic(sel, req),
		Alternatives:    make([]domain.OutfitSuggestion, 0, len(sel.Alternates)),
	}
	for _, alt := range sel.Alternates {
		resp.Alternatives = append(resp.Alternatives, domain.OutfitSuggestion{
			Items:           []domain.ClothingItem(alt.Items),
			HarmonyScore:    HarmonyPercent(alt.Score),
			SuggestionLogic: alternativeLogic,
		})
	}
	return &Result{Response: resp, Stats: stats}
}

// groupAnchors finds the closet items behind the anchor ids, keyed by
// category, and reports ids that are not in the closet.
func groupAnchors(closet []domain.ClothingItem, anchors AnchorSet) (map[domain.Category][]domain.ClothingItem, []int64) {
	byCat := make(map[domain.Category][]domain.ClothingItem)
	found := make(map[int64]bool, len(anchors))
	for _, it := range closet {
		if !anchors.Has(it.ID) {
			continue
		}
		found[it.ID] = true
		if cat := it.Category(); cat != domain.CategoryUnknown {
			byCat[cat] = append(byCat[cat], it)
		}
	}
	var missing []int64
	for _, id := range anchors.IDs() {
		if !found[id] {
			missing = append(missing, id)
		}
	}
	return byCat, missing
}

func dropEmpty(outfits []Outfit) []Outfit {
	kept := outfits[:0:0]
	for _, o := range outfits {
		if len(o) > 0 {
			kept = append(kept, o)
		}
	}
	return kept
}

func (e *Engine) suggestionLogic(sel Selection, req *NormalizedRequest) string {
	scope := describeRequest(req)
	switch e.cfg.Mode {
	case ModeOffset:
		return fmt.Sprintf("Option %d of %d by visual harmony for %s", sel.Position+1, sel.WindowSize, scope)
	case ModeVariety:
		return fmt.Sprintf("Fresh pick from your top %d matches for %s", sel.WindowSize, scope)
	case ModeDeterministic:
		return "High visual match for " + scope
	}
	return "High visual match for " + scope
}

func describeRequest(req *NormalizedRequest) string {
	usage := "any occasion"
	if len(req.Constraints.Usage) > 0 {
		usage = strings.Join(req.Constraints.Usage, "/")
	}
	seasons := "any season"
	if len(req.Seasons) > 0 {
		seasons = strings.Join(req.Seasons, "/")
	}
	if req.SeasonSource == SeasonSourceWeather && req.Temperature != nil {
		seasons = fmt.Sprintf("%s (%.0f°C)", seasons, *req.Temperature)
	}
	return usage + " in " + seasons
}

func noOutfitLogic(missing []int64, emptyPools []string, anchors AnchorSet) string {
	var parts []string
	if len(missing) > 0 {
		parts = append(parts, fmt.Sprintf("Anchor item(s) %s not found in closet.", joinIDs(missing)))
	}
	if len(emptyPools) > 0 {
		parts = append(parts, fmt.Sprintf("No matching items for: %s.", strings.Join(emptyPools, ", ")))
	}
	if len(parts) == 0 && len(anchors) > 0 {
		parts = append(parts, fmt.Sprintf("No compatible outfit includes anchor item(s) %s.", joinIDs(anchors.IDs())))
	}
	if len(parts) == 0 {
		return "No valid outfits found matching constraints."
	}
	return "No valid outfits found. " + strings.Join(parts, " ")
}

func joinIDs(ids []int64) string {
	s := make([]string, len(ids))
	for i, id := range ids {
		s[i] = fmt.Sprint(id)
	}
	return strings.Join(s, ", ")
}

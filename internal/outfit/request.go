package outfit

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/actuallystonmai/outfit-service/internal/domain"
)

// Rand is the randomness consumed by sampling and variety selection.
// *math/rand.Rand satisfies it; it is never shared between requests.
type Rand interface {
	Intn(n int) int
	Shuffle(n int, swap func(i, j int))
}

type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Msg)
}

func IsValidationError(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

// Request is the raw recommendation request as it arrives from a client.
type Request struct {
	UserID        string
	AnchorID      *int64
	AnchorIDs     []int64
	Temperature   *float64
	ResultOffset  *int
	Constraints   domain.Constraints
	RequiredSlots []string
}

type SeasonSource int

const (
	SeasonSourceNone SeasonSource = iota
	SeasonSourceConstraint
	SeasonSourceWeather
)

// AnchorSet holds item ids that every returned outfit must contain.
type AnchorSet map[int64]struct{}

func (a AnchorSet) Has(id int64) bool {
	_, ok := a[id]
	return ok
}

// IDs returns the anchor ids in ascending order.
func (a AnchorSet) IDs() []int64 {
	ids := make([]int64, 0, len(a))
	for id := range a {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// SlotSet is the set of categories the caller wants populated.
type SlotSet map[domain.Category]struct{}

func (s SlotSet) Has(c domain.Category) bool {
	_, ok := s[c]
	return ok
}

// Sorted returns the slots in taxonomy order.
func (s SlotSet) Sorted() []domain.Category {
	out := make([]domain.Category, 0, len(s))
	for _, c := range domain.Categories {
		if s.Has(c) {
			out = append(out, c)
		}
	}
	return out
}

type NormalizedRequest struct {
	UserID       string
	Anchors      AnchorSet
	Slots        SlotSet
	Constraints  domain.Constraints
	Seasons      []string
	SeasonSource SeasonSource
	Temperature  *float64
	Offset       int
}

// Normalize validates a raw request and resolves its defaults: a single
// anchor set, the default Top+Bottom slots and the effective seasons.
func Normalize(req Request) (*NormalizedRequest, error) {
	userID := strings.TrimSpace(req.UserID)
	if userID == "" {
		return nil, &ValidationError{Field: "user_id", Msg: "is required"}
	}

	offset := 0
	if req.ResultOffset != nil {
		if *req.ResultOffset < 0 {
			return nil, &ValidationError{Field: "result_offset", Msg: "must not be negative"}
		}
		offset = *req.ResultOffset
	}

	anchors := make(AnchorSet, len(req.AnchorIDs)+1)
	if req.AnchorID != nil {
		anchors[*req.AnchorID] = struct{}{}
	}
	for _, id := range req.AnchorIDs {
		anchors[id] = struct{}{}
	}

	slots := make(SlotSet, len(req.RequiredSlots))
	for _, name := range req.RequiredSlots {
		cat := domain.ParseCategory(name)
		if cat == domain.CategoryUnknown {
			return nil, &ValidationError{Field: "required_slots", Msg: fmt.Sprintf("unknown slot %q", name)}
		}
		slots[cat] = struct{}{}
	}
	if len(slots) == 0 {
		slots[domain.CategoryTop] = struct{}{}
		slots[domain.CategoryBottom] = struct{}{}
	}

	seasons, source := effectiveSeasons(req.Constraints.Season, req.Temperature)

	return &NormalizedRequest{
		UserID:       userID,
		Anchors:      anchors,
		Slots:        slots,
		Constraints:  req.Constraints,
		Seasons:      seasons,
		SeasonSource: source,
		Temperature:  req.Temperature,
		Offset:       offset,
	}, nil
}

func effectiveSeasons(constraint []string, temperature *float64) ([]string, SeasonSource) {
	if len(constraint) > 0 {
		if domain.SeasonUnrestricted(constraint) {
			return nil, SeasonSourceConstraint
		}
		out := make([]string, 0, len(constraint))
		for _, s := range constraint {
			out = append(out, domain.NormalizeSeason(s))
		}
		return out, SeasonSourceConstraint
	}
	if temperature != nil {
		return domain.SeasonsForTemperature(*temperature), SeasonSourceWeather
	}
	return nil, SeasonSourceNone
}

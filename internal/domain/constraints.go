package domain

import "strings"

// Constraints restricts the closet along three independent dimensions.
// An empty slice places no restriction on that dimension.
type Constraints struct {
	Usage      []string `json:"usage,omitempty"`
	Season     []string `json:"season,omitempty"`
	BaseColour []string `json:"baseColour,omitempty"`
}

// MatchesAny reports whether value is accepted by the set: an empty set
// accepts everything, otherwise a case-insensitive member must match.
func MatchesAny(set []string, value string) bool {
	if len(set) == 0 {
		return true
	}
	v := strings.TrimSpace(value)
	for _, s := range set {
		if strings.EqualFold(strings.TrimSpace(s), v) {
			return true
		}
	}
	return false
}

// SeasonUnrestricted reports whether a season constraint is empty or
// explicitly asks for every season.
func SeasonUnrestricted(seasons []string) bool {
	if len(seasons) == 0 {
		return true
	}
	for _, s := range seasons {
		if NormalizeSeason(s) == SeasonAllSeasons {
			return true
		}
	}
	return false
}

// MatchesSeason is MatchesAny with season name normalisation applied to both sides.
func MatchesSeason(seasons []string, itemSeason string) bool {
	if SeasonUnrestricted(seasons) {
		return true
	}
	item := NormalizeSeason(itemSeason)
	for _, s := range seasons {
		if NormalizeSeason(s) == item {
			return true
		}
	}
	return false
}

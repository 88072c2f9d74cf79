package domain

import "strings"

const (
	SeasonSummer     = "Summer"
	SeasonSpring     = "Spring"
	SeasonFall       = "Fall"
	SeasonWinter     = "Winter"
	SeasonAllSeasons = "All Seasons"
)

// NormalizeSeason maps free-form season tags onto the canonical names.
// Unknown values are returned trimmed but otherwise untouched.
func NormalizeSeason(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "summer":
		return SeasonSummer
	case "spring":
		return SeasonSpring
	case "fall", "autumn":
		return SeasonFall
	case "winter":
		return SeasonWinter
	case "all seasons", "all season", "all":
		return SeasonAllSeasons
	}
	return strings.TrimSpace(s)
}

// IsSeasonless reports whether an item tag fits any season.
func IsSeasonless(s string) bool {
	n := NormalizeSeason(s)
	return n == "" || n == SeasonAllSeasons
}

// SeasonsForTemperature derives the seasons that suit an ambient temperature in °C.
func SeasonsForTemperature(celsius float64) []string {
	switch {
	case celsius >= 25:
		return []string{SeasonSummer}
	case celsius >= 20:
		return []string{SeasonSummer, SeasonSpring}
	case celsius >= 15:
		return []string{SeasonSpring, SeasonFall}
	case celsius >= 10:
		return []string{SeasonFall, SeasonWinter}
	default:
		return []string{SeasonWinter}
	}
}

// seasonNeighbours is the fallback adjacency used when no item matches the
// requested seasons exactly. Spring and Winter are deliberately not neighbours.
var seasonNeighbours = map[string][]string{
	SeasonWinter: {SeasonFall},
	SeasonSpring: {SeasonSummer, SeasonFall},
	SeasonSummer: {SeasonSpring, SeasonFall},
	SeasonFall:   {SeasonSummer, SeasonWinter, SeasonSpring},
}

// SeasonAdjacent reports whether an item tagged itemSeason can stand in for
// any of the requested seasons.
func SeasonAdjacent(itemSeason string, requested []string) bool {
	if IsSeasonless(itemSeason) {
		return true
	}
	item := NormalizeSeason(itemSeason)
	for _, r := range requested {
		want := NormalizeSeason(r)
		if want == item || want == SeasonAllSeasons {
			return true
		}
		for _, n := range seasonNeighbours[want] {
			if n == item {
				return true
			}
		}
	}
	return false
}

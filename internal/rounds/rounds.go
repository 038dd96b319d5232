package rounds

import (
	"fmt"
	"slices"
	"time"

	"footy-tipping/internal/domain"
)

// Finals and opening rounds carry a name instead of a number.
const (
	OpeningRound      = 0
	WildcardRound     = 25
	FinalsWeekOne     = 26
	SemiFinals        = 27
	PreliminaryFinals = 28
	GrandFinal        = 29
)

// UpcomingWindow is how far ahead Current looks for the next match.
const UpcomingWindow = 7 * 24 * time.Hour

func Label(round int) string {
	switch round {
	case OpeningRound:
		return "Opening Round"
	case WildcardRound:
		return "Wildcard Round"
	case FinalsWeekOne:
		return "Finals Week 1"
	case SemiFinals:
		return "Semi Finals"
	case PreliminaryFinals:
		return "Preliminary Finals"
	case GrandFinal:
		return "Grand Final"
	default:
		return fmt.Sprintf("Round %d", round)
	}
}

// Current picks the round to tip: the round of the earliest match starting
// in the next week, otherwise the latest round of the season, otherwise 1.
// The fallback of 1 applies only to a season with no matches. A season that
// has only played its opening round returns OpeningRound, not 1.
func Current(matches []domain.Match, now time.Time) int {
	var next *domain.Match
	horizon := now.Add(UpcomingWindow)
	for i := range matches {
		m := &matches[i]
		if m.StartsAt.Before(now) || m.StartsAt.After(horizon) {
			continue
		}
		if next == nil || m.StartsAt.Before(next.StartsAt) {
			next = m
		}
	}
	if next != nil {
		return next.Round
	}

	if len(matches) == 0 {
		return 1
	}
	latest := matches[0].Round
	for _, m := range matches[1:] {
		latest = max(latest, m.Round)
	}
	return latest
}

// IsLocked reports whether tipping has closed for a round, which happens
// as soon as any of its matches has started.
func IsLocked(roundMatches []domain.Match, now time.Time) bool {
	for _, m := range roundMatches {
		if !m.StartsAt.IsZero() && !m.StartsAt.After(now) {
			return true
		}
	}
	return false
}

func Group(matches []domain.Match) map[int][]domain.Match {
	grouped := make(map[int][]domain.Match)
	for _, m := range matches {
		grouped[m.Round] = append(grouped[m.Round], m)
	}
	return grouped
}

// Numbers returns the distinct rounds present, ascending.
func Numbers(matches []domain.Match) []int {
	seen := make(map[int]struct{})
	var out []int
	for _, m := range matches {
		if _, ok := seen[m.Round]; ok {
			continue
		}
		seen[m.Round] = struct{}{}
		out = append(out, m.Round)
	}
	slices.Sort(out)
	return out
}

func Filter(matches []domain.Match, round int) []domain.Match {
	var out []domain.Match
	for _, m := range matches {
		if m.Round == round {
			out = append(out, m)
		}
	}
	return out
}

// Package streaks computes streaks, success rates and achievements over a
// snapshot of habits. Every function is pure and total: malformed completion
// dates are ignored, never reported.
package streaks

import (
	"sort"
	"time"

	"github.com/comitanigiacomo/kanso-habits/internal/core/domain"
)

// MaxStreakWalk bounds the backward walk of CurrentStreak.
const MaxStreakWalk = 1000

type daySet map[string]struct{}

func (s daySet) has(day time.Time) bool {
	_, ok := s[domain.FormatDay(day)]
	return ok
}

// newDaySet keys every parseable date by its canonical day in loc.
func newDaySet(dates []string, loc *time.Location) daySet {
	set := make(daySet, len(dates))
	for _, raw := range dates {
		day, ok := domain.ParseDay(raw, loc)
		if !ok {
			continue
		}
		set[domain.FormatDay(day)] = struct{}{}
	}
	return set
}

// CurrentStreak counts consecutive completed days ending today.
// A streak that does not include today is 0.
func CurrentStreak(dates []string, today time.Time) int {
	day := domain.StartOfDay(today)
	return walkBack(newDaySet(dates, day.Location()), day)
}

func walkBack(set daySet, day time.Time) int {
	streak := 0
	for i := 0; i < MaxStreakWalk; i++ {
		if !set.has(day) {
			break
		}
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}

// BestStreak returns the longest run of consecutive days anywhere in the history.
func BestStreak(dates []string, loc *time.Location) int {
	if loc == nil {
		loc = time.UTC
	}
	return bestRun(newDaySet(dates, loc), loc)
}

func bestRun(set daySet, loc *time.Location) int {
	if len(set) == 0 {
		return 0
	}

	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	longest, run := 1, 1
	prev, _ := time.ParseInLocation(domain.DayLayout, keys[0], loc)

	for _, k := range keys[1:] {
		day, _ := time.ParseInLocation(domain.DayLayout, k, loc)
		if domain.FormatDay(prev.AddDate(0, 0, 1)) == k {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
		prev = day
	}

	return longest
}

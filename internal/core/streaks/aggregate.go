package streaks

import (
	"math"
	"time"

	"github.com/comitanigiacomo/kanso-habits/internal/core/domain"
)

const (
	// WindowDays is the length of the success-rate window, today included.
	WindowDays = 30

	expectedDaily  = 30
	expectedWeekly = 4
)

// ExpectedCompletions is the success-rate denominator of one habit.
// Unknown frequencies count as daily.
func ExpectedCompletions(frequency string) int {
	if frequency == domain.FrequencyWeekly {
		return expectedWeekly
	}
	return expectedDaily
}

// LongestActiveStreak is the best current streak across habits. A run that
// ended before today contributes 0.
func LongestActiveStreak(habits []*domain.Habit, today time.Time) int {
	day := domain.StartOfDay(today)

	longest := 0
	for _, h := range habits {
		if h == nil {
			continue
		}
		if s := walkBack(newDaySet(h.CompletedDates, day.Location()), day); s > longest {
			longest = s
		}
	}
	return longest
}

// SuccessRate compares completions in the trailing window against the
// expected completions of every habit, as a rounded percentage capped at 100.
func SuccessRate(habits []*domain.Habit, today time.Time) int {
	day := domain.StartOfDay(today)

	completions, expected := 0, 0
	for _, h := range habits {
		if h == nil {
			continue
		}
		completions += completionsInWindow(newDaySet(h.CompletedDates, day.Location()), day)
		expected += ExpectedCompletions(h.Frequency)
	}

	return rate(completions, expected)
}

func completionsInWindow(set daySet, today time.Time) int {
	count := 0
	day := today.AddDate(0, 0, -(WindowDays - 1))
	for i := 0; i < WindowDays; i++ {
		if set.has(day) {
			count++
		}
		day = day.AddDate(0, 0, 1)
	}
	return count
}

func rate(completions, expected int) int {
	if expected == 0 {
		return 0
	}
	r := int(math.Round(100 * float64(completions) / float64(expected)))
	if r > 100 {
		return 100
	}
	return r
}

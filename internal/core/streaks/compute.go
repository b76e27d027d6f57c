package streaks

import (
	"time"

	"github.com/comitanigiacomo/kanso-habits/internal/core/domain"
)

// Compute runs the whole engine over one snapshot of habits.
func Compute(habits []*domain.Habit, today time.Time) domain.Statistics {
	longest := LongestActiveStreak(habits, today)
	successRate := SuccessRate(habits, today)

	return domain.Statistics{
		LongestStreak: longest,
		SuccessRate:   successRate,
		Achievements:  EvaluateAchievements(longest, successRate, countHabits(habits)),
	}
}

// Breakdown returns the per-habit streak view, in input order.
func Breakdown(habits []*domain.Habit, today time.Time) []domain.HabitStreak {
	day := domain.StartOfDay(today)
	loc := day.Location()

	out := make([]domain.HabitStreak, 0, len(habits))
	for _, h := range habits {
		if h == nil {
			continue
		}
		set := newDaySet(h.CompletedDates, loc)
		out = append(out, domain.HabitStreak{
			HabitID:             h.ID,
			Name:                h.Name,
			Frequency:           h.Frequency,
			Color:               h.Color,
			CurrentStreak:       walkBack(set, day),
			BestStreak:          bestRun(set, loc),
			CompletedToday:      set.has(day),
			CompletionsInWindow: completionsInWindow(set, day),
		})
	}
	return out
}

func Report(habits []*domain.Habit, today time.Time) domain.StatsReport {
	return domain.StatsReport{
		Today:       domain.FormatDay(domain.StartOfDay(today)),
		TotalHabits: countHabits(habits),
		Statistics:  Compute(habits, today),
		Habits:      Breakdown(habits, today),
	}
}

func countHabits(habits []*domain.Habit) int {
	n := 0
	for _, h := range habits {
		if h != nil {
			n++
		}
	}
	return n
}

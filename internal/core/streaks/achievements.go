package streaks

import "github.com/comitanigiacomo/kanso-habits/internal/core/domain"

const (
	WeekWarriorStreak   = 7
	ConsistencyKingRate = 80
	HabitMasterCount    = 5
)

// EvaluateAchievements derives the achievement flags from the aggregates.
// Flags are recomputed every time and can disappear again.
func EvaluateAchievements(longestStreak, successRate, habitCount int) domain.Achievements {
	a := domain.Achievements{
		WeekWarrior:     longestStreak >= WeekWarriorStreak,
		ConsistencyKing: successRate >= ConsistencyKingRate,
		HabitMaster:     habitCount >= HabitMasterCount,
	}

	for _, unlocked := range []bool{a.WeekWarrior, a.ConsistencyKing, a.HabitMaster} {
		if unlocked {
			a.Total++
		}
	}
	return a
}

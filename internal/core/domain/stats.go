package domain

import "time"

const (
	AchievementWeekWarrior     = "week_warrior"
	AchievementConsistencyKing = "consistency_king"
	AchievementHabitMaster     = "habit_master"
)

type Achievements struct {
	Total           int  `json:"total"`
	WeekWarrior     bool `json:"week_warrior"`
	ConsistencyKing bool `json:"consistency_king"`
	HabitMaster     bool `json:"habit_master"`
}

// Flags returns every achievement keyed by its identifier.
func (a Achievements) Flags() map[string]bool {
	return map[string]bool{
		AchievementWeekWarrior:     a.WeekWarrior,
		AchievementConsistencyKing: a.ConsistencyKing,
		AchievementHabitMaster:     a.HabitMaster,
	}
}

type Statistics struct {
	LongestStreak int          `json:"longest_streak"`
	SuccessRate   int          `json:"success_rate"`
	Achievements  Achievements `json:"achievements"`
}

type HabitStreak struct {
	HabitID             string `json:"habit_id"`
	Name                string `json:"name"`
	Frequency           string `json:"frequency"`
	Color               string `json:"color"`
	CurrentStreak       int    `json:"current_streak"`
	BestStreak          int    `json:"best_streak"`
	CompletedToday      bool   `json:"completed_today"`
	CompletionsInWindow int    `json:"completions_in_window"`
}

type StatsReport struct {
	Today       string        `json:"today"`
	TotalHabits int           `json:"total_habits"`
	Statistics  Statistics    `json:"statistics"`
	Habits      []HabitStreak `json:"habits"`
}

type StatsInput struct {
	UserID string
	Today  time.Time
}

const (
	DayLevelNone     = "none"
	DayLevelPartial  = "partial"
	DayLevelMajority = "majority"
	DayLevelFull     = "full"
)

type CalendarDay struct {
	Date      string `json:"date"`
	Completed int    `json:"completed"`
	Total     int    `json:"total"`
	Level     string `json:"level"`
}

type CalendarMonth struct {
	Month string        `json:"month"`
	Days  []CalendarDay `json:"days"`
}

type CalendarInput struct {
	UserID string
	Month  time.Time
}

package domain

import "time"

const (
	RoutingAchievementUnlocked = "achievement.unlocked"
	RoutingAchievementRevoked  = "achievement.revoked"
	RoutingCompletionToggled   = "habit.completion.toggled"
)

type AchievementEvent struct {
	UserID        string    `json:"user_id"`
	Achievement   string    `json:"achievement"`
	Unlocked      bool      `json:"unlocked"`
	LongestStreak int       `json:"longest_streak"`
	SuccessRate   int       `json:"success_rate"`
	OccurredAt    time.Time `json:"occurred_at"`
}

type CompletionEvent struct {
	UserID     string    `json:"user_id"`
	HabitID    string    `json:"habit_id"`
	Date       string    `json:"date"`
	Completed  bool      `json:"completed"`
	OccurredAt time.Time `json:"occurred_at"`
}

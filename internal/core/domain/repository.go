package domain

import (
	"context"
	"errors"
)

var (
	ErrHabitNotFound = errors.New("habit not found")
	ErrUnauthorized  = errors.New("unauthorized access")
)

type HabitRepository interface {
	// Create persists a new habit together with its completion set.
	Create(ctx context.Context, habit *Habit) error

	// GetByID retrieves a habit and its completion dates.
	GetByID(ctx context.Context, id string) (*Habit, error)

	// ListByUserID retrieves all habits of a user, oldest first.
	ListByUserID(ctx context.Context, userID string) ([]*Habit, error)

	// Update modifies the descriptive fields of a habit.
	Update(ctx context.Context, habit *Habit) error

	// Delete removes a habit and all of its completions.
	Delete(ctx context.Context, id string) error

	// SetCompletion adds or removes a single completion date. Idempotent.
	SetCompletion(ctx context.Context, habitID, date string, done bool) error
}

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
}

// SnapshotStore keeps the last statistics computed for a user.
type SnapshotStore interface {
	Get(ctx context.Context, userID string) (*Statistics, error)
	Set(ctx context.Context, userID string, stats Statistics) error
}

type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
}

var ErrSnapshotNotFound = errors.New("statistics snapshot not found")

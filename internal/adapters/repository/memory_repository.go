package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/comitanigiacomo/kanso-habits/internal/core/domain"
)

var (
	_ domain.HabitRepository = (*InMemoryHabitRepository)(nil)
	_ domain.UserRepository  = (*InMemoryUserRepository)(nil)
)

// InMemoryHabitRepository backs the "memory" driver. It hands out copies so
// callers can never mutate stored state.
type InMemoryHabitRepository struct {
	store map[string]*domain.Habit

	mu sync.RWMutex
}

func NewInMemoryHabitRepository() *InMemoryHabitRepository {
	return &InMemoryHabitRepository{
		store: make(map[string]*domain.Habit),
	}
}

func copyHabit(h *domain.Habit) *domain.Habit {
	c := *h
	c.CompletedDates = domain.NormalizeDates(h.CompletedDates)
	return &c
}

func (r *InMemoryHabitRepository) Create(ctx context.Context, habit *domain.Habit) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.store[habit.ID] = copyHabit(habit)
	return nil
}

func (r *InMemoryHabitRepository) GetByID(ctx context.Context, id string) (*domain.Habit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	habit, ok := r.store[id]
	if !ok {
		return nil, domain.ErrHabitNotFound
	}
	return copyHabit(habit), nil
}

func (r *InMemoryHabitRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Habit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	habits := []*domain.Habit{}
	for _, h := range r.store {
		if h.UserID == userID {
			habits = append(habits, copyHabit(h))
		}
	}

	sort.Slice(habits, func(i, j int) bool {
		if habits[i].CreatedAt.Equal(habits[j].CreatedAt) {
			return habits[i].ID < habits[j].ID
		}
		return habits[i].CreatedAt.Before(habits[j].CreatedAt)
	})

	return habits, nil
}

// Update replaces the descriptive fields. Completions only change through SetCompletion.
func (r *InMemoryHabitRepository) Update(ctx context.Context, habit *domain.Habit) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.store[habit.ID]
	if !ok {
		return domain.ErrHabitNotFound
	}

	stored.Name = habit.Name
	stored.Description = habit.Description
	stored.Frequency = habit.Frequency
	stored.Color = habit.Color
	stored.UpdatedAt = habit.UpdatedAt
	return nil
}

func (r *InMemoryHabitRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.store[id]; !ok {
		return domain.ErrHabitNotFound
	}

	delete(r.store, id)
	return nil
}

func (r *InMemoryHabitRepository) SetCompletion(ctx context.Context, habitID, date string, done bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.store[habitID]
	if !ok {
		return domain.ErrHabitNotFound
	}

	_, err := stored.SetCompletion(date, done)
	return err
}

type InMemoryUserRepository struct {
	byID    map[string]domain.User
	byEmail map[string]string

	mu sync.RWMutex
}

func NewInMemoryUserRepository() *InMemoryUserRepository {
	return &InMemoryUserRepository{
		byID:    make(map[string]domain.User),
		byEmail: make(map[string]string),
	}
}

func (r *InMemoryUserRepository) Create(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byEmail[user.Email]; exists {
		return domain.ErrEmailAlreadyExists
	}

	r.byID[user.ID] = *user
	r.byEmail[user.Email] = user.ID
	return nil
}

func (r *InMemoryUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u := r.byID[id]
	return &u, nil
}

func (r *InMemoryUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &u, nil
}

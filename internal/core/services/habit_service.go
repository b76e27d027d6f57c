package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/comitanigiacomo/kanso-habits/internal/core/domain"
)

// StatsQueue schedules an asynchronous statistics recalculation.
type StatsQueue interface {
	Enqueue(userID string)
}

type HabitService struct {
	repo      domain.HabitRepository
	queue     StatsQueue
	publisher domain.EventPublisher
	logger    *zap.Logger
}

// NewHabitService wires the habit use cases. queue and publisher may be nil.
func NewHabitService(repo domain.HabitRepository, queue StatsQueue, publisher domain.EventPublisher, logger *zap.Logger) *HabitService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HabitService{
		repo:      repo,
		queue:     queue,
		publisher: publisher,
		logger:    logger,
	}
}

type CreateHabitInput struct {
	UserID      string
	Name        string
	Description string
	Frequency   string
	Color       string
}

type UpdateHabitInput struct {
	ID          string
	UserID      string
	Name        string
	Description string
	Frequency   string
	Color       string
}

type CompletionInput struct {
	HabitID string
	UserID  string
	Date    string
}

func mergeString(newVal, oldVal string) string {
	if newVal == "" {
		return oldVal
	}
	return newVal
}

func (s *HabitService) Create(ctx context.Context, input CreateHabitInput) (*domain.Habit, error) {
	habit, err := domain.NewHabit(input.UserID, input.Name, input.Description, input.Frequency, input.Color)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, habit); err != nil {
		return nil, err
	}

	s.recalculate(input.UserID)
	return habit, nil
}

func (s *HabitService) ListByUserID(ctx context.Context, userID string) ([]*domain.Habit, error) {
	return s.repo.ListByUserID(ctx, userID)
}

// Get returns ErrHabitNotFound for habits owned by somebody else.
func (s *HabitService) Get(ctx context.Context, id, userID string) (*domain.Habit, error) {
	habit, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if habit.UserID != userID {
		return nil, domain.ErrHabitNotFound
	}

	return habit, nil
}

func (s *HabitService) Update(ctx context.Context, input UpdateHabitInput) (*domain.Habit, error) {
	habit, err := s.Get(ctx, input.ID, input.UserID)
	if err != nil {
		return nil, err
	}

	err = habit.Update(
		mergeString(input.Name, habit.Name),
		mergeString(input.Description, habit.Description),
		mergeString(input.Frequency, habit.Frequency),
		input.Color,
	)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, habit); err != nil {
		return nil, err
	}

	s.recalculate(input.UserID)
	return habit, nil
}

func (s *HabitService) Delete(ctx context.Context, id string, userID string) error {
	if _, err := s.Get(ctx, id, userID); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.recalculate(userID)
	return nil
}

// ToggleCompletion flips one day and returns the updated habit.
func (s *HabitService) ToggleCompletion(ctx context.Context, input CompletionInput) (*domain.Habit, error) {
	habit, err := s.Get(ctx, input.HabitID, input.UserID)
	if err != nil {
		return nil, err
	}

	return s.applyCompletion(ctx, habit, input, !habit.IsCompletedOn(input.Date))
}

// SetCompletion marks or unmarks one day. Repeating the same call is a no-op.
func (s *HabitService) SetCompletion(ctx context.Context, input CompletionInput, done bool) (*domain.Habit, error) {
	habit, err := s.Get(ctx, input.HabitID, input.UserID)
	if err != nil {
		return nil, err
	}

	return s.applyCompletion(ctx, habit, input, done)
}

func (s *HabitService) applyCompletion(ctx context.Context, habit *domain.Habit, input CompletionInput, done bool) (*domain.Habit, error) {
	changed, err := habit.SetCompletion(input.Date, done)
	if err != nil {
		return nil, err
	}
	if !changed {
		return habit, nil
	}

	if err := s.repo.SetCompletion(ctx, habit.ID, input.Date, done); err != nil {
		return nil, err
	}

	s.recalculate(input.UserID)
	s.publish(ctx, domain.RoutingCompletionToggled, domain.CompletionEvent{
		UserID:     input.UserID,
		HabitID:    habit.ID,
		Date:       input.Date,
		Completed:  done,
		OccurredAt: time.Now().UTC(),
	})

	return habit, nil
}

func (s *HabitService) recalculate(userID string) {
	if s.queue != nil {
		s.queue.Enqueue(userID)
	}
}

// publish never fails the request: the completion is already stored.
func (s *HabitService) publish(ctx context.Context, routingKey string, payload any) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, routingKey, payload); err != nil {
		s.logger.Warn("failed to publish event",
			zap.String("routing_key", routingKey),
			zap.Error(err),
		)
	}
}

package services

import (
	"context"
	"time"

	"github.com/comitanigiacomo/kanso-habits/internal/core/domain"
	"github.com/comitanigiacomo/kanso-habits/internal/core/streaks"
	"github.com/comitanigiacomo/kanso-habits/internal/metrics"
)

type StatsService struct {
	habitRepo domain.HabitRepository
	loc       *time.Location
	now       func() time.Time
}

// NewStatsService computes statistics in loc. A nil clock means time.Now.
func NewStatsService(habitRepo domain.HabitRepository, loc *time.Location, clock func() time.Time) *StatsService {
	if loc == nil {
		loc = time.UTC
	}
	if clock == nil {
		clock = time.Now
	}
	return &StatsService{
		habitRepo: habitRepo,
		loc:       loc,
		now:       clock,
	}
}

// Location is the timezone calendar days are evaluated in.
func (s *StatsService) Location() *time.Location {
	return s.loc
}

func (s *StatsService) today(t time.Time) time.Time {
	if t.IsZero() {
		return s.now().In(s.loc)
	}
	return t
}

func (s *StatsService) GetStatistics(ctx context.Context, input domain.StatsInput) (*domain.StatsReport, error) {
	habits, err := s.habitRepo.ListByUserID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	report := streaks.Report(habits, s.today(input.Today))
	metrics.IncrementStatsComputation(metrics.SourceAPI)

	return &report, nil
}

func (s *StatsService) GetCalendar(ctx context.Context, input domain.CalendarInput) (*domain.CalendarMonth, error) {
	habits, err := s.habitRepo.ListByUserID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	cal := streaks.Calendar(habits, s.today(input.Month))
	return &cal, nil
}

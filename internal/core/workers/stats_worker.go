package workers

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/comitanigiacomo/kanso-habits/internal/core/domain"
	"github.com/comitanigiacomo/kanso-habits/internal/core/streaks"
	"github.com/comitanigiacomo/kanso-habits/internal/metrics"
)

const DefaultQueueSize = 100

type HabitLister interface {
	ListByUserID(ctx context.Context, userID string) ([]*domain.Habit, error)
}

type StatsJob struct {
	UserID string
}

// StatsWorker recomputes a user's statistics in the background and emits an
// event for every achievement that appeared or disappeared since the last run.
type StatsWorker struct {
	habits    HabitLister
	snapshots domain.SnapshotStore
	publisher domain.EventPublisher
	logger    *zap.Logger
	loc       *time.Location
	now       func() time.Time
	jobs      chan StatsJob
}

func NewStatsWorker(habits HabitLister, snapshots domain.SnapshotStore, publisher domain.EventPublisher, logger *zap.Logger, loc *time.Location, queueSize int) *StatsWorker {
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	if loc == nil {
		loc = time.UTC
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StatsWorker{
		habits:    habits,
		snapshots: snapshots,
		publisher: publisher,
		logger:    logger,
		loc:       loc,
		now:       time.Now,
		jobs:      make(chan StatsJob, queueSize),
	}
}

func (w *StatsWorker) Start(ctx context.Context) {
	go func() {
		w.logger.Info("stats worker started", zap.Int("queue_size", cap(w.jobs)))
		for {
			select {
			case job := <-w.jobs:
				w.processJob(ctx, job)
			case <-ctx.Done():
				w.logger.Info("stats worker shutting down")
				return
			}
		}
	}()
}

// Enqueue never blocks. Jobs are dropped when the queue is full.
func (w *StatsWorker) Enqueue(userID string) {
	select {
	case w.jobs <- StatsJob{UserID: userID}:
	default:
		metrics.IncrementWorkerJobsDropped()
		w.logger.Warn("stats worker queue full, dropping job", zap.String("user_id", userID))
	}
}

var achievementOrder = []string{
	domain.AchievementWeekWarrior,
	domain.AchievementConsistencyKing,
	domain.AchievementHabitMaster,
}

func (w *StatsWorker) processJob(ctx context.Context, job StatsJob) {
	log := w.logger.With(zap.String("user_id", job.UserID))

	habits, err := w.habits.ListByUserID(ctx, job.UserID)
	if err != nil {
		log.Error("failed to list habits", zap.Error(err))
		return
	}

	now := w.now().In(w.loc)
	stats := streaks.Compute(habits, now)
	metrics.IncrementStatsComputation(metrics.SourceWorker)

	previous, err := w.snapshots.Get(ctx, job.UserID)
	diffable := true
	switch {
	case errors.Is(err, domain.ErrSnapshotNotFound):
		previous = &domain.Statistics{}
	case err != nil:
		// Without the old snapshot every flag would look new.
		log.Warn("failed to load previous snapshot", zap.Error(err))
		diffable = false
	}

	if err := w.snapshots.Set(ctx, job.UserID, stats); err != nil {
		log.Error("failed to store snapshot", zap.Error(err))
		return
	}

	if !diffable {
		return
	}

	before, after := previous.Achievements.Flags(), stats.Achievements.Flags()
	for _, name := range achievementOrder {
		if before[name] == after[name] {
			continue
		}

		unlocked := after[name]
		metrics.IncrementAchievementChange(name, unlocked)
		log.Info("achievement changed",
			zap.String("achievement", name),
			zap.Bool("unlocked", unlocked),
			zap.Int("longest_streak", stats.LongestStreak),
			zap.Int("success_rate", stats.SuccessRate),
		)

		w.publish(ctx, log, domain.AchievementEvent{
			UserID:        job.UserID,
			Achievement:   name,
			Unlocked:      unlocked,
			LongestStreak: stats.LongestStreak,
			SuccessRate:   stats.SuccessRate,
			OccurredAt:    now.UTC(),
		})
	}
}

func (w *StatsWorker) publish(ctx context.Context, log *zap.Logger, event domain.AchievementEvent) {
	if w.publisher == nil {
		return
	}

	key := domain.RoutingAchievementRevoked
	if event.Unlocked {
		key = domain.RoutingAchievementUnlocked
	}

	if err := w.publisher.Publish(ctx, key, event); err != nil {
		log.Warn("failed to publish achievement event",
			zap.String("achievement", event.Achievement),
			zap.Error(err),
		)
	}
}

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	SourceAPI    = "api"
	SourceWorker = "worker"
	SourceCLI    = "cli"

	KindUnlocked = "unlocked"
	KindRevoked  = "revoked"
)

var (
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "kanso_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
		},
		[]string{"method", "path", "status"},
	)

	StatsComputations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kanso_stats_computations_total",
			Help: "Total number of statistics computations",
		},
		[]string{"source"},
	)

	AchievementChanges = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kanso_achievement_changes_total",
			Help: "Achievements unlocked or revoked by the stats worker",
		},
		[]string{"achievement", "kind"},
	)

	WorkerJobsDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "kanso_worker_jobs_dropped_total",
			Help: "Stats recalculation jobs dropped because the queue was full",
		},
	)
)

func RecordHTTPRequestDuration(method, path, status string, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

func IncrementStatsComputation(source string) {
	StatsComputations.WithLabelValues(source).Inc()
}

// IncrementAchievementChange records one flag transition.
func IncrementAchievementChange(achievement string, unlocked bool) {
	kind := KindRevoked
	if unlocked {
		kind = KindUnlocked
	}
	AchievementChanges.WithLabelValues(achievement, kind).Inc()
}

func IncrementWorkerJobsDropped() {
	WorkerJobsDropped.Inc()
}

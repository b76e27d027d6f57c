package main

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/comitanigiacomo/kanso-habits/internal/adapters/cache"
	"github.com/comitanigiacomo/kanso-habits/internal/adapters/events"
	adapterHTTP "github.com/comitanigiacomo/kanso-habits/internal/adapters/handler/http"
	"github.com/comitanigiacomo/kanso-habits/internal/adapters/repository"
	"github.com/comitanigiacomo/kanso-habits/internal/config"
	"github.com/comitanigiacomo/kanso-habits/internal/core/domain"
	"github.com/comitanigiacomo/kanso-habits/internal/core/services"
	"github.com/comitanigiacomo/kanso-habits/internal/core/workers"
)

// app is the fully wired server. Close releases everything newApp opened.
type app struct {
	router    *gin.Engine
	db        *sqlx.DB
	redis     *redis.Client
	snapshots domain.SnapshotStore
	closers   []func()
}

func newApp(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*app, error) {
	a := &app{}

	habitRepo, userRepo, err := a.openStorage(ctx, cfg.Database, logger)
	if err != nil {
		a.Close()
		return nil, err
	}

	if cfg.Redis.Enabled() {
		rdb, err := cache.NewRedisClient(cfg.Redis)
		if err != nil {
			logger.Warn("redis unreachable, running without cache and rate limiting", zap.Error(err))
		} else {
			a.redis = rdb
			a.closers = append(a.closers, func() { _ = rdb.Close() })
		}
	}

	var habits domain.HabitRepository = habitRepo
	a.snapshots = cache.NewMemorySnapshotStore()
	if a.redis != nil {
		habits = repository.NewCachedHabitRepository(habitRepo, a.redis, logger.Named("habit_cache"))
		a.snapshots = cache.NewRedisSnapshotStore(a.redis)
	}

	publisher := a.openPublisher(cfg.MQ, logger)

	loc := cfg.Stats.Location()
	worker := workers.NewStatsWorker(habits, a.snapshots, publisher, logger.Named("stats_worker"), loc, cfg.Stats.QueueSize)
	worker.Start(ctx)

	tokenService := services.NewTokenService(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.TTL, userRepo)
	authService := services.NewAuthService(userRepo, tokenService)
	habitService := services.NewHabitService(habits, worker, publisher, logger.Named("habits"))
	statsService := services.NewStatsService(habits, loc, nil)

	a.router = adapterHTTP.NewRouter(adapterHTTP.RouterDependencies{
		AuthHandler:     adapterHTTP.NewAuthHandler(authService),
		HabitHandler:    adapterHTTP.NewHabitHandler(habitService),
		StatsHandler:    adapterHTTP.NewStatsHandler(statsService),
		TokenService:    tokenService,
		Logger:          logger.Named("http"),
		DB:              a.db,
		Redis:           a.redis,
		RateLimit:       cfg.RateLimit.Limit,
		RateLimitWindow: cfg.RateLimit.Window,
		StartTime:       time.Now(),
	})

	return a, nil
}

func (a *app) openStorage(ctx context.Context, cfg config.DatabaseConfig, logger *zap.Logger) (domain.HabitRepository, domain.UserRepository, error) {
	if cfg.Driver == config.DriverMemory {
		logger.Warn("using in-memory storage, data is lost on restart")
		return repository.NewInMemoryHabitRepository(), repository.NewInMemoryUserRepository(), nil
	}

	logger.Info("connecting to database", zap.String("driver", cfg.Driver))

	db, err := repository.Open(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	a.db = db
	a.closers = append(a.closers, func() { _ = db.Close() })

	if err := repository.Migrate(ctx, db); err != nil {
		return nil, nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	logger.Info("database connected successfully")
	return repository.NewSQLHabitRepository(db), repository.NewSQLUserRepository(db), nil
}

// openPublisher falls back to logging events when the broker is absent.
func (a *app) openPublisher(cfg config.MQConfig, logger *zap.Logger) domain.EventPublisher {
	if cfg.URL == "" {
		return events.NewLogPublisher(logger.Named("events"))
	}

	p, err := events.NewRabbitMQPublisher(cfg.URL, cfg.Exchange, logger.Named("events"))
	if err != nil {
		logger.Warn("message broker unreachable, logging events instead", zap.Error(err))
		return events.NewLogPublisher(logger.Named("events"))
	}
	a.closers = append(a.closers, p.Close)
	return p
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}

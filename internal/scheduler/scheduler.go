// Package scheduler runs the periodic background jobs: advancing game
// statuses by the clock and evicting idle rate limiter buckets.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"OwlTurf/internal/middleware"
	"OwlTurf/internal/service"

	"github.com/go-co-op/gocron/v2"
	"github.com/sirupsen/logrus"
)

const limiterIdle = 10 * time.Minute

// Scheduler 定时任务：推进比赛状态、清理限流器
type Scheduler struct {
	sched    gocron.Scheduler
	games    *service.GameService
	limiter  *middleware.RateLimiter
	interval time.Duration
	logger   *logrus.Logger
	now      func() time.Time
}

// New registers the jobs without starting them. limiter may be nil.
func New(games *service.GameService, limiter *middleware.RateLimiter, interval time.Duration, logger *logrus.Logger) (*Scheduler, error) {
	if interval <= 0 {
		interval = time.Minute
	}
	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("create scheduler: %w", err)
	}
	s := &Scheduler{
		sched:    sched,
		games:    games,
		limiter:  limiter,
		interval: interval,
		logger:   logger,
		now:      time.Now,
	}

	if _, err := sched.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(s.advanceGames),
		gocron.WithName("advance-games"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	); err != nil {
		return nil, fmt.Errorf("register advance-games: %w", err)
	}
	if limiter != nil {
		if _, err := sched.NewJob(
			gocron.DurationJob(limiterIdle),
			gocron.NewTask(s.cleanupLimiter),
			gocron.WithName("ratelimit-cleanup"),
		); err != nil {
			return nil, fmt.Errorf("register ratelimit-cleanup: %w", err)
		}
	}
	return s, nil
}

func (s *Scheduler) Start() {
	s.sched.Start()
	s.logger.WithField("interval", s.interval.String()).Info("scheduler started")
}

func (s *Scheduler) Shutdown() error {
	return s.sched.Shutdown()
}

func (s *Scheduler) advanceGames() {
	ctx, cancel := context.WithTimeout(context.Background(), s.interval)
	defer cancel()
	moved, err := s.games.AdvanceSchedule(ctx, s.now())
	if err != nil {
		s.logger.WithError(err).Error("advance game schedule failed")
		return
	}
	if moved > 0 {
		s.logger.WithField("moved", moved).Info("game schedule advanced")
	}
}

func (s *Scheduler) cleanupLimiter() {
	if n := s.limiter.Cleanup(limiterIdle); n > 0 {
		s.logger.WithField("evicted", n).Debug("rate limiter buckets evicted")
	}
}

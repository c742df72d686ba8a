package scheduler

import (
	"fmt"
	"goaltracker/internal/providers"
	"goaltracker/internal/scheduler/interfaces"
	"goaltracker/internal/services"
	"goaltracker/internal/structures"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// Scheduler drives the tracker clock: a tick job advances the countdown and an
// optional checkpoint job saves the snapshot between user actions.
type Scheduler struct {
	config  *structures.Config
	logger  providers.Logger
	service services.TrackerServiceInterface
	metrics providers.MetricsProviderInterface
	cron    gocron.Scheduler

	now      func() time.Time
	lastTick time.Time
}

func (s *Scheduler) Init() error {
	cron, err := gocron.NewScheduler()
	if err != nil {
		return fmt.Errorf("failed to create scheduler: %w", err)
	}

	tick := s.config.Tracker.TickInterval
	s.lastTick = s.now()
	_, err = cron.NewJob(
		gocron.DurationJob(tick),
		gocron.NewTask(s.tick),
		gocron.WithName("countdown-tick"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		_ = cron.Shutdown()
		return fmt.Errorf("failed to create tick job: %w", err)
	}

	if interval := s.config.Tracker.CheckpointInterval; interval > 0 {
		_, err = cron.NewJob(
			gocron.DurationJob(interval),
			gocron.NewTask(s.checkpoint),
			gocron.WithName("checkpoint"),
			gocron.WithSingletonMode(gocron.LimitModeReschedule),
		)
		if err != nil {
			_ = cron.Shutdown()
			return fmt.Errorf("failed to create checkpoint job: %w", err)
		}
		s.logger.Infof(providers.TypeApp, "Checkpoint every %s", interval)
	}

	s.cron = cron
	s.cron.Start()
	s.logger.Infof(providers.TypeApp, "Scheduler started, tick %s", tick)
	return nil
}

// tick advances the countdown by the time measured since the previous run, so a
// late or rescheduled job does not slow the cooldown down.
func (s *Scheduler) tick() {
	now := s.now()
	elapsed := now.Sub(s.lastTick)
	s.lastTick = now
	s.service.Tick(elapsed)
}

func (s *Scheduler) checkpoint() {
	if err := s.Persist(); err != nil {
		return
	}
	s.logger.Debugf(providers.TypeApp, "Checkpoint saved")
}

func (s *Scheduler) Stop() {
	if s.cron == nil {
		return
	}
	if err := s.cron.Shutdown(); err != nil {
		s.logger.Warnf(providers.TypeApp, "Scheduler shutdown: %s", err)
	}
	s.cron = nil
}

func (s *Scheduler) Restore() error {
	return s.service.Restore()
}

func (s *Scheduler) Persist() error {
	start := time.Now()
	err := s.service.Persist()
	s.metrics.ObservePersistenceDuration(time.Since(start))
	if err != nil {
		s.logger.Errorf(providers.TypeApp, "Error while persisting data: %s", err)
		return err
	}
	return nil
}

func NewScheduler(config *structures.Config, logger providers.Logger, service services.TrackerServiceInterface, metrics providers.MetricsProviderInterface) interfaces.SchedulerInterface {
	return &Scheduler{
		config:  config,
		logger:  logger,
		service: service,
		metrics: metrics,
		now:     time.Now,
	}
}

package service

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
)

// ReminderJob processes reminders that are due and returns how many it handled.
type ReminderJob func(ctx context.Context) (int, error)

// ReminderScheduler runs the reminder sweep on a fixed interval.
type ReminderScheduler struct {
	scheduler *gocron.Scheduler
	job       ReminderJob
	interval  time.Duration
	timeout   time.Duration
	log       *logrus.Logger
}

func NewReminderScheduler(job ReminderJob, interval time.Duration, log *logrus.Logger) *ReminderScheduler {
	scheduler := gocron.NewScheduler(time.UTC)
	// A slow sweep must not overlap with the next tick.
	scheduler.SingletonModeAll()

	return &ReminderScheduler{
		scheduler: scheduler,
		job:       job,
		interval:  interval,
		timeout:   interval,
		log:       log,
	}
}

func (s *ReminderScheduler) Start() error {
	if _, err := s.scheduler.Every(s.interval).Do(s.runOnce); err != nil {
		return err
	}
	s.scheduler.StartAsync()
	s.log.Infof("Reminder scheduler started, interval %s", s.interval)
	return nil
}

func (s *ReminderScheduler) Stop() {
	s.scheduler.Stop()
	s.log.Info("Reminder scheduler stopped")
}

func (s *ReminderScheduler) runOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	processed, err := s.job(ctx)
	if err != nil {
		s.log.Warnf("Failed to dispatch reminders: %+v", err)
		return
	}
	if processed > 0 {
		s.log.Infof("Dispatched %d reminders", processed)
	}
}

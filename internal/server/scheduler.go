package server

import (
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// Timer runs a callback once after a delay.
type Timer interface {
	After(d time.Duration, task func()) error
}

// Scheduler is a Timer backed by gocron one-time jobs.
type Scheduler struct {
	cron gocron.Scheduler
}

// NewScheduler creates and starts the scheduler.
func NewScheduler() (*Scheduler, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}
	s.Start()
	return &Scheduler{cron: s}, nil
}

// After schedules task to run once, d from now.
func (s *Scheduler) After(d time.Duration, task func()) error {
	start := gocron.OneTimeJobStartImmediately()
	if d > 0 {
		start = gocron.OneTimeJobStartDateTime(time.Now().Add(d))
	}
	_, err := s.cron.NewJob(
		gocron.OneTimeJob(start),
		gocron.NewTask(task),
	)
	if err != nil {
		return fmt.Errorf("failed to schedule job: %w", err)
	}
	return nil
}

// Shutdown stops the scheduler and waits for running jobs.
func (s *Scheduler) Shutdown() error {
	return s.cron.Shutdown()
}

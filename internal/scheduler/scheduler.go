// Package scheduler runs the daily pipeline at a configured local time.
package scheduler

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/robfig/cron/v3"

	"github.com/openclaw/ainews/internal/logger"
)

type Scheduler struct {
	cron *cron.Cron
	job  func()
}

// New schedules job daily at scheduleTime ("HH:MM", local time).
func New(scheduleTime string, job func()) (*Scheduler, error) {
	spec, err := cronSpec(scheduleTime)
	if err != nil {
		return nil, err
	}

	s := &Scheduler{cron: cron.New(), job: job}
	if _, err := s.cron.AddFunc(spec, s.runOnce); err != nil {
		return nil, fmt.Errorf("schedule %q: %w", spec, err)
	}
	return s, nil
}

// Run executes the job immediately, then blocks running the daily
// schedule.
func (s *Scheduler) Run() {
	logger.Info("scheduler started, running first pass now")
	s.runOnce()
	s.cron.Run()
}

// runOnce isolates one scheduled execution: a programming error in a
// run is logged and must not take the next run down with it.
func (s *Scheduler) runOnce() {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("scheduled run panicked", "panic", r)
		}
	}()
	s.job()
}

// cronSpec converts "HH:MM" into a daily cron expression.
func cronSpec(scheduleTime string) (string, error) {
	parts := strings.SplitN(scheduleTime, ":", 2)
	if len(parts) != 2 {
		return "", fmt.Errorf("schedule time must be HH:MM, got %q", scheduleTime)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return "", fmt.Errorf("bad hour in schedule time %q", scheduleTime)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return "", fmt.Errorf("bad minute in schedule time %q", scheduleTime)
	}
	return fmt.Sprintf("%d %d * * *", minute, hour), nil
}

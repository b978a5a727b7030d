package service

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

// SchedulerService drives the periodic reminder sweeps. The reminder
// engine itself never self-schedules; the composition root decides the
// cadence here.
type SchedulerService struct {
	cron *cron.Cron
}

func NewSchedulerService(loc *time.Location) *SchedulerService {
	return &SchedulerService{
		cron: cron.New(cron.WithLocation(loc), cron.WithSeconds()),
	}
}

// ScheduleSweep runs the job once right away and then on every interval.
// Reminders that came due while the process was down are picked up by the
// immediate run instead of waiting out the first tick.
func (s *SchedulerService) ScheduleSweep(interval time.Duration, job func()) (cron.EntryID, error) {
	id, err := s.ScheduleInterval(interval, job)
	if err != nil {
		return 0, err
	}
	go job()
	return id, nil
}

// ScheduleInterval registers a job that fires every interval, rounded
// down to whole seconds.
func (s *SchedulerService) ScheduleInterval(interval time.Duration, job func()) (cron.EntryID, error) {
	if interval < time.Second {
		return 0, fmt.Errorf("sweep interval %v too short, minimum is 1s", interval)
	}
	return s.cron.AddFunc(fmt.Sprintf("@every %ds", int(interval.Seconds())), job)
}

// ScheduleDaily registers a job that fires once a day at the given HH:MM,
// e.g. a morning digest of the day's deadlines.
func (s *SchedulerService) ScheduleDaily(at string, job func()) (cron.EntryID, error) {
	spec, err := dailySpec(at)
	if err != nil {
		return 0, err
	}
	return s.cron.AddFunc(spec, job)
}

func (s *SchedulerService) Start() {
	s.cron.Start()
}

// Stop halts scheduling and waits for running jobs to finish.
func (s *SchedulerService) Stop() {
	<-s.cron.Stop().Done()
}

func dailySpec(at string) (string, error) {
	t, err := time.Parse("15:04", at)
	if err != nil {
		return "", fmt.Errorf("daily time %q, expected HH:MM: %w", at, err)
	}
	// second minute hour dom month dow
	return fmt.Sprintf("0 %d %d * * *", t.Minute(), t.Hour()), nil
}

package scheduler

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/i474232898/weather-widget/internal/log"
	"github.com/i474232898/weather-widget/internal/weather"
)

// Searcher is the part of weather.Service the scheduler needs.
type Searcher interface {
	Search(ctx context.Context, city string) (weather.SearchResult, error)
	LastCity() string
}

// Scheduler periodically re-runs the last search so the display stays current.
type Scheduler struct {
	scheduler *gocron.Scheduler
	service   Searcher
	interval  time.Duration
	timeout   time.Duration
}

// New creates a new Scheduler. A zero interval disables it.
func New(interval time.Duration, service Searcher) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	s.SingletonModeAll()
	return &Scheduler{
		scheduler: s,
		service:   service,
		interval:  interval,
		timeout:   30 * time.Second,
	}
}

// Start schedules the refresh job and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	if s.interval <= 0 {
		log.Info("scheduler: refresh disabled")
		return nil
	}

	_, err := s.scheduler.Every(s.interval).WaitForSchedule().Do(s.refresh)
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	log.Infow("scheduler: refresh enabled", "interval", s.interval.String())
	return nil
}

// refresh repeats the last search. With nothing on display it does nothing.
func (s *Scheduler) refresh() {
	city := s.service.LastCity()
	if city == "" {
		log.Debugw("scheduler: nothing to refresh")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	if _, err := s.service.Search(ctx, city); err != nil {
		log.Warnw("scheduler: refresh failed", "city", city, "error", err)
		return
	}
	log.Debugw("scheduler: refreshed", "city", city)
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}

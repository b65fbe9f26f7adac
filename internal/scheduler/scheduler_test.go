package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/i474232898/weather-widget/internal/weather"
)

type recordingSearcher struct {
	mu       sync.Mutex
	lastCity string
	searched []string
	err      error
}

func (r *recordingSearcher) Search(_ context.Context, city string) (weather.SearchResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.searched = append(r.searched, city)
	return weather.SearchResult{City: city}, r.err
}

func (r *recordingSearcher) LastCity() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastCity
}

func (r *recordingSearcher) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.searched)
}

func TestRefreshRepeatsLastCity(t *testing.T) {
	rs := &recordingSearcher{lastCity: "Lisbon"}
	s := New(time.Minute, rs)

	s.refresh()

	if rs.count() != 1 || rs.searched[0] != "Lisbon" {
		t.Fatalf("expected one refresh for Lisbon, got %v", rs.searched)
	}
}

func TestRefreshSkipsWhenNothingDisplayed(t *testing.T) {
	rs := &recordingSearcher{}
	s := New(time.Minute, rs)

	s.refresh()

	if rs.count() != 0 {
		t.Fatalf("expected no search, got %v", rs.searched)
	}
}

func TestRefreshToleratesErrors(t *testing.T) {
	rs := &recordingSearcher{lastCity: "Lisbon", err: errors.New("boom")}
	s := New(time.Minute, rs)

	s.refresh()

	if rs.count() != 1 {
		t.Fatalf("expected the failed refresh to be attempted once, got %d", rs.count())
	}
}

func TestStartDisabled(t *testing.T) {
	rs := &recordingSearcher{lastCity: "Lisbon"}
	s := New(0, rs)

	if err := s.Start(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer s.Stop()

	if s.scheduler.IsRunning() {
		t.Fatal("disabled scheduler must not run")
	}
}

func TestStartRunsPeriodically(t *testing.T) {
	rs := &recordingSearcher{lastCity: "Lisbon"}
	s := New(50*time.Millisecond, rs)

	if err := s.Start(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer s.Stop()

	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) && rs.count() == 0 {
		time.Sleep(20 * time.Millisecond)
	}
	if rs.count() == 0 {
		t.Fatal("expected at least one scheduled refresh")
	}
}

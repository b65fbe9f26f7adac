package store

import (
	"errors"
	"sync"

	"github.com/i474232898/weather-widget/internal/weather"
)

var (
	// ErrNotFound is reported when both display slots are absent.
	ErrNotFound = errors.New("no weather data to display")
)

// MemoryStore is a concurrency-safe in-memory holder of the two display slots.
// Writes are last-write-wins; nothing outlives the process.
type MemoryStore struct {
	mu sync.RWMutex

	city     string
	current  *weather.CurrentConditions
	forecast *weather.ForecastSet
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// SetCurrent replaces the current-conditions slot and records the searched city.
func (s *MemoryStore) SetCurrent(city string, current weather.CurrentConditions) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.city = city
	s.current = &current
}

// SetForecast replaces the forecast slot.
func (s *MemoryStore) SetForecast(forecast weather.ForecastSet) {
	f := weather.ForecastSet{
		Days:  append([]weather.DailyForecast(nil), forecast.Days...),
		Dates: append([]string(nil), forecast.Dates...),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.forecast = &f
}

// Clear resets both slots (and the remembered city) to absent.
func (s *MemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.city = ""
	s.current = nil
	s.forecast = nil
}

// Snapshot returns a copy of both slots taken under a single read lock.
func (s *MemoryStore) Snapshot() weather.DisplayState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state := weather.DisplayState{City: s.city}
	if s.current != nil {
		current := *s.current
		state.Current = &current
	}
	if s.forecast != nil {
		state.Forecast = &weather.ForecastSet{
			Days:  append([]weather.DailyForecast(nil), s.forecast.Days...),
			Dates: append([]string(nil), s.forecast.Dates...),
		}
	}
	return state
}

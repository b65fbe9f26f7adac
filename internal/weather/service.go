package weather

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/i474232898/weather-widget/internal/log"
)

// Service runs searches against a provider and publishes the outcome to the display store.
type Service struct {
	store    Store
	provider Provider
}

// NewService creates a new Service.
func NewService(store Store, provider Provider) *Service {
	return &Service{
		store:    store,
		provider: provider,
	}
}

// DisplayState is a read-only copy of what the presentation layer should render.
// A nil slot means nothing to show.
type DisplayState struct {
	City     string             `json:"city,omitempty"`
	Current  *CurrentConditions `json:"current"`
	Forecast *ForecastSet       `json:"forecast"`
}

// Empty reports whether both slots are absent.
func (d DisplayState) Empty() bool {
	return d.Current == nil && d.Forecast == nil
}

// Search fetches current conditions and then the forecast for city, one after the other.
// A blank city returns ErrEmptyInput without touching the network or the display state.
// Any fetch failure clears both display slots and is returned as a *FetchError.
func (s *Service) Search(ctx context.Context, city string) (SearchResult, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		return SearchResult{}, ErrEmptyInput
	}

	searchID := uuid.NewString()
	log.Debugw("search started", "searchId", searchID, "city", city, "provider", s.provider.Name())

	current, err := s.provider.FetchCurrent(ctx, city)
	if err != nil {
		s.fail(searchID, city, err)
		return SearchResult{}, err
	}
	current.Icon = ResolveIcon(current.IconCode)
	s.store.SetCurrent(city, current)

	entries, err := s.provider.FetchForecast(ctx, city)
	if err != nil {
		s.fail(searchID, city, err)
		return SearchResult{}, err
	}

	forecast := AggregateForecast(entries)
	s.store.SetForecast(forecast)

	log.Infow("search completed",
		"searchId", searchID,
		"city", city,
		"location", current.Location,
		"forecastDays", len(forecast.Days),
		"trimmed", forecast.Trimmed(),
	)

	return SearchResult{
		City:     city,
		Current:  current,
		Forecast: forecast,
	}, nil
}

func (s *Service) fail(searchID, city string, err error) {
	s.store.Clear()

	kind := FailureKind("unknown")
	var fe *FetchError
	if errors.As(err, &fe) {
		kind = fe.Kind
	}
	log.Errorw("error in fetching weather data",
		"searchId", searchID,
		"city", city,
		"kind", kind,
		"error", err,
	)
}

// Display returns the current display slots.
func (s *Service) Display() DisplayState {
	return s.store.Snapshot()
}

// LastCity returns the city of the last successful current-conditions fetch.
func (s *Service) LastCity() string {
	return s.store.Snapshot().City
}

package weather

import (
	"context"
)

// Provider abstracts the upstream weather API.
type Provider interface {
	Name() string
	FetchCurrent(ctx context.Context, city string) (CurrentConditions, error)
	FetchForecast(ctx context.Context, city string) ([]ForecastEntry, error)
}

// Store holds the display state written by searches and read by the presentation layer.
type Store interface {
	SetCurrent(city string, current CurrentConditions)
	SetForecast(forecast ForecastSet)
	Clear()
	Snapshot() DisplayState
}

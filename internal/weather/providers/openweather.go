package providers

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"github.com/i474232898/weather-widget/internal/weather"
)

const defaultOpenWeatherBaseURL = "https://api.openweathermap.org/data/2.5"

// OpenWeatherProvider implements the weather.Provider interface for OpenWeatherMap.
type OpenWeatherProvider struct {
	name    string
	apiKey  string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

// NewOpenWeatherProvider creates a provider for the given API key. An empty baseURL
// selects the public endpoint.
func NewOpenWeatherProvider(client *http.Client, apiKey, baseURL string) *OpenWeatherProvider {
	if baseURL == "" {
		baseURL = defaultOpenWeatherBaseURL
	}

	return &OpenWeatherProvider{
		name:    "openweathermap",
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		httpCfg: HTTPClientConfig{
			Client: client,
		},
		circuit: newCircuitBreaker("openweather"),
	}
}

func (p *OpenWeatherProvider) Name() string {
	return p.name
}

type currentPayload struct {
	Dt       int64         `json:"dt"`
	Timezone int           `json:"timezone"`
	Name     string        `json:"name" validate:"required"`
	Main     *currentMain  `json:"main" validate:"required"`
	Wind     *currentWind  `json:"wind" validate:"required"`
	Weather  []weatherItem `json:"weather" validate:"required,min=1,dive"`
}

type currentMain struct {
	Temp     *float64 `json:"temp" validate:"required"`
	Humidity *float64 `json:"humidity" validate:"required"`
}

type currentWind struct {
	Speed *float64 `json:"speed" validate:"required"`
}

type weatherItem struct {
	Icon string `json:"icon" validate:"required"`
}

type forecastPayload struct {
	List []forecastItem `json:"list" validate:"required,min=1,dive"`
}

type forecastItem struct {
	DtTxt   string        `json:"dt_txt" validate:"required"`
	Main    *forecastMain `json:"main" validate:"required"`
	Weather []weatherItem `json:"weather" validate:"required,min=1,dive"`
}

type forecastMain struct {
	Temp *float64 `json:"temp" validate:"required"`
}

func (p *OpenWeatherProvider) FetchCurrent(ctx context.Context, city string) (weather.CurrentConditions, error) {
	var payload currentPayload
	if err := p.get(ctx, "current", "/weather", city, &payload); err != nil {
		return weather.CurrentConditions{}, err
	}

	observed := time.Now()
	if payload.Dt != 0 {
		observed = time.Unix(payload.Dt, 0)
	}
	observed = observed.In(time.FixedZone("", payload.Timezone))

	return weather.CurrentConditions{
		Humidity:    weather.RoundHalfUp(*payload.Main.Humidity),
		WindSpeed:   msToKmh(*payload.Wind.Speed),
		Temperature: weather.RoundHalfUp(*payload.Main.Temp),
		Location:    payload.Name,
		IconCode:    payload.Weather[0].Icon,
		ObservedAt:  observed,
	}, nil
}

func (p *OpenWeatherProvider) FetchForecast(ctx context.Context, city string) ([]weather.ForecastEntry, error) {
	var payload forecastPayload
	if err := p.get(ctx, "forecast", "/forecast", city, &payload); err != nil {
		return nil, err
	}

	entries := make([]weather.ForecastEntry, 0, len(payload.List))
	for _, item := range payload.List {
		entries = append(entries, weather.ForecastEntry{
			Timestamp:     item.DtTxt,
			Temperature:   *item.Main.Temp,
			ConditionCode: item.Weather[0].Icon,
		})
	}
	return entries, nil
}

func (p *OpenWeatherProvider) get(ctx context.Context, op, path, city string, target any) error {
	if p.apiKey == "" {
		return &weather.FetchError{Kind: weather.ProviderError, Op: op, Err: errNoAPIKey}
	}

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("q", city)
		values.Set("units", "metric")
		values.Set("appid", p.apiKey)

		u := fmt.Sprintf("%s%s?%s", p.baseURL, path, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	return fetchJSON(ctx, p.httpCfg, p.circuit, op, buildRequest, target)
}

// msToKmh converts the API's m/s wind speed to km/h, rounded to two decimals.
func msToKmh(v float64) float64 {
	return math.Round(v*3.6*100) / 100
}

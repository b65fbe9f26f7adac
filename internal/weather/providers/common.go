// Package providers fetches weather data from upstream APIs.
//
// OpenWeatherMap reports wind speed in m/s under units=metric; providers convert it
// to km/h before it reaches the display, so shown values are 3.6x the raw API field.
package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sony/gobreaker"

	"github.com/i474232898/weather-widget/internal/weather"
)

// HTTPClientConfig bundles the HTTP client used for upstream calls.
type HTTPClientConfig struct {
	Client *http.Client
}

var (
	errNoHTTPClient = errors.New("http client not configured")
	errNoAPIKey     = errors.New("api key is not configured")

	validate = validator.New()
)

// upstreamError is the body the provider returns alongside non-2xx statuses.
type upstreamError struct {
	Message string `json:"message"`
}

// statusError carries a non-2xx response through the circuit breaker.
type statusError struct {
	code    int
	message string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("unexpected status code %d", e.code)
}

// newCircuitBreaker trips on transport and server-side failures only; a 404 for an
// unknown city says nothing about upstream health.
func newCircuitBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
		IsSuccessful: func(err error) bool {
			var se *statusError
			if errors.As(err, &se) {
				return se.code < http.StatusInternalServerError && se.code != http.StatusTooManyRequests
			}
			return err == nil
		},
	})
}

// fetchJSON issues a single GET through the circuit breaker, then decodes and validates
// the body into target. There is no retry; every failure is returned as a *weather.FetchError.
func fetchJSON(
	ctx context.Context,
	cfg HTTPClientConfig,
	cb *gobreaker.CircuitBreaker,
	op string,
	buildRequest func() (*http.Request, error),
	target any,
) error {
	if cfg.Client == nil {
		return &weather.FetchError{Kind: weather.ProviderError, Op: op, Err: errNoHTTPClient}
	}

	req, err := buildRequest()
	if err != nil {
		return &weather.FetchError{Kind: weather.ProviderError, Op: op, Err: err}
	}
	req = req.WithContext(ctx)

	result, err := cb.Execute(func() (interface{}, error) {
		resp, execErr := cfg.Client.Do(req)
		if execErr != nil {
			return nil, execErr
		}
		defer resp.Body.Close()

		body, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			return nil, readErr
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			var ue upstreamError
			_ = json.Unmarshal(body, &ue)
			return nil, &statusError{code: resp.StatusCode, message: ue.Message}
		}
		return body, nil
	})
	if err != nil {
		return classify(op, err)
	}

	body, ok := result.([]byte)
	if !ok {
		return &weather.FetchError{Kind: weather.ProviderError, Op: op, Err: fmt.Errorf("unexpected result type from circuit breaker")}
	}

	if err := json.Unmarshal(body, target); err != nil {
		return &weather.FetchError{Kind: weather.ParseError, Op: op, Err: err}
	}
	if err := validate.Struct(target); err != nil {
		return &weather.FetchError{Kind: weather.ParseError, Op: op, Err: err}
	}
	return nil
}

func classify(op string, err error) error {
	var se *statusError
	switch {
	case errors.As(err, &se) && se.code == http.StatusNotFound:
		return &weather.FetchError{Kind: weather.CityNotFound, Op: op, StatusCode: se.code, Message: se.message}
	case errors.As(err, &se):
		return &weather.FetchError{Kind: weather.ProviderError, Op: op, StatusCode: se.code, Message: se.message}
	case errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests):
		return &weather.FetchError{Kind: weather.ProviderError, Op: op, Message: "circuit breaker open", Err: err}
	default:
		return &weather.FetchError{Kind: weather.TransportError, Op: op, Err: err}
	}
}

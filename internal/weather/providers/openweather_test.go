package providers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/i474232898/weather-widget/internal/weather"
)

const currentBody = `{
	"dt": 1714564800,
	"timezone": 3600,
	"name": "London",
	"main": {"temp": 12.5, "humidity": 81},
	"wind": {"speed": 5},
	"weather": [{"icon": "04d"}, {"icon": "10d"}]
}`

const forecastBody = `{
	"list": [
		{"dt_txt": "2024-05-01 12:00:00", "main": {"temp": 10.5}, "weather": [{"icon": "10d"}]},
		{"dt_txt": "2024-05-01 15:00:00", "main": {"temp": 11.5}, "weather": [{"icon": "04d"}]},
		{"dt_txt": "2024-05-02 00:00:00", "main": {"temp": 6}, "weather": [{"icon": "13n"}]}
	]
}`

// fakeUpstream serves fixed bodies per path and counts hits.
func fakeUpstream(t *testing.T, status int, current, forecast string) (*httptest.Server, *int32) {
	t.Helper()
	var hits int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)

		q := r.URL.Query()
		if q.Get("appid") != "test-key" || q.Get("units") != "metric" || q.Get("q") == "" {
			t.Errorf("unexpected query %q", r.URL.RawQuery)
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		switch r.URL.Path {
		case "/data/2.5/weather":
			_, _ = w.Write([]byte(current))
		case "/data/2.5/forecast":
			_, _ = w.Write([]byte(forecast))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func newTestProvider(srv *httptest.Server) *OpenWeatherProvider {
	return NewOpenWeatherProvider(srv.Client(), "test-key", srv.URL+"/data/2.5/")
}

func TestFetchCurrent(t *testing.T) {
	srv, _ := fakeUpstream(t, http.StatusOK, currentBody, forecastBody)
	p := newTestProvider(srv)

	got, err := p.FetchCurrent(context.Background(), "London")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.Location != "London" {
		t.Fatalf("expected London, got %q", got.Location)
	}
	if got.Temperature != 13 {
		t.Fatalf("expected 12.5 to round to 13, got %d", got.Temperature)
	}
	if got.Humidity != 81 {
		t.Fatalf("expected humidity 81, got %d", got.Humidity)
	}
	if got.WindSpeed != 18 {
		t.Fatalf("expected 5 m/s to be 18 km/h, got %v", got.WindSpeed)
	}
	if got.IconCode != "04d" {
		t.Fatalf("expected first weather icon 04d, got %q", got.IconCode)
	}
	if _, offset := got.ObservedAt.Zone(); offset != 3600 {
		t.Fatalf("expected city offset 3600, got %d", offset)
	}
	if got.ObservedAt.Unix() != 1714564800 {
		t.Fatalf("unexpected observation time %v", got.ObservedAt)
	}
}

func TestFetchForecast(t *testing.T) {
	srv, _ := fakeUpstream(t, http.StatusOK, currentBody, forecastBody)
	p := newTestProvider(srv)

	got, err := p.FetchForecast(context.Background(), "London")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(got) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(got))
	}
	want := weather.ForecastEntry{Timestamp: "2024-05-01 15:00:00", Temperature: 11.5, ConditionCode: "04d"}
	if got[1] != want {
		t.Fatalf("expected %+v, got %+v", want, got[1])
	}
}

func TestFetchCityNotFound(t *testing.T) {
	body := `{"cod":"404","message":"city not found"}`
	srv, _ := fakeUpstream(t, http.StatusNotFound, body, body)
	p := newTestProvider(srv)

	_, err := p.FetchCurrent(context.Background(), "Atlantis")

	var fe *weather.FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("expected *FetchError, got %v", err)
	}
	if fe.Kind != weather.CityNotFound || fe.StatusCode != http.StatusNotFound {
		t.Fatalf("expected CityNotFound/404, got %s/%d", fe.Kind, fe.StatusCode)
	}
	if fe.Message != "city not found" {
		t.Fatalf("expected upstream message, got %q", fe.Message)
	}
	if !errors.Is(err, weather.ErrFetchFailed) {
		t.Fatal("expected ErrFetchFailed to match")
	}
}

func TestFetchProviderError(t *testing.T) {
	srv, _ := fakeUpstream(t, http.StatusUnauthorized, `{"cod":401,"message":"Invalid API key"}`, ``)
	p := newTestProvider(srv)

	_, err := p.FetchCurrent(context.Background(), "London")
	if !weather.IsKind(err, weather.ProviderError) {
		t.Fatalf("expected ProviderError, got %v", err)
	}
}

func TestFetchMalformedPayloads(t *testing.T) {
	cases := map[string]string{
		"invalid json":    `{"main":`,
		"missing main":    `{"name":"London","wind":{"speed":1},"weather":[{"icon":"01d"}]}`,
		"missing temp":    `{"name":"London","main":{"humidity":5},"wind":{"speed":1},"weather":[{"icon":"01d"}]}`,
		"empty weather":   `{"name":"London","main":{"temp":1,"humidity":5},"wind":{"speed":1},"weather":[]}`,
		"missing wind":    `{"name":"London","main":{"temp":1,"humidity":5},"weather":[{"icon":"01d"}]}`,
		"missing name":    `{"main":{"temp":1,"humidity":5},"wind":{"speed":1},"weather":[{"icon":"01d"}]}`,
		"wrong temp type": `{"name":"London","main":{"temp":"hot","humidity":5},"wind":{"speed":1},"weather":[{"icon":"01d"}]}`,
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			srv, _ := fakeUpstream(t, http.StatusOK, body, forecastBody)
			p := newTestProvider(srv)

			_, err := p.FetchCurrent(context.Background(), "London")
			if !weather.IsKind(err, weather.ParseError) {
				t.Fatalf("expected ParseError, got %v", err)
			}
		})
	}
}

func TestFetchForecastMalformedPayloads(t *testing.T) {
	cases := map[string]string{
		"empty list":      `{"list":[]}`,
		"missing list":    `{}`,
		"missing dt_txt":  `{"list":[{"main":{"temp":1},"weather":[{"icon":"01d"}]}]}`,
		"missing weather": `{"list":[{"dt_txt":"2024-05-01 00:00:00","main":{"temp":1}}]}`,
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			srv, _ := fakeUpstream(t, http.StatusOK, currentBody, body)
			p := newTestProvider(srv)

			_, err := p.FetchForecast(context.Background(), "London")
			if !weather.IsKind(err, weather.ParseError) {
				t.Fatalf("expected ParseError, got %v", err)
			}
		})
	}
}

func TestFetchTransportError(t *testing.T) {
	srv, _ := fakeUpstream(t, http.StatusOK, currentBody, forecastBody)
	p := newTestProvider(srv)
	srv.Close()

	_, err := p.FetchCurrent(context.Background(), "London")
	if !weather.IsKind(err, weather.TransportError) {
		t.Fatalf("expected TransportError, got %v", err)
	}
}

func TestFetchWithoutAPIKeyMakesNoRequest(t *testing.T) {
	srv, hits := fakeUpstream(t, http.StatusOK, currentBody, forecastBody)
	p := NewOpenWeatherProvider(srv.Client(), "", srv.URL+"/data/2.5")

	_, err := p.FetchCurrent(context.Background(), "London")
	if !weather.IsKind(err, weather.ProviderError) {
		t.Fatalf("expected ProviderError, got %v", err)
	}
	if atomic.LoadInt32(hits) != 0 {
		t.Fatalf("expected no upstream request, got %d", *hits)
	}
}

func TestCircuitBreakerOpensOnServerErrors(t *testing.T) {
	srv, hits := fakeUpstream(t, http.StatusInternalServerError, `{"message":"boom"}`, ``)
	p := newTestProvider(srv)

	for i := 0; i < 6; i++ {
		if _, err := p.FetchCurrent(context.Background(), "London"); !weather.IsKind(err, weather.ProviderError) {
			t.Fatalf("attempt %d: expected ProviderError, got %v", i, err)
		}
	}

	_, err := p.FetchCurrent(context.Background(), "London")
	var fe *weather.FetchError
	if !errors.As(err, &fe) || fe.Message != "circuit breaker open" {
		t.Fatalf("expected open circuit, got %v", err)
	}
	if got := atomic.LoadInt32(hits); got != 6 {
		t.Fatalf("expected 6 upstream hits before the circuit opened, got %d", got)
	}
}

func TestCircuitBreakerIgnoresNotFound(t *testing.T) {
	body := `{"cod":"404","message":"city not found"}`
	srv, hits := fakeUpstream(t, http.StatusNotFound, body, body)
	p := newTestProvider(srv)

	for i := 0; i < 10; i++ {
		if _, err := p.FetchCurrent(context.Background(), "Atlantis"); !weather.IsKind(err, weather.CityNotFound) {
			t.Fatalf("attempt %d: expected CityNotFound, got %v", i, err)
		}
	}
	if got := atomic.LoadInt32(hits); got != 10 {
		t.Fatalf("expected every request to reach upstream, got %d", got)
	}
}

package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"

	"github.com/bassaaaa/home-clock/internal/weather"
)

// ForecastDays is the number of days requested; two days always cover the
// next four hours.
const ForecastDays = 2

const defaultWeatherAPIURL = "https://api.weatherapi.com/v1/forecast.json"

// WeatherAPIProvider implements weather.Provider for WeatherAPI.com.
type WeatherAPIProvider struct {
	name    string
	apiKey  string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

// Option customizes a WeatherAPIProvider.
type Option func(*WeatherAPIProvider)

// WithBaseURL points the provider at another endpoint (tests, proxies).
func WithBaseURL(u string) Option {
	return func(p *WeatherAPIProvider) { p.baseURL = u }
}

// WithBackoff overrides the retry schedule.
func WithBackoff(b BackoffConfig) Option {
	return func(p *WeatherAPIProvider) { p.httpCfg.Backoff = b }
}

func NewWeatherAPIProvider(client *http.Client, apiKey string, opts ...Option) *WeatherAPIProvider {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "weatherapi",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	p := &WeatherAPIProvider{
		name:    "weatherapi",
		apiKey:  apiKey,
		baseURL: defaultWeatherAPIURL,
		httpCfg: HTTPClientConfig{
			Client: client,
			Backoff: BackoffConfig{
				MaxRetries:      3,
				InitialInterval: 500 * time.Millisecond,
				MaxInterval:     5 * time.Second,
			},
		},
		circuit: cb,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *WeatherAPIProvider) Name() string {
	return p.name
}

// Fetch downloads the forecast for loc. Decode failures of a malformed
// payload are returned here, never further down the pipeline.
func (p *WeatherAPIProvider) Fetch(ctx context.Context, loc weather.Location) (weather.RawResponse, error) {
	if p.apiKey == "" {
		return weather.RawResponse{}, fmt.Errorf("weatherapi: %w", ErrMissingAPIKey)
	}

	buildRequest := func(ctx context.Context) (*http.Request, error) {
		values := url.Values{}
		values.Set("key", p.apiKey)
		values.Set("q", loc.Query)
		values.Set("days", fmt.Sprint(ForecastDays))

		u := fmt.Sprintf("%s?%s", p.baseURL, values.Encode())
		return http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	}

	resp, err := doRequestWithResilience(ctx, p.httpCfg, p.circuit, buildRequest)
	if err != nil {
		return weather.RawResponse{}, err
	}
	defer resp.Body.Close()

	var payload weather.RawResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return weather.RawResponse{}, fmt.Errorf("weatherapi: decode forecast: %w", err)
	}
	if payload.Location.LocaltimeEpoch == 0 {
		return weather.RawResponse{}, fmt.Errorf("weatherapi: payload missing location.localtime_epoch")
	}

	return payload, nil
}

// Package openweather provides a client for the OpenWeatherMap air
// pollution API.
package openweather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rotisserie/eris"
	"github.com/sony/gobreaker"
)

// Client defines the air-quality operations the weather fetcher needs.
type Client interface {
	// PM10 returns the current coarse particulate concentration in µg/m³.
	PM10(ctx context.Context, lat, lon float64) (float64, error)
}

type airPollutionResponse struct {
	List []struct {
		Components struct {
			PM10 float64 `json:"pm10"`
		} `json:"components"`
	} `json:"list"`
}

// Option configures the OpenWeather client.
type Option func(*httpClient)

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(url string) Option {
	return func(c *httpClient) {
		c.baseURL = url
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

type httpClient struct {
	apiKey  string
	baseURL string
	http    *http.Client
	breaker *gobreaker.CircuitBreaker
}

// NewClient creates a new OpenWeatherMap air pollution client.
func NewClient(apiKey string, opts ...Option) Client {
	c := &httpClient{
		apiKey:  apiKey,
		baseURL: "https://api.openweathermap.org/data/2.5",
		http: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	c.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "openweather",
		Timeout: 60 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})
	return c
}

func (c *httpClient) PM10(ctx context.Context, lat, lon float64) (float64, error) {
	out, err := c.breaker.Execute(func() (interface{}, error) {
		q := url.Values{}
		q.Set("lat", fmt.Sprintf("%f", lat))
		q.Set("lon", fmt.Sprintf("%f", lon))
		q.Set("appid", c.apiKey)

		reqURL := fmt.Sprintf("%s/air_pollution?%s", c.baseURL, q.Encode())
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return nil, eris.Wrap(err, "openweather: create request")
		}

		resp, err := c.http.Do(req)
		if err != nil {
			return nil, eris.Wrap(err, "openweather: request failed")
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, eris.Wrap(err, "openweather: read response body")
		}
		if resp.StatusCode != http.StatusOK {
			return nil, eris.Errorf("openweather: unexpected status %d: %s", resp.StatusCode, string(body))
		}

		var result airPollutionResponse
		if err := json.Unmarshal(body, &result); err != nil {
			return nil, eris.Wrap(err, "openweather: unmarshal response")
		}
		if len(result.List) == 0 {
			return nil, eris.New("openweather: air pollution returned no readings")
		}
		return result.List[0].Components.PM10, nil
	})
	if err != nil {
		return 0, err
	}
	return out.(float64), nil
}

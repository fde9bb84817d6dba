// Package kma provides a client for the Korea Meteorological Administration
// short-term forecast open API.
package kma

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rotisserie/eris"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"
)

// Values at or beyond ±900 are KMA missing-data markers.
const missingThreshold = 900.0

// Client defines the KMA forecast operations the weather fetcher needs.
type Client interface {
	// Nowcast fetches the ultra-short-range observation for the grid cell
	// containing lat/lon.
	Nowcast(ctx context.Context, lat, lon float64) (*Observation, error)
	// ForecastRainProb fetches the short-range forecast and returns the
	// average precipitation probability [0,1] over the rest of today.
	ForecastRainProb(ctx context.Context, lat, lon float64) (float64, error)
}

// Observation holds the nowcast categories the recommender consumes.
type Observation struct {
	Temp       float64 // T1H, °C
	RainfallMM float64 // RN1, mm over the past hour
	PrecipType int     // PTY code, 0 = none
	Humidity   float64 // REH, %
	WindSpeed  float64 // WSD, m/s
}

type apiResponse struct {
	Response struct {
		Body struct {
			Items struct {
				Item []apiItem `json:"item"`
			} `json:"items"`
		} `json:"body"`
	} `json:"response"`
}

type apiItem struct {
	Category  string `json:"category"`
	ObsValue  string `json:"obsrValue"`
	FcstDate  string `json:"fcstDate"`
	FcstTime  string `json:"fcstTime"`
	FcstValue string `json:"fcstValue"`
}

// Option configures the KMA client.
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

// WithClock overrides the wall clock used for base-time computation.
func WithClock(clock clockwork.Clock) Option {
	return func(c *httpClient) {
		c.clock = clock
	}
}

// WithRateLimit overrides the default request rate limit.
func WithRateLimit(limiter *rate.Limiter) Option {
	return func(c *httpClient) {
		c.limiter = limiter
	}
}

type httpClient struct {
	serviceKey string
	baseURL    string
	http       *http.Client
	clock      clockwork.Clock
	limiter    *rate.Limiter
	breaker    *gobreaker.CircuitBreaker
}

// NewClient creates a new KMA forecast client.
func NewClient(serviceKey string, opts ...Option) Client {
	c := &httpClient{
		serviceKey: serviceKey,
		baseURL:    "https://apis.data.go.kr/1360000/VilageFcstInfoService_2.0",
		http: &http.Client{
			Timeout: 10 * time.Second,
		},
		clock:   clockwork.NewRealClock(),
		limiter: rate.NewLimiter(rate.Limit(5), 10),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "kma",
		Timeout: 60 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})
	return c
}

// nowcastBase returns base_date/base_time for the ultra-short-range
// observation: the top of the hour, ten minutes ago.
func (c *httpClient) nowcastBase() (string, string) {
	t := c.clock.Now().Add(-10 * time.Minute)
	return t.Format("20060102"), t.Format("1500")
}

// Short-range forecasts are issued at fixed hours and become available
// about 45 minutes later.
var forecastBaseHours = []int{2, 5, 8, 11, 14, 17, 20, 23}

func (c *httpClient) forecastBase() (string, string) {
	t := c.clock.Now().Add(-45 * time.Minute)
	base := -1
	for _, h := range forecastBaseHours {
		if h <= t.Hour() {
			base = h
		}
	}
	if base < 0 {
		base = 23
		t = t.AddDate(0, 0, -1)
	}
	return t.Format("20060102"), fmt.Sprintf("%02d00", base)
}

func missing(v float64) bool {
	return v >= missingThreshold || v <= -missingThreshold
}

func (c *httpClient) get(ctx context.Context, endpoint, baseDate, baseTime string, nx, ny, numRows int) (*apiResponse, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, eris.Wrap(err, "kma: rate limit wait")
	}

	out, err := c.breaker.Execute(func() (interface{}, error) {
		q := url.Values{}
		q.Set("serviceKey", c.serviceKey)
		q.Set("numOfRows", fmt.Sprintf("%d", numRows))
		q.Set("pageNo", "1")
		q.Set("dataType", "JSON")
		q.Set("base_date", baseDate)
		q.Set("base_time", baseTime)
		q.Set("nx", fmt.Sprintf("%d", nx))
		q.Set("ny", fmt.Sprintf("%d", ny))

		reqURL := fmt.Sprintf("%s/%s?%s", c.baseURL, endpoint, q.Encode())
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return nil, eris.Wrap(err, "kma: create request")
		}

		resp, err := c.http.Do(req)
		if err != nil {
			return nil, eris.Wrapf(err, "kma: %s request failed", endpoint)
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, eris.Wrap(err, "kma: read response body")
		}
		if resp.StatusCode != http.StatusOK {
			return nil, eris.Errorf("kma: %s unexpected status %d: %s", endpoint, resp.StatusCode, string(body))
		}

		var result apiResponse
		if err := json.Unmarshal(body, &result); err != nil {
			return nil, eris.Wrapf(err, "kma: unmarshal %s response", endpoint)
		}
		return &result, nil
	})
	if err != nil {
		return nil, err
	}
	return out.(*apiResponse), nil
}

func (c *httpClient) Nowcast(ctx context.Context, lat, lon float64) (*Observation, error) {
	nx, ny := LatLonToGrid(lat, lon)
	baseDate, baseTime := c.nowcastBase()

	resp, err := c.get(ctx, "getUltraSrtNcst", baseDate, baseTime, nx, ny, 100)
	if err != nil {
		return nil, err
	}
	items := resp.Response.Body.Items.Item
	if len(items) == 0 {
		return nil, eris.New("kma: nowcast returned no items")
	}

	obs := &Observation{}
	for _, item := range items {
		v, err := strconv.ParseFloat(item.ObsValue, 64)
		if err != nil || missing(v) {
			continue
		}
		switch item.Category {
		case "T1H":
			obs.Temp = v
		case "RN1":
			obs.RainfallMM = v
		case "PTY":
			obs.PrecipType = int(v)
		case "REH":
			obs.Humidity = v
		case "WSD":
			obs.WindSpeed = v
		}
	}
	return obs, nil
}

func (c *httpClient) ForecastRainProb(ctx context.Context, lat, lon float64) (float64, error) {
	nx, ny := LatLonToGrid(lat, lon)
	baseDate, baseTime := c.forecastBase()

	resp, err := c.get(ctx, "getVilageFcst", baseDate, baseTime, nx, ny, 1000)
	if err != nil {
		return 0, err
	}

	now := c.clock.Now()
	today := now.Format("20060102")
	nextSlot := fmt.Sprintf("%02d00", now.Hour()+1)

	var sum float64
	var count int
	for _, item := range resp.Response.Body.Items.Item {
		if item.Category != "POP" || item.FcstDate != today || item.FcstTime < nextSlot {
			continue
		}
		pop, err := strconv.ParseFloat(item.FcstValue, 64)
		if err != nil || pop < 0 || missing(pop) {
			continue
		}
		sum += pop
		count++
	}
	if count == 0 {
		return 0, nil
	}
	return sum / float64(count) / 100.0, nil
}

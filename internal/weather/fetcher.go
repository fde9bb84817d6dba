// Package weather resolves a point-in-time weather snapshot for a location,
// degrading to neutral defaults whenever a provider is unavailable.
package weather

import (
	"context"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/silverbridge/seniorfit-cli/internal/model"
	"github.com/silverbridge/seniorfit-cli/pkg/kma"
	"github.com/silverbridge/seniorfit-cli/pkg/openweather"
)

// Daytime is 06:00 (inclusive) to 20:00 (exclusive) local time.
const (
	daytimeStartHour = 6
	daytimeEndHour   = 20
)

// Fetcher assembles a WeatherSnapshot from the KMA forecast API and the
// OpenWeatherMap air pollution API. Either client may be nil, in which
// case its fields keep neutral defaults.
type Fetcher struct {
	kma   kma.Client
	air   openweather.Client
	clock clockwork.Clock
}

type Option func(*Fetcher)

// WithClock overrides the wall clock used for the daytime flag.
func WithClock(c clockwork.Clock) Option {
	return func(f *Fetcher) { f.clock = c }
}

func NewFetcher(kmaClient kma.Client, airClient openweather.Client, opts ...Option) *Fetcher {
	f := &Fetcher{
		kma:   kmaClient,
		air:   airClient,
		clock: clockwork.NewRealClock(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch queries all providers concurrently and merges their readings over
// a neutral baseline. Provider failures are logged and absorbed; Fetch
// itself never fails.
func (f *Fetcher) Fetch(ctx context.Context, loc model.Location) model.WeatherSnapshot {
	hour := f.clock.Now().Hour()
	snapshot := model.NeutralSnapshot(hour >= daytimeStartHour && hour < daytimeEndHour)

	var (
		obs      *kma.Observation
		rainProb float64
		pm10     float64 = -1
	)

	g, gctx := errgroup.WithContext(ctx)
	if f.kma != nil {
		g.Go(func() error {
			o, err := f.kma.Nowcast(gctx, loc.Lat, loc.Lon)
			if err != nil {
				zap.L().Warn("weather: nowcast unavailable", zap.Error(err))
				return nil
			}
			obs = o
			return nil
		})
		g.Go(func() error {
			pop, err := f.kma.ForecastRainProb(gctx, loc.Lat, loc.Lon)
			if err != nil {
				zap.L().Warn("weather: forecast unavailable", zap.Error(err))
				return nil
			}
			rainProb = pop
			return nil
		})
	}
	if f.air != nil {
		g.Go(func() error {
			v, err := f.air.PM10(gctx, loc.Lat, loc.Lon)
			if err != nil {
				zap.L().Warn("weather: air quality unavailable", zap.Error(err))
				return nil
			}
			pm10 = v
			return nil
		})
	}
	_ = g.Wait()

	if obs != nil {
		snapshot.Temp = obs.Temp
		snapshot.PrecipType = obs.PrecipType
		snapshot.WindSpeed = obs.WindSpeed
		// Ongoing precipitation implies a high chance of rain even before
		// the forecast is consulted.
		if obs.PrecipType != model.PrecipNone {
			snapshot.RainProb = 0.8
		} else if obs.RainfallMM > 0 {
			snapshot.RainProb = 0.7
		}
	}
	if rainProb > snapshot.RainProb {
		snapshot.RainProb = rainProb
	}
	if pm10 >= 0 {
		snapshot.PM10 = pm10
	}

	zap.L().Debug("weather: snapshot resolved",
		zap.Float64("temp", snapshot.Temp),
		zap.Float64("rain_prob", snapshot.RainProb),
		zap.Float64("pm10", snapshot.PM10),
		zap.Bool("daytime", snapshot.Daytime))
	return snapshot
}

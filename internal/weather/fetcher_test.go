package weather

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"

	"github.com/silverbridge/seniorfit-cli/internal/model"
	"github.com/silverbridge/seniorfit-cli/pkg/kma"
)

type fakeKMA struct {
	obs      *kma.Observation
	obsErr   error
	rainProb float64
	rainErr  error
}

func (f *fakeKMA) Nowcast(context.Context, float64, float64) (*kma.Observation, error) {
	return f.obs, f.obsErr
}

func (f *fakeKMA) ForecastRainProb(context.Context, float64, float64) (float64, error) {
	return f.rainProb, f.rainErr
}

type fakeAir struct {
	pm10 float64
	err  error
}

func (f *fakeAir) PM10(context.Context, float64, float64) (float64, error) {
	return f.pm10, f.err
}

func dayClock() clockwork.Clock {
	return clockwork.NewFakeClockAt(time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC))
}

func nightClock() clockwork.Clock {
	return clockwork.NewFakeClockAt(time.Date(2026, 9, 1, 22, 0, 0, 0, time.UTC))
}

var seoul = model.Location{Lat: 37.5665, Lon: 126.9780}

func TestFetchNoProvidersYieldsNeutralSnapshot(t *testing.T) {
	f := NewFetcher(nil, nil, WithClock(dayClock()))

	got := f.Fetch(context.Background(), seoul)

	assert.Equal(t, model.NeutralSnapshot(true), got)
}

func TestFetchNightfall(t *testing.T) {
	f := NewFetcher(nil, nil, WithClock(nightClock()))

	got := f.Fetch(context.Background(), seoul)
	assert.False(t, got.Daytime)
}

func TestFetchMergesAllProviders(t *testing.T) {
	f := NewFetcher(
		&fakeKMA{obs: &kma.Observation{Temp: 3.5, PrecipType: 0, WindSpeed: 6.0}, rainProb: 0.4},
		&fakeAir{pm10: 90},
		WithClock(dayClock()),
	)

	got := f.Fetch(context.Background(), seoul)

	assert.InDelta(t, 3.5, got.Temp, 1e-9)
	assert.InDelta(t, 6.0, got.WindSpeed, 1e-9)
	assert.InDelta(t, 0.4, got.RainProb, 1e-9)
	assert.InDelta(t, 90.0, got.PM10, 1e-9)
}

func TestFetchOngoingPrecipitationDominatesForecast(t *testing.T) {
	f := NewFetcher(
		&fakeKMA{obs: &kma.Observation{Temp: 12, PrecipType: model.PrecipRain}, rainProb: 0.3},
		nil,
		WithClock(dayClock()),
	)

	got := f.Fetch(context.Background(), seoul)
	assert.InDelta(t, 0.8, got.RainProb, 1e-9)
}

func TestFetchRecentRainfallWithoutPrecipType(t *testing.T) {
	f := NewFetcher(
		&fakeKMA{obs: &kma.Observation{Temp: 12, RainfallMM: 1.5}},
		nil,
		WithClock(dayClock()),
	)

	got := f.Fetch(context.Background(), seoul)
	assert.InDelta(t, 0.7, got.RainProb, 1e-9)
}

func TestFetchForecastRainProbWinsWhenHigher(t *testing.T) {
	f := NewFetcher(
		&fakeKMA{obs: &kma.Observation{Temp: 12, RainfallMM: 1.5}, rainProb: 0.9},
		nil,
		WithClock(dayClock()),
	)

	got := f.Fetch(context.Background(), seoul)
	assert.InDelta(t, 0.9, got.RainProb, 1e-9)
}

func TestFetchProviderFailuresDegradeToNeutral(t *testing.T) {
	boom := errors.New("provider down")
	f := NewFetcher(
		&fakeKMA{obsErr: boom, rainErr: boom},
		&fakeAir{err: boom},
		WithClock(dayClock()),
	)

	got := f.Fetch(context.Background(), seoul)
	assert.Equal(t, model.NeutralSnapshot(true), got)
}

func TestFetchAirQualityFailureKeepsDefaultPM10(t *testing.T) {
	f := NewFetcher(
		&fakeKMA{obs: &kma.Observation{Temp: 25}},
		&fakeAir{err: errors.New("quota exceeded")},
		WithClock(dayClock()),
	)

	got := f.Fetch(context.Background(), seoul)
	assert.InDelta(t, 25.0, got.Temp, 1e-9)
	assert.InDelta(t, 50.0, got.PM10, 1e-9)
}

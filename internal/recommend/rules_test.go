package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/silverbridge/seniorfit-cli/internal/model"
)

func cand(name string, indoor bool, intensity model.Intensity) model.Candidate {
	return model.Candidate{
		FacilityName:  name,
		ProgramName:   name + " program",
		SportCategory: "walking",
		Indoor:        indoor,
		Intensity:     intensity,
	}
}

func TestFilterByHealth_KneePainDropsHighIntensity(t *testing.T) {
	in := []model.Candidate{
		cand("low", true, model.IntensityLow),
		cand("high", true, model.IntensityHigh),
		cand("medium", false, model.IntensityMedium),
	}
	profile := model.UserProfile{HealthIssues: []string{model.IssueKneePain}}

	out := FilterByHealth(in, profile)
	require.Len(t, out, 2)
	for _, c := range out {
		assert.NotEqual(t, model.IntensityHigh, c.Intensity)
	}
}

func TestFilterByHealth_NoIssuesKeepsAll(t *testing.T) {
	in := []model.Candidate{
		cand("a", true, model.IntensityHigh),
		cand("b", false, model.IntensityLow),
	}
	out := FilterByHealth(in, model.UserProfile{})
	assert.Len(t, out, 2)
}

func TestFilterByWeather_HighRainKeepsOnlyIndoor(t *testing.T) {
	in := []model.Candidate{
		cand("indoor-low", true, model.IntensityLow),
		cand("outdoor-high", false, model.IntensityHigh),
	}
	weather := model.WeatherSnapshot{Temp: 20, RainProb: 0.8, PM10: 50}

	out := FilterByWeather(in, weather)
	require.Len(t, out, 1)
	assert.Equal(t, "indoor-low", out[0].FacilityName)
}

func TestFilterByWeather_RainAtThresholdKeepsOutdoor(t *testing.T) {
	in := []model.Candidate{cand("outdoor", false, model.IntensityLow)}
	weather := model.WeatherSnapshot{Temp: 20, RainProb: 0.6, PM10: 50}
	assert.Len(t, FilterByWeather(in, weather), 1)
}

func TestFilterByWeather_SeverePM10DropsAllOutdoor(t *testing.T) {
	in := []model.Candidate{
		cand("outdoor-low", false, model.IntensityLow),
		cand("indoor", true, model.IntensityHigh),
	}
	weather := model.WeatherSnapshot{Temp: 20, PM10: 151}

	out := FilterByWeather(in, weather)
	require.Len(t, out, 1)
	assert.Equal(t, "indoor", out[0].FacilityName)
}

func TestFilterByWeather_ElevatedPM10DropsOnlyOutdoorHigh(t *testing.T) {
	in := []model.Candidate{
		cand("outdoor-low", false, model.IntensityLow),
		cand("outdoor-high", false, model.IntensityHigh),
	}
	weather := model.WeatherSnapshot{Temp: 20, PM10: 81}

	out := FilterByWeather(in, weather)
	require.Len(t, out, 1)
	assert.Equal(t, "outdoor-low", out[0].FacilityName)
}

func TestFilterByWeather_TemperatureBands(t *testing.T) {
	in := []model.Candidate{
		cand("outdoor-low", false, model.IntensityLow),
		cand("outdoor-high", false, model.IntensityHigh),
		cand("indoor", true, model.IntensityHigh),
	}

	// Extreme heat: all outdoor dropped.
	out := FilterByWeather(in, model.WeatherSnapshot{Temp: 30, PM10: 50})
	require.Len(t, out, 1)
	assert.Equal(t, "indoor", out[0].FacilityName)

	// Extreme cold: all outdoor dropped.
	out = FilterByWeather(in, model.WeatherSnapshot{Temp: -5, PM10: 50})
	assert.Len(t, out, 1)

	// Moderate heat: only outdoor high dropped.
	out = FilterByWeather(in, model.WeatherSnapshot{Temp: 28, PM10: 50})
	require.Len(t, out, 2)

	// Freezing: only outdoor high dropped.
	out = FilterByWeather(in, model.WeatherSnapshot{Temp: 0, PM10: 50})
	assert.Len(t, out, 2)

	// Mild day: nothing dropped.
	out = FilterByWeather(in, model.WeatherSnapshot{Temp: 20, PM10: 50})
	assert.Len(t, out, 3)
}

func TestFilterByWeather_BranchesAccumulate(t *testing.T) {
	in := []model.Candidate{
		cand("outdoor-high", false, model.IntensityHigh),
		cand("outdoor-low", false, model.IntensityLow),
		cand("indoor", true, model.IntensityLow),
	}
	// Elevated PM10 removes outdoor-high, freezing then removes nothing
	// extra beyond high, rain removes the rest of outdoor.
	weather := model.WeatherSnapshot{Temp: 0, RainProb: 0.7, PM10: 90}
	out := FilterByWeather(in, weather)
	require.Len(t, out, 1)
	assert.Equal(t, "indoor", out[0].FacilityName)
}

package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/silverbridge/seniorfit-cli/internal/model"
)

func TestDistanceScore_LinearDecay(t *testing.T) {
	assert.InDelta(t, 1.0, distanceScore(0.0), 0.001)
	assert.InDelta(t, 0.5, distanceScore(1.5), 0.001)
	assert.InDelta(t, 0.0, distanceScore(3.0), 0.001)
	// Saturates past 3 km even though the search radius can reach 20 km.
	assert.InDelta(t, 0.0, distanceScore(18.0), 0.001)
}

func TestGoalMatchScore_SingleMatch(t *testing.T) {
	table := DefaultGoalTable()
	s := goalMatchScore("walking", []string{model.GoalBloodPressure}, table)
	assert.InDelta(t, 0.7, s, 0.001)
}

func TestGoalMatchScore_CappedAtOne(t *testing.T) {
	table := DefaultGoalTable()
	// walking serves both blood_pressure and weight: 0.7+0.7 capped to 1.0.
	s := goalMatchScore("walking", []string{model.GoalBloodPressure, model.GoalWeight}, table)
	assert.InDelta(t, 1.0, s, 0.001)
}

func TestGoalMatchScore_NoMatch(t *testing.T) {
	table := DefaultGoalTable()
	assert.Equal(t, 0.0, goalMatchScore("archery", []string{model.GoalWeight}, table))
	assert.Equal(t, 0.0, goalMatchScore("walking", nil, table))
}

func TestWeatherSuitabilityScore_IndoorRisesWithBadness(t *testing.T) {
	clear := model.WeatherSnapshot{RainProb: 0, PM10: 0}
	foul := model.WeatherSnapshot{RainProb: 1.0, PM10: 100}

	assert.InDelta(t, 0.5, weatherSuitabilityScore(true, clear), 0.001)
	assert.InDelta(t, 1.0, weatherSuitabilityScore(true, foul), 0.001)
}

func TestWeatherSuitabilityScore_OutdoorFallsWithBadness(t *testing.T) {
	clear := model.WeatherSnapshot{RainProb: 0, PM10: 0}
	foul := model.WeatherSnapshot{RainProb: 1.0, PM10: 200}

	assert.InDelta(t, 1.0, weatherSuitabilityScore(false, clear), 0.001)
	assert.InDelta(t, 0.0, weatherSuitabilityScore(false, foul), 0.001)
}

func TestSeniorFriendlyScore(t *testing.T) {
	assert.Equal(t, 1.0, seniorFriendlyScore(true))
	assert.Equal(t, 0.5, seniorFriendlyScore(false))
}

func TestIntensityFitScore_BaseValues(t *testing.T) {
	assert.InDelta(t, 0.9, intensityFitScore(model.IntensityLow, model.Age65to69, nil), 0.001)
	assert.InDelta(t, 0.7, intensityFitScore(model.IntensityMedium, model.Age65to69, nil), 0.001)
	assert.InDelta(t, 0.5, intensityFitScore(model.IntensityHigh, model.Age65to69, nil), 0.001)
}

func TestIntensityFitScore_CardiovascularOverride(t *testing.T) {
	s := intensityFitScore(model.IntensityHigh, model.Age65to69, []string{model.IssueHypertension})
	assert.InDelta(t, 0.1, s, 0.001)

	s = intensityFitScore(model.IntensityHigh, model.Age65to69, []string{model.IssueHeartDisease})
	assert.InDelta(t, 0.1, s, 0.001)

	// Overrides only bite on high intensity.
	s = intensityFitScore(model.IntensityLow, model.Age65to69, []string{model.IssueHypertension})
	assert.InDelta(t, 0.9, s, 0.001)
}

func TestIntensityFitScore_AgeOverride(t *testing.T) {
	assert.InDelta(t, 0.2, intensityFitScore(model.IntensityHigh, model.Age70to74, nil), 0.001)
	assert.InDelta(t, 0.2, intensityFitScore(model.IntensityHigh, model.Age75Plus, nil), 0.001)
	// Age override applies after the health override.
	s := intensityFitScore(model.IntensityHigh, model.Age75Plus, []string{model.IssueHypertension})
	assert.InDelta(t, 0.2, s, 0.001)
}

func TestComputeScore_AlwaysWithinBounds(t *testing.T) {
	weights := DefaultWeights()
	table := DefaultGoalTable()

	profiles := []model.UserProfile{
		{},
		{AgeGroup: model.Age75Plus, HealthIssues: []string{model.IssueHypertension, model.IssueKneePain}, Goals: []string{model.GoalWeight, model.GoalBloodPressure}},
	}
	weathers := []model.WeatherSnapshot{
		{Temp: 20},
		{Temp: 35, RainProb: 1.0, PM10: 300, WindSpeed: 20, PrecipType: model.PrecipRain},
		{Temp: -20},
	}
	candidates := []Located{
		{Candidate: model.Candidate{SportCategory: "walking", Indoor: true, Intensity: model.IntensityLow, SeniorFriendly: true}, DistanceKM: 0},
		{Candidate: model.Candidate{SportCategory: "strength", Indoor: false, Intensity: model.IntensityHigh}, DistanceKM: 19.5},
	}

	for _, p := range profiles {
		for _, w := range weathers {
			for _, c := range candidates {
				b := computeScore(c, p, w, weights, table)
				assert.GreaterOrEqual(t, b.Final, 0.0)
				assert.LessOrEqual(t, b.Final, 1.0)
				for _, sub := range []float64{b.Distance, b.GoalMatch, b.WeatherSuitability, b.SeniorFriendly, b.IntensityFit} {
					assert.GreaterOrEqual(t, sub, 0.0)
					assert.LessOrEqual(t, sub, 1.0)
				}
			}
		}
	}
}

func TestWeights_ValidateDefault(t *testing.T) {
	require.NoError(t, DefaultWeights().Validate())
}

func TestWeights_ValidateRejectsBadSum(t *testing.T) {
	w := DefaultWeights()
	w.Distance = 0.5
	assert.Error(t, w.Validate())
}

func TestWeights_ValidateRejectsNegative(t *testing.T) {
	w := Weights{Distance: -0.1, GoalMatch: 0.45, WeatherSuitability: 0.25, SeniorFriendly: 0.2, IntensityFit: 0.2}
	assert.Error(t, w.Validate())
}

func TestWeights_ValidateNegativeMessageIsStable(t *testing.T) {
	w := Weights{Distance: -0.1, GoalMatch: 0.6, WeatherSuitability: 0.25, SeniorFriendly: 0.35, IntensityFit: -0.1}

	first := w.Validate()
	require.Error(t, first)
	assert.Contains(t, first.Error(), "[distance must be >= 0 intensity_fit must be >= 0]")

	// Same invalid config always reports the offenders in field order.
	for i := 0; i < 10; i++ {
		err := w.Validate()
		require.Error(t, err)
		assert.Equal(t, first.Error(), err.Error())
	}
}

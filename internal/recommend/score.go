package recommend

import (
	"fmt"
	"math"

	"github.com/rotisserie/eris"

	"github.com/silverbridge/seniorfit-cli/internal/geo"
	"github.com/silverbridge/seniorfit-cli/internal/model"
)

// distanceDecayKM is where the distance sub-score bottoms out. It saturates
// well inside the search radius on purpose: anything past a short walk
// scores the same, even when the radius had to stretch to 20 km.
const distanceDecayKM = 3.0

// goalMatchIncrement is added per matching category, capped at 1.0.
const goalMatchIncrement = 0.7

// Weights holds the fixed combination weights for the five sub-scores.
type Weights struct {
	Distance           float64 `yaml:"distance" mapstructure:"distance"`
	GoalMatch          float64 `yaml:"goal_match" mapstructure:"goal_match"`
	WeatherSuitability float64 `yaml:"weather_suitability" mapstructure:"weather_suitability"`
	SeniorFriendly     float64 `yaml:"senior_friendly" mapstructure:"senior_friendly"`
	IntensityFit       float64 `yaml:"intensity_fit" mapstructure:"intensity_fit"`
}

// DefaultWeights returns the standard weight set. Sums to 1.0.
func DefaultWeights() Weights {
	return Weights{
		Distance:           0.35,
		GoalMatch:          0.25,
		WeatherSuitability: 0.20,
		SeniorFriendly:     0.10,
		IntensityFit:       0.10,
	}
}

// Validate checks that every weight is non-negative and the set sums to 1.0.
func (w Weights) Validate() error {
	var errs []string
	for _, wt := range []struct {
		name  string
		value float64
	}{
		{"distance", w.Distance},
		{"goal_match", w.GoalMatch},
		{"weather_suitability", w.WeatherSuitability},
		{"senior_friendly", w.SeniorFriendly},
		{"intensity_fit", w.IntensityFit},
	} {
		if wt.value < 0 {
			errs = append(errs, fmt.Sprintf("%s must be >= 0", wt.name))
		}
	}
	if len(errs) > 0 {
		return eris.Errorf("recommend: invalid weights: %v", errs)
	}

	sum := w.Distance + w.GoalMatch + w.WeatherSuitability + w.SeniorFriendly + w.IntensityFit
	if math.Abs(sum-1.0) > 0.001 {
		return eris.Errorf("recommend: weights must sum to 1.0, got %.3f", sum)
	}
	return nil
}

// Breakdown holds the individual sub-scores and the final weighted score.
// Every component and the final score lie in [0,1].
type Breakdown struct {
	Distance           float64 `json:"distance"`
	GoalMatch          float64 `json:"goal_match"`
	WeatherSuitability float64 `json:"weather_suitability"`
	SeniorFriendly     float64 `json:"senior_friendly"`
	IntensityFit       float64 `json:"intensity_fit"`
	Final              float64 `json:"final"`
}

// Scored is a located candidate with its score breakdown.
type Scored struct {
	Located
	Breakdown Breakdown `json:"breakdown"`
}

// computeScore evaluates the five sub-scores for one candidate and combines
// them with the given weights.
func computeScore(c Located, profile model.UserProfile, weather model.WeatherSnapshot, weights Weights, goals GoalTable) Breakdown {
	b := Breakdown{
		Distance:           distanceScore(c.DistanceKM),
		GoalMatch:          goalMatchScore(c.SportCategory, profile.Goals, goals),
		WeatherSuitability: weatherSuitabilityScore(c.Indoor, weather),
		SeniorFriendly:     seniorFriendlyScore(c.SeniorFriendly),
		IntensityFit:       intensityFitScore(c.Intensity, profile.AgeGroup, profile.HealthIssues),
	}
	b.Final = weights.Distance*b.Distance +
		weights.GoalMatch*b.GoalMatch +
		weights.WeatherSuitability*b.WeatherSuitability +
		weights.SeniorFriendly*b.SeniorFriendly +
		weights.IntensityFit*b.IntensityFit
	return b
}

// distanceScore decays linearly from 1.0 at the door to 0.0 at
// distanceDecayKM and beyond.
func distanceScore(distKM float64) float64 {
	return geo.LinearScale(distKM, 0.0, distanceDecayKM, true)
}

// goalMatchScore sums a fixed increment per goal whose category whitelist
// contains the candidate's sport category, capped at 1.0.
func goalMatchScore(category string, goals []string, table GoalTable) float64 {
	score := 0.0
	for _, goal := range goals {
		if table.matches(goal, category) {
			score += goalMatchIncrement
		}
	}
	return math.Min(score, 1.0)
}

// weatherSuitabilityScore rewards indoor candidates as conditions worsen and
// penalizes outdoor ones by the same measure. Badness blends rain
// probability and PM10.
func weatherSuitabilityScore(indoor bool, weather model.WeatherSnapshot) float64 {
	badness := 0.5*weather.RainProb + 0.5*(weather.PM10/100.0)
	if indoor {
		return math.Min(1.0, 0.5+badness)
	}
	return math.Max(0.0, 1.0-badness)
}

func seniorFriendlyScore(seniorFriendly bool) float64 {
	if seniorFriendly {
		return 1.0
	}
	return 0.5
}

// intensityFitScore rates how well the program intensity suits the user's
// age band and health issues.
func intensityFitScore(intensity model.Intensity, age model.AgeGroup, issues []string) float64 {
	var base float64
	switch intensity {
	case model.IntensityLow:
		base = 0.9
	case model.IntensityMedium:
		base = 0.7
	default:
		base = 0.5
	}

	if intensity == model.IntensityHigh {
		for _, issue := range issues {
			if issue == model.IssueHypertension || issue == model.IssueHeartDisease {
				base = 0.1
			}
		}
		// Age override applies last, after any health override.
		if age == model.Age70to74 || age == model.Age75Plus {
			base = 0.2
		}
	}

	return math.Max(0.0, math.Min(1.0, base))
}

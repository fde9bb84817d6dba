// Package recommend implements the facility recommendation pipeline:
// rule filtering, adaptive radius search, weighted scoring, and assembly.
package recommend

import (
	"github.com/silverbridge/seniorfit-cli/internal/model"
)

// healthRule excludes candidates unsuitable for a given health issue.
// Additional issue rules follow the same shape: a tag gating a predicate.
type healthRule struct {
	issue    string
	excludes func(model.Candidate) bool
}

var healthRules = []healthRule{
	{
		issue:    model.IssueKneePain,
		excludes: func(c model.Candidate) bool { return c.Intensity == model.IntensityHigh },
	},
}

// FilterByHealth removes candidates a user's health issues rule out.
// Runs before the weather stage so health constraints narrow the pool first.
func FilterByHealth(candidates []model.Candidate, profile model.UserProfile) []model.Candidate {
	out := candidates
	for _, r := range healthRules {
		if !profile.HasIssue(r.issue) {
			continue
		}
		kept := make([]model.Candidate, 0, len(out))
		for _, c := range out {
			if !r.excludes(c) {
				kept = append(kept, c)
			}
		}
		out = kept
	}
	return out
}

// FilterByWeather removes outdoor candidates that current conditions make
// unsafe for an older adult. All applicable branches apply cumulatively.
func FilterByWeather(candidates []model.Candidate, weather model.WeatherSnapshot) []model.Candidate {
	out := candidates

	if weather.RainProb > 0.6 {
		out = dropOutdoor(out, false)
	}

	if weather.PM10 > 150 {
		out = dropOutdoor(out, false)
	} else if weather.PM10 > 80 {
		out = dropOutdoor(out, true)
	}

	if weather.Temp >= 30.0 || weather.Temp <= -5.0 {
		out = dropOutdoor(out, false)
	} else if weather.Temp >= 28.0 || weather.Temp <= 0.0 {
		out = dropOutdoor(out, true)
	}

	return out
}

// dropOutdoor removes outdoor candidates; with highOnly it removes only the
// high-intensity ones.
func dropOutdoor(candidates []model.Candidate, highOnly bool) []model.Candidate {
	kept := make([]model.Candidate, 0, len(candidates))
	for _, c := range candidates {
		if !c.Indoor && (!highOnly || c.Intensity == model.IntensityHigh) {
			continue
		}
		kept = append(kept, c)
	}
	return kept
}

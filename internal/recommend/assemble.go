package recommend

import (
	"sort"
	"strings"

	"github.com/silverbridge/seniorfit-cli/internal/model"
)

// Reason clause templates. Assembled per candidate; the generic sentence is
// used only when nothing else applies.
const (
	reasonKneePain     = "Chose low-impact options with your knee pain in mind."
	reasonHypertension = "A program built around low-to-medium intensity cardio and stretching that supports blood pressure management."
	reasonWeightGoal   = "Factored in the activity volume that helps with your weight goal."
	reasonIndoorPick   = "Prioritized indoor facilities given the current weather and air quality."
	reasonOutdoorPref  = "Reflects your preference for being active outdoors."
	reasonGeneric      = "A balanced pick weighing your age, health, distance, and today's weather."
)

// Assemble ranks scored candidates and produces the final recommendation
// list. Candidates without a program name are dropped before ranking — they
// pad the dataset but are never shown. Ties keep input order.
func Assemble(scored []Scored, profile model.UserProfile, weather model.WeatherSnapshot, topK int) []model.Recommendation {
	withProgram := make([]Scored, 0, len(scored))
	for _, s := range scored {
		if strings.TrimSpace(s.ProgramName) != "" {
			withProgram = append(withProgram, s)
		}
	}

	sort.SliceStable(withProgram, func(i, j int) bool {
		return withProgram[i].Breakdown.Final > withProgram[j].Breakdown.Final
	})

	if topK > 0 && len(withProgram) > topK {
		withProgram = withProgram[:topK]
	}

	out := make([]model.Recommendation, 0, len(withProgram))
	for _, s := range withProgram {
		out = append(out, model.Recommendation{
			FacilityID:    s.FacilityID,
			FacilityName:  s.FacilityName,
			ProgramName:   s.ProgramName,
			SportCategory: s.SportCategory,
			DistanceKM:    s.DistanceKM,
			Intensity:     s.Intensity,
			Indoor:        s.Indoor,
			Reason:        buildReason(s.Located, profile, weather),
			Score:         s.Breakdown.Final,
		})
	}
	return out
}

// buildReason generates the templated rationale for one result.
func buildReason(c Located, profile model.UserProfile, weather model.WeatherSnapshot) string {
	var pieces []string

	if profile.HasIssue(model.IssueKneePain) {
		pieces = append(pieces, reasonKneePain)
	}
	if profile.HasIssue(model.IssueHypertension) {
		pieces = append(pieces, reasonHypertension)
	}
	if profile.HasGoal(model.GoalWeight) {
		pieces = append(pieces, reasonWeightGoal)
	}

	if c.Indoor {
		if weather.RainProb > 0.5 || weather.PM10 > 80 {
			pieces = append(pieces, reasonIndoorPick)
		}
	} else {
		pieces = append(pieces, reasonOutdoorPref)
	}

	if len(pieces) == 0 {
		pieces = append(pieces, reasonGeneric)
	}
	return strings.Join(pieces, " ")
}

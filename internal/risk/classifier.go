// Package risk judges whether current weather is unsafe for outdoor
// activity for an older adult, and explains why.
package risk

import (
	"strings"

	"github.com/silverbridge/seniorfit-cli/internal/model"
)

// SafeMessage is returned when no danger rule fires.
const SafeMessage = "relatively safe weather for an older adult to head outside"

// Input bundles the weather snapshot with the caller-judged risk flags.
// Air quality is judged upstream (e.g. PM2.5 grade) and passed as a flag.
type Input struct {
	Snapshot          model.WeatherSnapshot
	HasChronicDisease bool
	AirQualityRisky   bool
}

// Verdict is the classifier output: a danger flag and a human-readable
// reason assembled from every rule that fired.
type Verdict struct {
	Dangerous bool   `json:"dangerous"`
	Reason    string `json:"reason"`
}

// rule pairs a predicate with the clause it contributes to the reason.
type rule struct {
	when   func(Input) bool
	clause string
}

// Clause texts, exported-adjacent so tests and callers can match on them.
const (
	ClausePrecipitation = "rain or snow falling"
	ClauseSevereWind    = "advisory-level severe wind"
	ClauseFallRiskWind  = "wind strong enough to raise fall risk for an older adult"
	ClauseExtremeHeat   = "advisory-level extreme heat"
	ClauseHeatRisk      = "heat high enough to raise heat-illness risk for an older adult"
	ClauseExtremeCold   = "advisory-level extreme cold"
	ClauseColdIceRisk   = "cold that raises hypothermia and ice risk for an older adult"
	ClauseWindChill     = "wind and cold combining into a much lower felt temperature"
	ClauseSlipFall      = "a high slip-and-fall risk for an older adult"
	ClausePoorAir       = "air quality too poor for outdoor activity"
	ClauseChronicHeat   = "heat that burdens an older adult with a chronic condition"
	ClauseChronicCold   = "cold that burdens an older adult with a chronic condition"
)

// rules is the ordered cumulative rule list. Every rule whose predicate
// holds contributes its clause; thresholds mirror KMA advisory levels,
// lowered where older adults are known to be at risk earlier.
var rules = []rule{
	{func(in Input) bool { return in.Snapshot.PrecipType != model.PrecipNone }, ClausePrecipitation},
	{func(in Input) bool { return in.Snapshot.WindSpeed >= 14.0 }, ClauseSevereWind},
	{func(in Input) bool { return in.Snapshot.WindSpeed >= 9.0 && in.Snapshot.WindSpeed < 14.0 }, ClauseFallRiskWind},
	{func(in Input) bool { return in.Snapshot.Temp >= 33.0 }, ClauseExtremeHeat},
	{func(in Input) bool { return in.Snapshot.Temp >= 30.0 && in.Snapshot.Temp < 33.0 }, ClauseHeatRisk},
	{func(in Input) bool { return in.Snapshot.Temp <= -12.0 }, ClauseExtremeCold},
	{func(in Input) bool { return in.Snapshot.Temp <= -5.0 && in.Snapshot.Temp > -12.0 }, ClauseColdIceRisk},
	{func(in Input) bool { return in.Snapshot.Temp <= 0.0 && in.Snapshot.WindSpeed >= 5.0 }, ClauseWindChill},
	{func(in Input) bool {
		return in.Snapshot.PrecipType != model.PrecipNone && (in.Snapshot.Temp <= 2.0 || in.Snapshot.WindSpeed >= 5.0)
	}, ClauseSlipFall},
	{func(in Input) bool { return in.AirQualityRisky }, ClausePoorAir},
	{func(in Input) bool {
		return in.HasChronicDisease && in.Snapshot.Temp >= 28.0 && in.Snapshot.Temp < 30.0
	}, ClauseChronicHeat},
	{func(in Input) bool {
		return in.HasChronicDisease && in.Snapshot.Temp > 0.0 && in.Snapshot.Temp <= 3.0
	}, ClauseChronicCold},
}

// Classify evaluates the danger rules in order and returns the verdict.
// Pure and total: never errors, any snapshot is acceptable.
func Classify(in Input) Verdict {
	var clauses []string
	seen := make(map[string]bool)
	for _, r := range rules {
		if !r.when(in) {
			continue
		}
		if seen[r.clause] {
			continue
		}
		seen[r.clause] = true
		clauses = append(clauses, r.clause)
	}

	if len(clauses) == 0 {
		return Verdict{Dangerous: false, Reason: SafeMessage}
	}
	return Verdict{Dangerous: true, Reason: strings.Join(clauses, " / ")}
}

package model

// AgeGroup is the fixed age band a user falls into.
type AgeGroup string

const (
	Age60to64 AgeGroup = "60-64"
	Age65to69 AgeGroup = "65-69"
	Age70to74 AgeGroup = "70-74"
	Age75Plus AgeGroup = "75+"
)

// EnvPreference describes where the user prefers to exercise.
type EnvPreference string

const (
	EnvIndoor  EnvPreference = "indoor"
	EnvOutdoor EnvPreference = "outdoor"
	EnvAny     EnvPreference = "any"
)

// Health issue tags carried in UserProfile.HealthIssues.
const (
	IssueKneePain     = "knee_pain"
	IssueHypertension = "hypertension"
	IssueHeartDisease = "heart_disease"
)

// Goal tags carried in UserProfile.Goals.
const (
	GoalBloodPressure = "blood_pressure"
	GoalWeight        = "weight"
	GoalStrength      = "strength"
	GoalFlexibility   = "flexibility"
	GoalSocial        = "social"
)

// UserProfile is the health/goal profile a recommendation request is made
// against. Immutable for the duration of a call.
type UserProfile struct {
	AgeGroup     AgeGroup      `json:"age_group"`
	HealthIssues []string      `json:"health_issues"`
	Goals        []string      `json:"goals"`
	PreferredEnv EnvPreference `json:"preference_env"`
}

// HasIssue reports whether the profile carries the given health issue tag.
func (p UserProfile) HasIssue(tag string) bool {
	for _, issue := range p.HealthIssues {
		if issue == tag {
			return true
		}
	}
	return false
}

// HasGoal reports whether the profile carries the given goal tag.
func (p UserProfile) HasGoal(tag string) bool {
	for _, goal := range p.Goals {
		if goal == tag {
			return true
		}
	}
	return false
}

// Location is a WGS84 coordinate in decimal degrees.
type Location struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

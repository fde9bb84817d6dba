package model

// Intensity is a program's effort level.
type Intensity string

const (
	IntensityLow    Intensity = "low"
	IntensityMedium Intensity = "medium"
	IntensityHigh   Intensity = "high"
)

// Candidate is one facility+program combination eligible for
// recommendation. Sourced from the facility-program master snapshot and
// read-only to the engine. ProgramName may be empty: such rows pad the
// dataset but are excluded from final output.
type Candidate struct {
	FacilityID     string    `json:"fac_id"`
	FacilityName   string    `json:"fac_name"`
	Address        string    `json:"address"`
	Location       Location  `json:"location"`
	Indoor         bool      `json:"is_indoor"`
	SportCategory  string    `json:"sport_category"`
	ProgramName    string    `json:"program_name"`
	Intensity      Intensity `json:"intensity_level"`
	SeniorFriendly bool      `json:"senior_friendly"`
	OperatingHours string    `json:"operating_hours"`
}

// Recommendation is one ranked result returned to the caller.
type Recommendation struct {
	FacilityID    string    `json:"fac_id"`
	FacilityName  string    `json:"facility_name"`
	ProgramName   string    `json:"program_name"`
	SportCategory string    `json:"sport_category"`
	DistanceKM    float64   `json:"distance_km"`
	Intensity     Intensity `json:"intensity_level"`
	Indoor        bool      `json:"is_indoor"`
	Reason        string    `json:"reason"`
	Score         float64   `json:"score"`
}

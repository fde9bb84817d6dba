package model

import "time"

// ExerciseVideo is one entry of the home-exercise video catalog. BodyRegions
// keeps the raw labels from the source; a single label may name several
// regions separated by slashes ("back/lower back").
type ExerciseVideo struct {
	Name             string   `json:"name"`
	FitnessDimension string   `json:"fitness_dimension"`
	Equipment        string   `json:"equipment"`
	BodyRegions      []string `json:"body_regions"`
	Solo             bool     `json:"solo"`
	URL              string   `json:"url"`
}

// RotationEntry is the per-user record of the video chosen for a calendar
// date. At most one entry is current per user; a new one replaces the
// previous only when the date changes.
type RotationEntry struct {
	ID        string        `json:"id"`
	UserID    string        `json:"user_id"`
	Date      string        `json:"date"` // YYYY-MM-DD
	Region    string        `json:"region"`
	Video     ExerciseVideo `json:"video"`
	UpdatedAt time.Time     `json:"updated_at"`
}

package dataset

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"

	"github.com/silverbridge/seniorfit-cli/internal/model"
)

// facilityRow mirrors one record of the facility-program master file.
// Pointer fields distinguish "absent" from zero values so defaults can
// be applied per field.
type facilityRow struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Address        string   `json:"address"`
	Lat            *float64 `json:"lat"`
	Lon            *float64 `json:"lon"`
	Indoor         *bool    `json:"indoor"`
	SportCategory  string   `json:"sport_category"`
	ProgramName    string   `json:"program_name"`
	Intensity      string   `json:"intensity"`
	SeniorFriendly *bool    `json:"senior_friendly"`
	OperatingHours string   `json:"operating_hours"`
}

// LoadCandidates reads the facility-program dataset at path, dispatching
// on the file extension. A missing file is a valid empty dataset.
func LoadCandidates(path string) ([]model.Candidate, error) {
	if path == "" {
		return nil, nil
	}
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return LoadCandidatesXLSX(path)
	}
	return LoadCandidatesJSON(path)
}

// LoadCandidatesJSON reads the JSON master file. Rows without a name or
// coordinates are skipped; duplicate facility-program rows are collapsed.
func LoadCandidatesJSON(path string) ([]model.Candidate, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		zap.L().Warn("dataset: facility file missing, using empty dataset", zap.String("path", path))
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrapf(err, "dataset: read %s", path)
	}

	var rows []facilityRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, eris.Wrapf(err, "dataset: parse %s", path)
	}
	return buildCandidates(rows), nil
}

func buildCandidates(rows []facilityRow) []model.Candidate {
	out := make([]model.Candidate, 0, len(rows))
	seen := make(map[string]bool)
	skipped := 0
	for i, row := range rows {
		name := cleanText(row.Name)
		if name == "" || row.Lat == nil || row.Lon == nil {
			skipped++
			continue
		}

		c := model.Candidate{
			FacilityID:     cleanText(row.ID),
			FacilityName:   name,
			Address:        cleanText(row.Address),
			Location:       model.Location{Lat: *row.Lat, Lon: *row.Lon},
			Indoor:         true,
			SportCategory:  cleanText(row.SportCategory),
			ProgramName:    cleanText(row.ProgramName),
			Intensity:      model.Intensity(strings.ToLower(cleanText(row.Intensity))),
			SeniorFriendly: true,
			OperatingHours: cleanText(row.OperatingHours),
		}
		if row.Indoor != nil {
			c.Indoor = *row.Indoor
		}
		if row.SeniorFriendly != nil {
			c.SeniorFriendly = *row.SeniorFriendly
		}
		if c.FacilityID == "" {
			c.FacilityID = fmt.Sprintf("F%06d", i+1)
		}
		if c.SportCategory == "" {
			c.SportCategory = "general"
		}
		switch c.Intensity {
		case model.IntensityLow, model.IntensityMedium, model.IntensityHigh:
		default:
			c.Intensity = model.IntensityMedium
		}

		key := fmt.Sprintf("%s|%s|%.6f|%.6f", c.FacilityName, c.ProgramName, c.Location.Lat, c.Location.Lon)
		if seen[key] {
			skipped++
			continue
		}
		seen[key] = true
		out = append(out, c)
	}

	if skipped > 0 {
		zap.L().Debug("dataset: skipped facility rows", zap.Int("skipped", skipped), zap.Int("kept", len(out)))
	}
	return out
}

// cleanText trims whitespace and NFC-normalizes, so visually identical
// Korean strings with different compositions dedup correctly.
func cleanText(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

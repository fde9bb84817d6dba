package dataset

import (
	"os"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
	"go.uber.org/zap"

	"github.com/silverbridge/seniorfit-cli/internal/model"
)

// LoadCandidatesXLSX reads the facility-program dataset from a spreadsheet.
// The first row of the first sheet is a header row; unknown columns are
// ignored. A missing file is a valid empty dataset.
func LoadCandidatesXLSX(path string) ([]model.Candidate, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		zap.L().Warn("dataset: facility spreadsheet missing, using empty dataset", zap.String("path", path))
		return nil, nil
	}

	file, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "dataset: open %s", path)
	}
	if len(file.Sheets) == 0 {
		return nil, eris.Errorf("dataset: %s has no sheets", path)
	}

	sheet := file.Sheets[0]
	if len(sheet.Rows) < 2 {
		return nil, nil
	}

	cols := make(map[string]int)
	for i, cell := range sheet.Rows[0].Cells {
		cols[strings.ToLower(strings.TrimSpace(cell.String()))] = i
	}

	rows := make([]facilityRow, 0, len(sheet.Rows)-1)
	for _, r := range sheet.Rows[1:] {
		cell := func(name string) string {
			idx, ok := cols[name]
			if !ok || idx >= len(r.Cells) {
				return ""
			}
			return strings.TrimSpace(r.Cells[idx].String())
		}

		row := facilityRow{
			ID:             cell("id"),
			Name:           cell("name"),
			Address:        cell("address"),
			SportCategory:  cell("sport_category"),
			ProgramName:    cell("program_name"),
			Intensity:      cell("intensity"),
			OperatingHours: cell("operating_hours"),
		}
		if lat, err := strconv.ParseFloat(cell("lat"), 64); err == nil {
			row.Lat = &lat
		}
		if lon, err := strconv.ParseFloat(cell("lon"), 64); err == nil {
			row.Lon = &lon
		}
		if s := cell("indoor"); s != "" {
			v := parseBool(s)
			row.Indoor = &v
		}
		if s := cell("senior_friendly"); s != "" {
			v := parseBool(s)
			row.SeniorFriendly = &v
		}
		rows = append(rows, row)
	}

	return buildCandidates(rows), nil
}

func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "y", "1", "o":
		return true
	default:
		return false
	}
}

package dataset

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
	"go.uber.org/zap"

	"github.com/silverbridge/seniorfit-cli/internal/model"
)

type videoRow struct {
	Name             string `json:"name"`
	FitnessDimension string `json:"fitness_dimension"`
	Equipment        string `json:"equipment"`
	BodyRegion       string `json:"body_region"`
	Solo             *bool  `json:"solo"`
	URL              string `json:"url"`
}

// LoadVideos reads the exercise-video catalog, dispatching on the file
// extension. The body-region column keeps its raw slash-delimited form; the
// rotation selector splits it. A missing file is a valid empty catalog.
func LoadVideos(path string) ([]model.ExerciseVideo, error) {
	if path == "" {
		return nil, nil
	}
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return LoadVideosXLSX(path)
	}
	return LoadVideosJSON(path)
}

// LoadVideosJSON reads the catalog from a JSON array.
func LoadVideosJSON(path string) ([]model.ExerciseVideo, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		zap.L().Warn("dataset: video file missing, using empty catalog", zap.String("path", path))
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrapf(err, "dataset: read %s", path)
	}

	var rows []videoRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, eris.Wrapf(err, "dataset: parse %s", path)
	}
	return buildVideos(rows), nil
}

// LoadVideosXLSX reads the catalog from a spreadsheet with a header row.
func LoadVideosXLSX(path string) ([]model.ExerciseVideo, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		zap.L().Warn("dataset: video spreadsheet missing, using empty catalog", zap.String("path", path))
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

	rows := make([]videoRow, 0, len(sheet.Rows)-1)
	for _, r := range sheet.Rows[1:] {
		cell := func(name string) string {
			idx, ok := cols[name]
			if !ok || idx >= len(r.Cells) {
				return ""
			}
			return strings.TrimSpace(r.Cells[idx].String())
		}

		row := videoRow{
			Name:             cell("name"),
			FitnessDimension: cell("fitness_dimension"),
			Equipment:        cell("equipment"),
			BodyRegion:       cell("body_region"),
			URL:              cell("url"),
		}
		if s := cell("solo"); s != "" {
			v := parseBool(s)
			row.Solo = &v
		}
		rows = append(rows, row)
	}
	return buildVideos(rows), nil
}

func buildVideos(rows []videoRow) []model.ExerciseVideo {
	out := make([]model.ExerciseVideo, 0, len(rows))
	for _, row := range rows {
		v := model.ExerciseVideo{
			Name:             cleanText(row.Name),
			FitnessDimension: cleanText(row.FitnessDimension),
			Equipment:        cleanText(row.Equipment),
			Solo:             true,
			URL:              strings.TrimSpace(row.URL),
		}
		if row.Solo != nil {
			v.Solo = *row.Solo
		}
		if region := cleanText(row.BodyRegion); region != "" {
			v.BodyRegions = []string{region}
		}
		out = append(out, v)
	}
	return out
}

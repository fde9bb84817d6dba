package dataset

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"
)

func createTestXLSX(t *testing.T, rows [][]string) string {
	t.Helper()
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Facilities")
	require.NoError(t, err)

	for _, row := range rows {
		r := sheet.AddRow()
		for _, val := range row {
			r.AddCell().SetString(val)
		}
	}

	path := filepath.Join(t.TempDir(), "facilities.xlsx")
	require.NoError(t, file.Save(path))
	return path
}

func TestLoadCandidatesXLSX(t *testing.T) {
	path := createTestXLSX(t, [][]string{
		{"name", "address", "lat", "lon", "indoor", "program_name", "intensity", "senior_friendly"},
		{"Riverside Senior Center", "12 River Rd", "37.55", "126.99", "yes", "Aqua Walking", "low", "y"},
		{"Hilltop Track", "3 Hill St", "37.60", "127.01", "no", "Morning Jog", "high", "n"},
	})

	out, err := LoadCandidatesXLSX(path)
	require.NoError(t, err)
	require.Len(t, out, 2)

	assert.Equal(t, "Riverside Senior Center", out[0].FacilityName)
	assert.True(t, out[0].Indoor)
	assert.True(t, out[0].SeniorFriendly)
	assert.InDelta(t, 37.55, out[0].Location.Lat, 1e-9)

	assert.False(t, out[1].Indoor)
	assert.False(t, out[1].SeniorFriendly)
}

func TestLoadCandidatesXLSXSkipsRowsWithoutCoordinates(t *testing.T) {
	path := createTestXLSX(t, [][]string{
		{"name", "lat", "lon"},
		{"No Coordinates Gym", "", ""},
		{"Valid Gym", "37.55", "126.99"},
	})

	out, err := LoadCandidatesXLSX(path)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "Valid Gym", out[0].FacilityName)
}

func TestLoadCandidatesXLSXHeaderOnly(t *testing.T) {
	path := createTestXLSX(t, [][]string{
		{"name", "lat", "lon"},
	})

	out, err := LoadCandidatesXLSX(path)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestLoadCandidatesXLSXMissingFile(t *testing.T) {
	out, err := LoadCandidatesXLSX(filepath.Join(t.TempDir(), "nope.xlsx"))
	require.NoError(t, err)
	assert.Empty(t, out)
}

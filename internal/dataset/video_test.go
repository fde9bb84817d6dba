package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempVideoJSON(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "videos.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadVideosMissingFile(t *testing.T) {
	out, err := LoadVideos(filepath.Join(t.TempDir(), "nope.json"))
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestLoadVideos(t *testing.T) {
	path := writeTempVideoJSON(t, `[
		{"name": "Chair Squats", "fitness_dimension": "strength", "body_region": "lower_body", "solo": true, "url": "https://example.com/v1"},
		{"name": "Full Body Flow", "body_region": "upper_body/lower_body"},
		{"name": "Group Dance", "solo": false}
	]`)

	out, err := LoadVideos(path)
	require.NoError(t, err)
	require.Len(t, out, 3)

	assert.Equal(t, "Chair Squats", out[0].Name)
	assert.Equal(t, []string{"lower_body"}, out[0].BodyRegions)
	assert.True(t, out[0].Solo)

	// Slash-delimited labels stay raw; the rotation selector splits them.
	assert.Equal(t, []string{"upper_body/lower_body"}, out[1].BodyRegions)
	assert.True(t, out[1].Solo, "solo defaults to true when absent")

	assert.False(t, out[2].Solo)
	assert.Empty(t, out[2].BodyRegions)
}

func TestLoadVideosXLSX(t *testing.T) {
	path := createTestXLSX(t, [][]string{
		{"name", "fitness_dimension", "equipment", "body_region", "solo", "url"},
		{"Chair Squats", "strength", "chair", "lower_body", "y", "https://example.com/v1"},
		{"Group Dance", "endurance", "", "full_body", "n", ""},
	})

	out, err := LoadVideosXLSX(path)
	require.NoError(t, err)
	require.Len(t, out, 2)

	assert.Equal(t, "Chair Squats", out[0].Name)
	assert.Equal(t, []string{"lower_body"}, out[0].BodyRegions)
	assert.True(t, out[0].Solo)
	assert.False(t, out[1].Solo)
}

func TestLoadVideosMalformed(t *testing.T) {
	path := writeTempVideoJSON(t, `not json`)

	_, err := LoadVideos(path)
	require.Error(t, err)
}

package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/silverbridge/seniorfit-cli/internal/model"
)

func newTestSQLite(t *testing.T) *SQLiteStore {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rotation.db")
	s, err := NewSQLite(path)
	require.NoError(t, err)
	require.NoError(t, s.Migrate(context.Background()))
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func testVideo() model.ExerciseVideo {
	return model.ExerciseVideo{
		Name:             "Chair Squats",
		FitnessDimension: "strength",
		Equipment:        "chair",
		BodyRegions:      []string{"lower_body"},
		Solo:             true,
		URL:              "https://example.com/chair-squats",
	}
}

func TestSQLiteGetEntryAbsent(t *testing.T) {
	s := newTestSQLite(t)

	entry, err := s.GetEntry(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Nil(t, entry)
}

func TestSQLiteSetAndGetEntry(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	in := model.RotationEntry{
		UserID: "u-1",
		Date:   "2026-09-01",
		Region: "lower_body",
		Video:  testVideo(),
	}
	require.NoError(t, s.SetEntry(ctx, in))

	got, err := s.GetEntry(ctx, "u-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.NotEmpty(t, got.ID)
	assert.Equal(t, "u-1", got.UserID)
	assert.Equal(t, "2026-09-01", got.Date)
	assert.Equal(t, "lower_body", got.Region)
	assert.Equal(t, "Chair Squats", got.Video.Name)
	assert.False(t, got.UpdatedAt.IsZero())
}

func TestSQLiteSetEntryUpsertsPerUser(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	first := model.RotationEntry{UserID: "u-1", Date: "2026-08-31", Region: "core", Video: testVideo()}
	require.NoError(t, s.SetEntry(ctx, first))

	second := first
	second.Date = "2026-09-01"
	second.Region = "upper_body"
	require.NoError(t, s.SetEntry(ctx, second))

	got, err := s.GetEntry(ctx, "u-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "2026-09-01", got.Date)
	assert.Equal(t, "upper_body", got.Region)
}

func TestSQLiteMalformedVideoTreatedAsAbsent(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO rotation_history (user_id, id, chosen_date, region, video, updated_at)
		VALUES ('u-bad', 'id-1', '2026-09-01', 'core', 'not-json', CURRENT_TIMESTAMP)`)
	require.NoError(t, err)

	got, err := s.GetEntry(ctx, "u-bad")
	require.NoError(t, err)
	assert.Nil(t, got)
}

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/silverbridge/seniorfit-cli/internal/model"
)

// SQLiteStore implements RotationStore using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS rotation_history (
	user_id     TEXT PRIMARY KEY,
	id          TEXT NOT NULL,
	chosen_date TEXT NOT NULL,
	region      TEXT NOT NULL,
	video       TEXT NOT NULL,
	updated_at  DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_rotation_history_date ON rotation_history(chosen_date);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) GetEntry(ctx context.Context, userID string) (*model.RotationEntry, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, chosen_date, region, video, updated_at FROM rotation_history WHERE user_id = ?`,
		userID,
	)

	var entry model.RotationEntry
	var videoJSON string
	entry.UserID = userID
	err := row.Scan(&entry.ID, &entry.Date, &entry.Region, &videoJSON, &entry.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: get rotation entry %s", userID)
	}

	if err := json.Unmarshal([]byte(videoJSON), &entry.Video); err != nil {
		// Corrupt state resets to "no prior entry" instead of failing.
		zap.L().Warn("sqlite: malformed rotation entry, treating as absent",
			zap.String("user_id", userID), zap.Error(err))
		return nil, nil
	}
	return &entry, nil
}

func (s *SQLiteStore) SetEntry(ctx context.Context, entry model.RotationEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	videoJSON, err := json.Marshal(entry.Video)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal video")
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO rotation_history (user_id, id, chosen_date, region, video, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			id = excluded.id,
			chosen_date = excluded.chosen_date,
			region = excluded.region,
			video = excluded.video,
			updated_at = excluded.updated_at`,
		entry.UserID, entry.ID, entry.Date, entry.Region, string(videoJSON), time.Now().UTC(),
	)
	if err != nil {
		return eris.Wrapf(err, "sqlite: set rotation entry %s", entry.UserID)
	}
	return nil
}

package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/silverbridge/seniorfit-cli/internal/model"
)

// Pool is the subset of pgxpool.Pool the store needs; pgxmock satisfies it
// in tests.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
	Close()
}

// PostgresStore implements RotationStore using pgxpool.
type PostgresStore struct {
	pool Pool
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}
	pgxCfg.MaxConns = 10
	pgxCfg.MinConns = 2
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool}, nil
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS rotation_history (
	user_id     TEXT PRIMARY KEY,
	id          TEXT NOT NULL,
	chosen_date TEXT NOT NULL,
	region      TEXT NOT NULL,
	video       JSONB NOT NULL,
	updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_rotation_history_date ON rotation_history(chosen_date);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) GetEntry(ctx context.Context, userID string) (*model.RotationEntry, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, chosen_date, region, video, updated_at FROM rotation_history WHERE user_id = $1`,
		userID,
	)

	var entry model.RotationEntry
	var videoJSON []byte
	entry.UserID = userID
	err := row.Scan(&entry.ID, &entry.Date, &entry.Region, &videoJSON, &entry.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: get rotation entry %s", userID)
	}

	if err := json.Unmarshal(videoJSON, &entry.Video); err != nil {
		// Corrupt state resets to "no prior entry" instead of failing.
		zap.L().Warn("postgres: malformed rotation entry, treating as absent",
			zap.String("user_id", userID), zap.Error(err))
		return nil, nil
	}
	return &entry, nil
}

func (s *PostgresStore) SetEntry(ctx context.Context, entry model.RotationEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	videoJSON, err := json.Marshal(entry.Video)
	if err != nil {
		return eris.Wrap(err, "postgres: marshal video")
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO rotation_history (user_id, id, chosen_date, region, video, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id) DO UPDATE SET
			id = EXCLUDED.id,
			chosen_date = EXCLUDED.chosen_date,
			region = EXCLUDED.region,
			video = EXCLUDED.video,
			updated_at = EXCLUDED.updated_at`,
		entry.UserID, entry.ID, entry.Date, entry.Region, videoJSON, time.Now().UTC(),
	)
	if err != nil {
		return eris.Wrapf(err, "postgres: set rotation entry %s", entry.UserID)
	}
	return nil
}

// Package store persists per-user rotation history behind a small
// get/set-by-key interface with last-write-wins semantics.
package store

import (
	"context"

	"github.com/silverbridge/seniorfit-cli/internal/model"
)

// RotationStore is the persistence interface for daily rotation state.
// GetEntry returns (nil, nil) when no usable entry exists for the user —
// including when the persisted state is malformed, which is treated as
// absence rather than an error.
type RotationStore interface {
	GetEntry(ctx context.Context, userID string) (*model.RotationEntry, error)
	SetEntry(ctx context.Context, entry model.RotationEntry) error

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}

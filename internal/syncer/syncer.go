// Package syncer migrates the local vault into the cloud table for a
// newly signed-in user. The migration is one-shot and one-directional:
// local diagrams move to the cloud, they are never duplicated.
package syncer

import (
	"context"
	"fmt"
	"log"

	"github.com/mermaidkeep/mermaidkeep/internal/diagram"
)

// LocalSource is the slice of the local store the engine reads from.
type LocalSource interface {
	List() []diagram.Diagram
	Clear() error
}

// CloudTarget is the slice of the cloud store the engine writes to.
type CloudTarget interface {
	CreateBatch(ctx context.Context, userID string, drafts []diagram.Draft) error
}

// Engine performs local-to-cloud migration.
type Engine struct {
	local LocalSource
	cloud CloudTarget
}

// New creates a sync engine over the two backends.
func New(local LocalSource, cloud CloudTarget) *Engine {
	return &Engine{local: local, cloud: cloud}
}

// SyncToCloud copies every local diagram to the cloud for userID and
// then clears the vault. Local ids and timestamps are dropped so the
// cloud assigns its own. The insert is a single batch: on failure
// nothing is cleared and the error propagates, so a failed sync is
// always safe to retry. Returns the number of diagrams migrated.
func (e *Engine) SyncToCloud(ctx context.Context, userID string) (int, error) {
	local := e.local.List()
	if len(local) == 0 {
		return 0, nil
	}

	drafts := make([]diagram.Draft, 0, len(local))
	for _, d := range local {
		drafts = append(drafts, d.Draft())
	}

	if err := e.cloud.CreateBatch(ctx, userID, drafts); err != nil {
		return 0, fmt.Errorf("migrating %d diagrams to cloud: %w", len(drafts), err)
	}

	// The copies landed; the local originals are now migrated, not
	// duplicated. A failed clear leaves duplicates rather than losing
	// data, so it is reported but does not undo the migration.
	if err := e.local.Clear(); err != nil {
		log.Printf("syncer: clearing vault after migration: %v", err)
		return len(drafts), fmt.Errorf("clearing local vault after migration: %w", err)
	}
	return len(drafts), nil
}

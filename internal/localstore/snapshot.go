package localstore

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/mermaidkeep/mermaidkeep/internal/diagram"
)

// SnapshotVersion is bumped when the snapshot format changes.
const SnapshotVersion = 1

// Snapshot is the versioned export format for a diagram collection.
type Snapshot struct {
	Version    int               `json:"version"`
	ExportedAt time.Time         `json:"exportedAt"`
	Diagrams   []diagram.Diagram `json:"diagrams"`
}

// Export serializes the whole collection as an indented JSON snapshot.
func (s *Store) Export() ([]byte, error) {
	snap := Snapshot{
		Version:    SnapshotVersion,
		ExportedAt: time.Now().UTC(),
		Diagrams:   s.List(),
	}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("serializing snapshot: %w", err)
	}
	return data, nil
}

// Import merges a snapshot into the vault: entries with known ids
// update the existing diagram, new ids are inserted. Each entry is
// shape-checked before it is accepted. A structurally invalid payload,
// or one containing zero valid diagrams, is rejected before any write.
// Returns the number of diagrams imported.
func (s *Store) Import(payload []byte) (int, error) {
	var snap Snapshot
	if err := json.Unmarshal(payload, &snap); err != nil {
		return 0, &diagram.ValidationError{Field: "snapshot", Reason: "not valid JSON"}
	}
	if snap.Diagrams == nil {
		return 0, &diagram.ValidationError{Field: "snapshot", Reason: "missing diagrams array"}
	}

	valid := make([]diagram.Diagram, 0, len(snap.Diagrams))
	for _, d := range snap.Diagrams {
		if diagram.WellFormed(d) {
			valid = append(valid, d)
		}
	}
	if len(valid) == 0 {
		return 0, &diagram.ValidationError{Field: "snapshot", Reason: "no valid diagrams found"}
	}

	existing := make(map[string]bool)
	for _, d := range s.List() {
		existing[d.ID] = true
	}

	for _, d := range valid {
		if existing[d.ID] {
			if _, err := s.Update(d.ID, patchFrom(d)); err != nil {
				return 0, fmt.Errorf("importing diagram %s: %w", d.ID, err)
			}
		} else {
			if _, err := s.Save(d); err != nil {
				return 0, fmt.Errorf("importing diagram %s: %w", d.ID, err)
			}
		}
	}
	return len(valid), nil
}

// patchFrom turns a full diagram into a patch of its mutable fields.
func patchFrom(d diagram.Diagram) diagram.Patch {
	tags := append([]string(nil), d.Tags...)
	return diagram.Patch{
		Title:       &d.Title,
		Code:        &d.Code,
		Type:        &d.Type,
		Tags:        &tags,
		Description: &d.Description,
		IsFavorite:  &d.IsFavorite,
	}
}

// Package localstore persists the diagram collection as a single JSON
// file in the data directory. It is the guest-mode backend: durable,
// synchronous, single-device.
package localstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/mermaidkeep/mermaidkeep/internal/diagram"
)

const (
	// VaultFile is the fixed file name holding the serialized collection.
	VaultFile = "diagrams.json"

	// BackupFile receives the raw payload when the vault fails to
	// parse, so nothing is lost to a corrupt write.
	BackupFile = "diagrams.json.corrupted"

	// DefaultMaxBytes caps the serialized vault size. Matches the
	// budget browsers give localStorage.
	DefaultMaxBytes = 5 << 20
)

// Store is a file-backed diagram store. Every operation does its own
// read-modify-write cycle over the vault file; there is no cross-process
// lock, so the last writer wins at the file level.
type Store struct {
	dir      string
	maxBytes int64
}

// New creates a store rooted at dir. maxBytes <= 0 selects
// DefaultMaxBytes.
func New(dir string, maxBytes int64) *Store {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &Store{dir: dir, maxBytes: maxBytes}
}

func (s *Store) path() string       { return filepath.Join(s.dir, VaultFile) }
func (s *Store) backupPath() string { return filepath.Join(s.dir, BackupFile) }

// List returns every well-formed diagram, most recently updated first.
// It never fails: a missing vault yields an empty list, and an
// unparsable vault is backed up to BackupFile and treated as empty.
func (s *Store) List() []diagram.Diagram {
	data, err := os.ReadFile(s.path())
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("localstore: reading vault: %v", err)
		}
		return []diagram.Diagram{}
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		log.Printf("localstore: vault is corrupt, backing up: %v", err)
		s.backupCorrupt(data)
		return []diagram.Diagram{}
	}

	diagrams := make([]diagram.Diagram, 0, len(raw))
	dropped := 0
	for _, entry := range raw {
		var d diagram.Diagram
		if err := json.Unmarshal(entry, &d); err != nil || !diagram.WellFormed(d) {
			dropped++
			continue
		}
		diagrams = append(diagrams, d)
	}
	if dropped > 0 {
		log.Printf("localstore: dropped %d corrupted entr%s", dropped, plural(dropped, "y", "ies"))
	}

	diagram.SortByUpdatedDesc(diagrams)
	return diagrams
}

// backupCorrupt preserves the raw payload for forensic recovery. Backup
// failures are logged and otherwise ignored.
func (s *Store) backupCorrupt(data []byte) {
	if err := os.WriteFile(s.backupPath(), data, 0o644); err != nil {
		log.Printf("localstore: backing up corrupt vault: %v", err)
	}
}

// Save upserts by id. An existing diagram keeps its createdAt and gets
// a fresh updatedAt; a new one is assigned timestamps if absent. Tags
// are normalized before the write. Returns the stored entry.
func (s *Store) Save(d diagram.Diagram) (diagram.Diagram, error) {
	tags, err := diagram.NormalizeTags(d.Tags)
	if err != nil {
		return diagram.Diagram{}, err
	}
	d.Tags = tags

	diagrams := s.List()
	now := time.Now().UTC()

	found := false
	for i := range diagrams {
		if diagrams[i].ID == d.ID {
			d.CreatedAt = diagrams[i].CreatedAt
			d.UpdatedAt = now
			diagrams[i] = d
			found = true
			break
		}
	}
	if !found {
		if d.CreatedAt.IsZero() {
			d.CreatedAt = now
		}
		if d.UpdatedAt.IsZero() {
			d.UpdatedAt = now
		}
		diagrams = append(diagrams, d)
	}

	if err := s.persist(diagrams); err != nil {
		return diagram.Diagram{}, fmt.Errorf("saving diagram: %w", err)
	}
	return d, nil
}

// Update merges a partial update into the diagram with the given id.
// The id and createdAt are immutable; updatedAt is refreshed.
func (s *Store) Update(id string, patch diagram.Patch) (diagram.Diagram, error) {
	if patch.Tags != nil {
		tags, err := diagram.NormalizeTags(*patch.Tags)
		if err != nil {
			return diagram.Diagram{}, err
		}
		patch.Tags = &tags
	}

	diagrams := s.List()
	for i := range diagrams {
		if diagrams[i].ID != id {
			continue
		}
		updated := patch.Apply(diagrams[i])
		updated.UpdatedAt = time.Now().UTC()
		diagrams[i] = updated
		if err := s.persist(diagrams); err != nil {
			return diagram.Diagram{}, fmt.Errorf("updating diagram: %w", err)
		}
		return updated, nil
	}
	return diagram.Diagram{}, fmt.Errorf("%w: %s", diagram.ErrNotFound, id)
}

// Remove deletes the diagram with the given id. When the collection
// becomes empty the vault file is removed entirely.
func (s *Store) Remove(id string) error {
	diagrams := s.List()
	kept := diagrams[:0]
	for _, d := range diagrams {
		if d.ID != id {
			kept = append(kept, d)
		}
	}
	if len(kept) == len(diagrams) {
		return fmt.Errorf("%w: %s", diagram.ErrNotFound, id)
	}
	if err := s.persist(kept); err != nil {
		return fmt.Errorf("removing diagram: %w", err)
	}
	return nil
}

// Clear unconditionally empties the collection.
func (s *Store) Clear() error {
	if err := os.Remove(s.path()); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("clearing vault: %w", err)
	}
	return nil
}

// FindByID returns the diagram with the given id, or false.
func (s *Store) FindByID(id string) (diagram.Diagram, bool) {
	for _, d := range s.List() {
		if d.ID == id {
			return d, true
		}
	}
	return diagram.Diagram{}, false
}

// Search returns diagrams whose title, description or tags contain the
// query, case-insensitively. An empty query returns everything.
func (s *Store) Search(query string) []diagram.Diagram {
	diagrams := s.List()
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return diagrams
	}

	matches := make([]diagram.Diagram, 0, len(diagrams))
	for _, d := range diagrams {
		if matchesQuery(d, q) {
			matches = append(matches, d)
		}
	}
	return matches
}

func matchesQuery(d diagram.Diagram, q string) bool {
	if strings.Contains(strings.ToLower(d.Title), q) {
		return true
	}
	if strings.Contains(strings.ToLower(d.Description), q) {
		return true
	}
	for _, tag := range d.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

// Favorites returns the diagrams flagged as favorite.
func (s *Store) Favorites() []diagram.Diagram {
	diagrams := s.List()
	favs := make([]diagram.Diagram, 0, len(diagrams))
	for _, d := range diagrams {
		if d.IsFavorite {
			favs = append(favs, d)
		}
	}
	return favs
}

// Stats summarizes the vault contents.
type Stats struct {
	Count     int                  `json:"count"`
	SizeBytes int64                `json:"size_bytes"`
	Favorites int                  `json:"favorites"`
	ByType    map[diagram.Type]int `json:"by_type"`
}

// Stats returns diagram counts and the on-disk size of the vault.
func (s *Store) Stats() Stats {
	diagrams := s.List()
	st := Stats{Count: len(diagrams), ByType: make(map[diagram.Type]int)}
	for _, d := range diagrams {
		st.ByType[d.Type]++
		if d.IsFavorite {
			st.Favorites++
		}
	}
	if info, err := os.Stat(s.path()); err == nil {
		st.SizeBytes = info.Size()
	}
	return st
}

// persist serializes and writes the collection, enforcing the storage
// budget. An empty collection removes the vault file.
func (s *Store) persist(diagrams []diagram.Diagram) error {
	if len(diagrams) == 0 {
		return s.Clear()
	}

	data, err := json.Marshal(diagrams)
	if err != nil {
		return fmt.Errorf("serializing vault: %w", err)
	}
	if int64(len(data)) > s.maxBytes {
		return fmt.Errorf("vault would be %d bytes (budget %d): %w",
			len(data), s.maxBytes, diagram.ErrQuotaExceeded)
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}
	if err := os.WriteFile(s.path(), data, 0o644); err != nil {
		if errors.Is(err, syscall.ENOSPC) {
			return fmt.Errorf("disk full: %w", diagram.ErrQuotaExceeded)
		}
		return fmt.Errorf("writing vault: %w", err)
	}
	return nil
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

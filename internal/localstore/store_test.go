package localstore

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/mermaidkeep/mermaidkeep/internal/diagram"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	return New(t.TempDir(), 0)
}

func testDiagram(title string) diagram.Diagram {
	return diagram.Diagram{
		ID:    uuid.New().String(),
		Title: title,
		Code:  "graph TD\n  A-->B",
		Type:  diagram.TypeFlowchart,
		Tags:  []string{"test"},
	}
}

func TestSaveAndList(t *testing.T) {
	store := setupTestStore(t)

	d := testDiagram("Round Trip")
	saved, err := store.Save(d)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if saved.CreatedAt.IsZero() || saved.UpdatedAt.IsZero() {
		t.Error("expected timestamps to be assigned")
	}

	diagrams := store.List()
	if len(diagrams) != 1 {
		t.Fatalf("expected 1 diagram, got %d", len(diagrams))
	}
	got := diagrams[0]
	if got.ID != d.ID || got.Title != d.Title || got.Code != d.Code {
		t.Errorf("round trip mismatch: %+v", got)
	}
	if got.UpdatedAt.Before(saved.UpdatedAt) {
		t.Error("listed updatedAt is older than saved updatedAt")
	}
}

func TestListEmptyVault(t *testing.T) {
	store := setupTestStore(t)
	if got := store.List(); len(got) != 0 {
		t.Errorf("expected empty list, got %d entries", len(got))
	}
}

func TestSavePreservesCreatedAt(t *testing.T) {
	store := setupTestStore(t)

	d := testDiagram("Immutable CreatedAt")
	saved, err := store.Save(d)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	t0 := saved.CreatedAt

	time.Sleep(5 * time.Millisecond)
	title := "Renamed"
	updated, err := store.Update(d.ID, diagram.Patch{Title: &title})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	if !updated.CreatedAt.Equal(t0) {
		t.Errorf("createdAt changed: %v -> %v", t0, updated.CreatedAt)
	}
	if !updated.UpdatedAt.After(t0) {
		t.Errorf("updatedAt %v not after createdAt %v", updated.UpdatedAt, t0)
	}

	got, ok := store.FindByID(d.ID)
	if !ok {
		t.Fatal("diagram vanished")
	}
	if got.Title != "Renamed" || !got.CreatedAt.Equal(t0) {
		t.Errorf("re-read mismatch: %+v", got)
	}
}

func TestSaveUpsertsByID(t *testing.T) {
	store := setupTestStore(t)

	d := testDiagram("First")
	if _, err := store.Save(d); err != nil {
		t.Fatalf("Save: %v", err)
	}
	d.Title = "Second"
	if _, err := store.Save(d); err != nil {
		t.Fatalf("Save again: %v", err)
	}

	diagrams := store.List()
	if len(diagrams) != 1 {
		t.Fatalf("upsert created a duplicate: %d entries", len(diagrams))
	}
	if diagrams[0].Title != "Second" {
		t.Errorf("expected overwrite, got %q", diagrams[0].Title)
	}
}

func TestListSortedByUpdatedDesc(t *testing.T) {
	store := setupTestStore(t)

	for _, title := range []string{"one", "two", "three"} {
		if _, err := store.Save(testDiagram(title)); err != nil {
			t.Fatalf("Save %s: %v", title, err)
		}
		time.Sleep(5 * time.Millisecond)
	}

	diagrams := store.List()
	if len(diagrams) != 3 {
		t.Fatalf("expected 3 diagrams, got %d", len(diagrams))
	}
	for i := 1; i < len(diagrams); i++ {
		if diagrams[i].UpdatedAt.After(diagrams[i-1].UpdatedAt) {
			t.Errorf("not sorted descending at index %d", i)
		}
	}
	if diagrams[0].Title != "three" {
		t.Errorf("most recent first, got %q", diagrams[0].Title)
	}
}

func TestUpdateNotFound(t *testing.T) {
	store := setupTestStore(t)
	title := "x"
	_, err := store.Update("no-such-id", diagram.Patch{Title: &title})
	if !errors.Is(err, diagram.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestRemoveTwice(t *testing.T) {
	store := setupTestStore(t)

	d := testDiagram("Delete Me")
	other := testDiagram("Keep Me")
	if _, err := store.Save(d); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := store.Save(other); err != nil {
		t.Fatalf("Save: %v", err)
	}

	if err := store.Remove(d.ID); err != nil {
		t.Fatalf("first Remove: %v", err)
	}
	after := store.List()

	err := store.Remove(d.ID)
	if !errors.Is(err, diagram.ErrNotFound) {
		t.Errorf("second Remove: expected ErrNotFound, got %v", err)
	}
	if len(store.List()) != len(after) {
		t.Error("failed second remove changed the collection")
	}
}

func TestRemoveLastDeletesVault(t *testing.T) {
	store := setupTestStore(t)

	d := testDiagram("Only One")
	if _, err := store.Save(d); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := store.Remove(d.ID); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, err := os.Stat(store.path()); !os.IsNotExist(err) {
		t.Error("expected vault file to be removed when collection empties")
	}
}

func TestQuotaExceeded(t *testing.T) {
	store := New(t.TempDir(), 64)

	d := testDiagram("Too Big To Fit In Sixty Four Bytes")
	_, err := store.Save(d)
	if !errors.Is(err, diagram.ErrQuotaExceeded) {
		t.Errorf("expected ErrQuotaExceeded, got %v", err)
	}
	if len(store.List()) != 0 {
		t.Error("rejected write must leave the vault untouched")
	}
}

func TestCorruptedVaultRecovery(t *testing.T) {
	dir := t.TempDir()
	store := New(dir, 0)

	corrupted := []byte(`{this is not json`)
	if err := os.WriteFile(filepath.Join(dir, VaultFile), corrupted, 0o644); err != nil {
		t.Fatalf("seeding vault: %v", err)
	}

	if got := store.List(); len(got) != 0 {
		t.Errorf("expected empty list from corrupt vault, got %d", len(got))
	}

	backup, err := os.ReadFile(filepath.Join(dir, BackupFile))
	if err != nil {
		t.Fatalf("reading backup: %v", err)
	}
	if string(backup) != string(corrupted) {
		t.Error("backup does not preserve the corrupted payload")
	}
}

func TestListDropsMalformedEntries(t *testing.T) {
	dir := t.TempDir()
	store := New(dir, 0)

	good := testDiagram("Good")
	good.CreatedAt = time.Now().UTC()
	good.UpdatedAt = good.CreatedAt

	raw, err := json.Marshal([]any{good, map[string]any{"id": "half", "title": 42}})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, VaultFile), raw, 0o644); err != nil {
		t.Fatalf("seed: %v", err)
	}

	diagrams := store.List()
	if len(diagrams) != 1 || diagrams[0].ID != good.ID {
		t.Errorf("expected only the well-formed entry, got %+v", diagrams)
	}
}

func TestSaveNormalizesTags(t *testing.T) {
	store := setupTestStore(t)

	d := testDiagram("Tagged")
	d.Tags = []string{"  MyTag  ", "infra"}
	saved, err := store.Save(d)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if len(saved.Tags) != 2 || saved.Tags[0] != "mytag" {
		t.Errorf("tags not normalized: %v", saved.Tags)
	}

	bad := testDiagram("Bad Tag")
	bad.Tags = []string{"has space"}
	if _, err := store.Save(bad); err == nil {
		t.Error("expected invalid tag to be rejected before persistence")
	}
	if len(store.List()) != 1 {
		t.Error("rejected save must not persist anything")
	}
}

func TestSearch(t *testing.T) {
	store := setupTestStore(t)

	a := testDiagram("Payment Flow")
	a.Description = "checkout sequence"
	a.Tags = []string{"payments"}
	b := testDiagram("Org Chart")
	b.Tags = []string{"people"}
	for _, d := range []diagram.Diagram{a, b} {
		if _, err := store.Save(d); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}

	if got := store.Search("PAYMENT"); len(got) != 1 || got[0].ID != a.ID {
		t.Errorf("title search failed: %+v", got)
	}
	if got := store.Search("checkout"); len(got) != 1 {
		t.Errorf("description search failed: %+v", got)
	}
	if got := store.Search("people"); len(got) != 1 || got[0].ID != b.ID {
		t.Errorf("tag search failed: %+v", got)
	}
	if got := store.Search(""); len(got) != 2 {
		t.Errorf("empty query should return everything, got %d", len(got))
	}
	if got := store.Search("zzz"); len(got) != 0 {
		t.Errorf("expected no matches, got %d", len(got))
	}
}

func TestFavoritesAndStats(t *testing.T) {
	store := setupTestStore(t)

	fav := testDiagram("Starred")
	fav.IsFavorite = true
	seq := testDiagram("Calls")
	seq.Type = diagram.TypeSequence
	for _, d := range []diagram.Diagram{fav, seq} {
		if _, err := store.Save(d); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}

	favs := store.Favorites()
	if len(favs) != 1 || favs[0].ID != fav.ID {
		t.Errorf("favorites filter failed: %+v", favs)
	}

	st := store.Stats()
	if st.Count != 2 || st.Favorites != 1 {
		t.Errorf("unexpected stats: %+v", st)
	}
	if st.ByType[diagram.TypeFlowchart] != 1 || st.ByType[diagram.TypeSequence] != 1 {
		t.Errorf("unexpected by-type counts: %+v", st.ByType)
	}
	if st.SizeBytes == 0 {
		t.Error("expected non-zero vault size")
	}
}

package localstore

import (
	"encoding/json"
	"testing"

	"github.com/mermaidkeep/mermaidkeep/internal/diagram"
)

func TestExportImportRoundTrip(t *testing.T) {
	src := setupTestStore(t)
	for _, title := range []string{"alpha", "beta"} {
		if _, err := src.Save(testDiagram(title)); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}

	payload, err := src.Export()
	if err != nil {
		t.Fatalf("Export: %v", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(payload, &snap); err != nil {
		t.Fatalf("unmarshal snapshot: %v", err)
	}
	if snap.Version != SnapshotVersion {
		t.Errorf("expected version %d, got %d", SnapshotVersion, snap.Version)
	}
	if snap.ExportedAt.IsZero() {
		t.Error("expected exportedAt to be set")
	}

	dst := setupTestStore(t)
	n, err := dst.Import(payload)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 imported, got %d", n)
	}
	if len(dst.List()) != 2 {
		t.Errorf("expected 2 diagrams after import, got %d", len(dst.List()))
	}
}

func TestImportMergesByID(t *testing.T) {
	store := setupTestStore(t)

	existing := testDiagram("Old Title")
	saved, err := store.Save(existing)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	incoming := saved
	incoming.Title = "New Title"
	fresh := testDiagram("Brand New")
	fresh.CreatedAt = saved.CreatedAt
	fresh.UpdatedAt = saved.UpdatedAt

	payload, err := json.Marshal(Snapshot{
		Version:  SnapshotVersion,
		Diagrams: []diagram.Diagram{incoming, fresh},
	})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	n, err := store.Import(payload)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 imported, got %d", n)
	}

	diagrams := store.List()
	if len(diagrams) != 2 {
		t.Fatalf("merge by id created duplicates: %d entries", len(diagrams))
	}
	got, ok := store.FindByID(saved.ID)
	if !ok || got.Title != "New Title" {
		t.Errorf("existing diagram not updated: %+v", got)
	}
	if !got.CreatedAt.Equal(saved.CreatedAt) {
		t.Error("import must not rewrite createdAt of existing diagrams")
	}
}

func TestImportRejectsInvalidPayloads(t *testing.T) {
	store := setupTestStore(t)

	cases := []struct {
		name    string
		payload string
	}{
		{"not json", `{{{`},
		{"missing diagrams", `{"version":1}`},
		{"zero valid entries", `{"version":1,"diagrams":[{"id":"","title":""}]}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := store.Import([]byte(tc.payload))
			if err == nil {
				t.Fatal("expected error")
			}
			if !diagram.IsValidation(err) {
				t.Errorf("expected validation error, got %v", err)
			}
			if len(store.List()) != 0 {
				t.Error("rejected import must not write anything")
			}
		})
	}
}

package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mermaidkeep/mermaidkeep/internal/auth"
	"github.com/mermaidkeep/mermaidkeep/internal/db"
	"github.com/mermaidkeep/mermaidkeep/internal/diagram"
	"github.com/mermaidkeep/mermaidkeep/internal/history"
	"github.com/mermaidkeep/mermaidkeep/internal/localstore"
	"github.com/mermaidkeep/mermaidkeep/internal/store"
)

func setupTestServer(t *testing.T) (*Server, *store.Store) {
	t.Helper()

	vault := localstore.New(t.TempDir(), 0)
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("opening database: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	hist := history.NewStore(database)

	st := store.New(store.Options{
		Local:    vault,
		Notifier: store.NotifierFunc(func(store.Notification) {}),
		Recorder: hist,
	})
	if err := st.Load(context.Background()); err != nil {
		t.Fatalf("loading store: %v", err)
	}

	return New(Config{Port: 0}, st, vault, hist), st
}

func doJSON(t *testing.T, srv *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encoding body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	srv, _ := setupTestServer(t)
	rec := doJSON(t, srv, http.MethodGet, "/healthz", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestCreateAndGet(t *testing.T) {
	srv, _ := setupTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/diagrams", diagram.Draft{
		Title: "Login Flow",
		Code:  "graph TD\n  A-->B",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body)
	}

	var created diagram.Diagram
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if created.ID == "" {
		t.Error("expected an id")
	}
	if created.Type != diagram.TypeFlowchart {
		t.Errorf("expected detected flowchart type, got %q", created.Type)
	}

	rec = doJSON(t, srv, http.MethodGet, "/api/diagrams/"+created.ID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestCreateValidation(t *testing.T) {
	srv, _ := setupTestServer(t)

	cases := []struct {
		name  string
		draft diagram.Draft
	}{
		{"empty title", diagram.Draft{Title: "", Code: "graph TD", Type: diagram.TypeFlowchart}},
		{"empty code", diagram.Draft{Title: "Valid", Code: "", Type: diagram.TypeFlowchart}},
		{"bad type", diagram.Draft{Title: "Valid", Code: "graph TD", Type: "mindmap"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doJSON(t, srv, http.MethodPost, "/api/diagrams", tc.draft)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d: %s", rec.Code, rec.Body)
			}
		})
	}
}

func TestUpdateAndDelete(t *testing.T) {
	srv, st := setupTestServer(t)

	id, err := st.Add(diagram.Draft{Title: "Before", Code: "graph TD", Type: diagram.TypeFlowchart})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	rec := doJSON(t, srv, http.MethodPut, "/api/diagrams/"+id, map[string]string{"title": "After"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body)
	}
	var updated diagram.Diagram
	if err := json.Unmarshal(rec.Body.Bytes(), &updated); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if updated.Title != "After" {
		t.Errorf("expected updated title, got %q", updated.Title)
	}

	rec = doJSON(t, srv, http.MethodDelete, "/api/diagrams/"+id, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}

	rec = doJSON(t, srv, http.MethodDelete, "/api/diagrams/"+id, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("deleting twice should 404, got %d", rec.Code)
	}
}

func TestUpdateRejectsEmptyPatch(t *testing.T) {
	srv, st := setupTestServer(t)
	id, err := st.Add(diagram.Draft{Title: "X", Code: "graph TD", Type: diagram.TypeFlowchart})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	rec := doJSON(t, srv, http.MethodPut, "/api/diagrams/"+id, map[string]string{})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for empty patch, got %d", rec.Code)
	}
}

func TestListAndSearch(t *testing.T) {
	srv, st := setupTestServer(t)
	if _, err := st.Add(diagram.Draft{Title: "Payment Flow", Code: "graph TD", Type: diagram.TypeFlowchart, Tags: []string{"payments"}}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if _, err := st.Add(diagram.Draft{Title: "Org Chart", Code: "graph TD", Type: diagram.TypeFlowchart, IsFavorite: true}); err != nil {
		t.Fatalf("Add: %v", err)
	}

	var got []diagram.Diagram

	rec := doJSON(t, srv, http.MethodGet, "/api/diagrams", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decoding: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("expected 2 diagrams, got %d", len(got))
	}

	rec = doJSON(t, srv, http.MethodGet, "/api/diagrams?q=payment", nil)
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decoding: %v", err)
	}
	if len(got) != 1 || got[0].Title != "Payment Flow" {
		t.Errorf("unexpected search result: %v", got)
	}

	rec = doJSON(t, srv, http.MethodGet, "/api/diagrams?favorites=true", nil)
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decoding: %v", err)
	}
	if len(got) != 1 || !got[0].IsFavorite {
		t.Errorf("unexpected favorites result: %v", got)
	}
}

func TestQuotaMapsToInsufficientStorage(t *testing.T) {
	vault := localstore.New(t.TempDir(), 64)
	st := store.New(store.Options{
		Local:    vault,
		Notifier: store.NotifierFunc(func(store.Notification) {}),
	})
	if err := st.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	srv := New(Config{}, st, vault, nil)

	rec := doJSON(t, srv, http.MethodPost, "/api/diagrams", diagram.Draft{
		Title: "Too Big",
		Code:  "graph TD\n  A-->B",
		Type:  diagram.TypeFlowchart,
	})
	if rec.Code != http.StatusInsufficientStorage {
		t.Errorf("expected 507, got %d: %s", rec.Code, rec.Body)
	}
}

func TestExportImportEndpoints(t *testing.T) {
	srv, st := setupTestServer(t)
	if _, err := st.Add(diagram.Draft{Title: "Exported", Code: "graph TD", Type: diagram.TypeFlowchart}); err != nil {
		t.Fatalf("Add: %v", err)
	}

	rec := doJSON(t, srv, http.MethodGet, "/api/export", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("export: expected 200, got %d", rec.Code)
	}
	payload := rec.Body.Bytes()

	// Import the snapshot into a fresh server.
	other, otherStore := setupTestServer(t)
	req := httptest.NewRequest(http.MethodPost, "/api/import", bytes.NewReader(payload))
	rec = httptest.NewRecorder()
	other.Router().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("import: expected 200, got %d: %s", rec.Code, rec.Body)
	}

	var result map[string]int
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decoding: %v", err)
	}
	if result["imported"] != 1 {
		t.Errorf("expected 1 imported, got %d", result["imported"])
	}
	if len(otherStore.Diagrams()) != 1 {
		t.Error("import should refresh the in-memory collection")
	}
}

// idleCloud satisfies the cloud backend without accepting writes; it
// exists to put a test server into cloud mode.
type idleCloud struct{}

func (idleCloud) List(context.Context) ([]diagram.Diagram, error) { return nil, nil }

func (idleCloud) Create(context.Context, string, diagram.Draft) (diagram.Diagram, error) {
	return diagram.Diagram{}, errors.New("not implemented")
}

func (idleCloud) Update(context.Context, string, diagram.Patch) (diagram.Diagram, error) {
	return diagram.Diagram{}, errors.New("not implemented")
}

func (idleCloud) Remove(context.Context, string) error { return errors.New("not implemented") }

func TestImportRejectedInCloudMode(t *testing.T) {
	vault := localstore.New(t.TempDir(), 0)
	sess := &auth.Session{UserID: "user-1", AccessToken: "tok", ExpiresAt: time.Now().Add(time.Hour)}
	st := store.New(store.Options{
		Local:    vault,
		Cloud:    idleCloud{},
		Session:  func() *auth.Session { return sess },
		Notifier: store.NotifierFunc(func(store.Notification) {}),
	})
	if err := st.Load(context.Background()); err != nil {
		t.Fatalf("loading store: %v", err)
	}
	srv := New(Config{Port: 0}, st, vault, nil)

	snapshot, err := vault.Export()
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/api/import", bytes.NewReader(snapshot))
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 in cloud mode, got %d: %s", rec.Code, rec.Body)
	}
	if len(vault.List()) != 0 {
		t.Error("rejected import must not touch the vault")
	}
}

func TestHistoryEndpoint(t *testing.T) {
	srv, st := setupTestServer(t)
	for i := 0; i < 3; i++ {
		if _, err := st.Add(diagram.Draft{Title: fmt.Sprintf("D%d", i), Code: "graph TD", Type: diagram.TypeFlowchart}); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}

	rec := doJSON(t, srv, http.MethodGet, "/api/history?action=create", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var entries []history.Entry
	if err := json.Unmarshal(rec.Body.Bytes(), &entries); err != nil {
		t.Fatalf("decoding: %v", err)
	}
	if len(entries) != 3 {
		t.Errorf("expected 3 create entries, got %d", len(entries))
	}
}

func TestSyncWithoutSession(t *testing.T) {
	srv, _ := setupTestServer(t)
	rec := doJSON(t, srv, http.MethodPost, "/api/sync", nil)
	if rec.Code != http.StatusBadGateway {
		t.Errorf("expected 502 without a session, got %d", rec.Code)
	}
}

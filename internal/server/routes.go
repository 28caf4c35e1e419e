package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/mermaidkeep/mermaidkeep/internal/diagram"
	"github.com/mermaidkeep/mermaidkeep/internal/history"
)

func (s *Server) registerRoutes(r chi.Router) {
	r.Route("/api/diagrams", func(r chi.Router) {
		r.Get("/", s.handleList)
		r.Post("/", s.handleCreate)
		r.Get("/stats", s.handleStats)
		r.Get("/{id}", s.handleGet)
		r.Put("/{id}", s.handleUpdate)
		r.Delete("/{id}", s.handleDelete)
	})
	r.Get("/api/export", s.handleExport)
	r.Post("/api/import", s.handleImport)
	r.Post("/api/sync", s.handleSync)
	r.Get("/api/history", s.handleHistory)
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	diagrams := s.store.Search(q.Get("q"))
	if q.Get("favorites") == "true" {
		filtered := diagrams[:0]
		for _, d := range diagrams {
			if d.IsFavorite {
				filtered = append(filtered, d)
			}
		}
		diagrams = filtered
	}

	writeJSON(w, http.StatusOK, diagrams)
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var draft diagram.Draft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	if draft.Type != "" && !draft.Type.Valid() {
		http.Error(w, "unknown diagram type "+string(draft.Type), http.StatusBadRequest)
		return
	}
	if draft.Type == "" {
		draft.Type = diagram.DetectType(draft.Code)
	}

	id, err := s.store.Add(draft)
	if err != nil {
		writeError(w, err)
		return
	}

	d, ok := s.store.FindByID(id)
	if !ok {
		http.Error(w, "diagram vanished after save", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, d)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	d, ok := s.store.FindByID(id)
	if !ok {
		http.Error(w, "diagram not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var patch diagram.Patch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	if patch.IsZero() {
		http.Error(w, "empty update", http.StatusBadRequest)
		return
	}

	if err := s.store.Update(id, patch); err != nil {
		writeError(w, err)
		return
	}

	d, ok := s.store.FindByID(id)
	if !ok {
		http.Error(w, "diagram not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.store.Remove(id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.vault.Stats())
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	data, err := s.vault.Export()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="diagrams-export.json"`)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	// Imports land in the local vault only. Accepting one in cloud mode
	// would report a count of diagrams that never show up in listings.
	if s.store.CloudMode() {
		http.Error(w, "import writes to the local vault; sign out before importing", http.StatusConflict)
		return
	}

	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 32<<20))
	if err != nil {
		http.Error(w, "reading body: "+err.Error(), http.StatusBadRequest)
		return
	}

	count, err := s.vault.Import(payload)
	if err != nil {
		writeError(w, err)
		return
	}

	// The facade caches in memory; refresh it so imported diagrams
	// show up in subsequent list calls.
	if err := s.store.Load(r.Context()); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{"imported": count})
}

func (s *Server) handleSync(w http.ResponseWriter, r *http.Request) {
	count, err := s.store.SyncToCloud(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"synced": count})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		http.Error(w, "activity log not configured", http.StatusNotFound)
		return
	}

	q := r.URL.Query()
	filter := history.QueryFilter{
		DiagramID: q.Get("diagram"),
	}
	if v := q.Get("action"); v != "" {
		filter.Action = history.Action(v)
	}
	if v := q.Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.Limit = n
		}
	}

	entries, err := s.history.Query(r.Context(), filter)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// writeError maps store errors onto HTTP status codes.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, diagram.ErrNotFound):
		http.Error(w, "diagram not found", http.StatusNotFound)
	case errors.Is(err, diagram.ErrQuotaExceeded):
		http.Error(w, "storage limit reached", http.StatusInsufficientStorage)
	case diagram.IsValidation(err):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// Package cloudstore adapts the remote Supabase `diagrams` table to the
// app diagram shape. It does translation and error propagation only: no
// caching, no retries, no local fallback. What to do with a failure is
// the facade's decision.
package cloudstore

import (
	"context"
	"fmt"
	"time"

	"github.com/supabase-community/postgrest-go"
	"github.com/supabase-community/supabase-go"

	"github.com/mermaidkeep/mermaidkeep/internal/diagram"
)

// Table is the remote table holding one row per diagram, scoped to its
// owner by a user_id foreign key and row-level security.
const Table = "diagrams"

// Config carries what the adapter needs to reach the project.
type Config struct {
	URL         string
	AnonKey     string
	AccessToken string // the signed-in user's JWT
}

// Store is a thin CRUD adapter over the remote table.
type Store struct {
	client *supabase.Client
}

// New creates a cloud store acting as the user identified by the
// access token.
func New(cfg Config) (*Store, error) {
	opts := &supabase.ClientOptions{}
	if cfg.AccessToken != "" {
		opts.Headers = map[string]string{"Authorization": "Bearer " + cfg.AccessToken}
	}
	client, err := supabase.NewClient(cfg.URL, cfg.AnonKey, opts)
	if err != nil {
		return nil, fmt.Errorf("creating supabase client: %w", err)
	}
	return &Store{client: client}, nil
}

// row is the remote shape of a diagram.
type row struct {
	ID          string    `json:"id,omitempty"`
	UserID      string    `json:"user_id,omitempty"`
	Title       string    `json:"title"`
	Code        string    `json:"code"`
	Type        string    `json:"type"`
	Description *string   `json:"description"`
	Tags        []string  `json:"tags"`
	IsFavorite  bool      `json:"is_favorite"`
	CreatedAt   time.Time `json:"created_at,omitempty"`
	UpdatedAt   time.Time `json:"updated_at,omitempty"`
}

// insertRow is the creation shape: the server assigns id and
// timestamps, so they never appear here.
type insertRow struct {
	UserID      string   `json:"user_id"`
	Title       string   `json:"title"`
	Code        string   `json:"code"`
	Type        string   `json:"type"`
	Description *string  `json:"description"`
	Tags        []string `json:"tags"`
	IsFavorite  bool     `json:"is_favorite"`
}

func toDiagram(r row) diagram.Diagram {
	d := diagram.Diagram{
		ID:         r.ID,
		Title:      r.Title,
		Code:       r.Code,
		Type:       diagram.Type(r.Type),
		Tags:       r.Tags,
		IsFavorite: r.IsFavorite,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
	if r.Tags == nil {
		d.Tags = []string{}
	}
	if r.Description != nil {
		d.Description = *r.Description
	}
	return d
}

func toInsertRow(userID string, d diagram.Draft) insertRow {
	r := insertRow{
		UserID:     userID,
		Title:      d.Title,
		Code:       d.Code,
		Type:       string(d.Type),
		Tags:       d.Tags,
		IsFavorite: d.IsFavorite,
	}
	if r.Tags == nil {
		r.Tags = []string{}
	}
	if d.Description != "" {
		r.Description = &d.Description
	}
	return r
}

// patchColumns translates only the provided patch fields to remote
// column names.
func patchColumns(p diagram.Patch) map[string]any {
	cols := make(map[string]any)
	if p.Title != nil {
		cols["title"] = *p.Title
	}
	if p.Code != nil {
		cols["code"] = *p.Code
	}
	if p.Type != nil {
		cols["type"] = string(*p.Type)
	}
	if p.Description != nil {
		cols["description"] = *p.Description
	}
	if p.Tags != nil {
		cols["tags"] = *p.Tags
	}
	if p.IsFavorite != nil {
		cols["is_favorite"] = *p.IsFavorite
	}
	return cols
}

// List fetches every diagram visible to the current session, most
// recently updated first. The Supabase client manages its own HTTP
// lifecycle, so ctx is accepted for interface symmetry only.
func (s *Store) List(ctx context.Context) ([]diagram.Diagram, error) {
	var rows []row
	_, err := s.client.From(Table).
		Select("*", "", false).
		Order("updated_at", &postgrest.OrderOpts{Ascending: false}).
		ExecuteTo(&rows)
	if err != nil {
		return nil, fmt.Errorf("listing cloud diagrams: %w", err)
	}

	diagrams := make([]diagram.Diagram, 0, len(rows))
	for _, r := range rows {
		diagrams = append(diagrams, toDiagram(r))
	}
	return diagrams, nil
}

// Create inserts one diagram scoped to userID and returns the fully
// populated entry with its server-assigned id and timestamps.
func (s *Store) Create(ctx context.Context, userID string, d diagram.Draft) (diagram.Diagram, error) {
	var created row
	_, err := s.client.From(Table).
		Insert(toInsertRow(userID, d), false, "", "representation", "").
		Single().
		ExecuteTo(&created)
	if err != nil {
		return diagram.Diagram{}, fmt.Errorf("creating cloud diagram: %w", err)
	}
	return toDiagram(created), nil
}

// CreateBatch inserts all drafts in a single multi-row insert. PostgREST
// executes it as one statement, so it either lands whole or not at all.
func (s *Store) CreateBatch(ctx context.Context, userID string, drafts []diagram.Draft) error {
	if len(drafts) == 0 {
		return nil
	}
	rows := make([]insertRow, 0, len(drafts))
	for _, d := range drafts {
		rows = append(rows, toInsertRow(userID, d))
	}
	_, _, err := s.client.From(Table).
		Insert(rows, false, "", "minimal", "").
		Execute()
	if err != nil {
		return fmt.Errorf("batch inserting %d cloud diagrams: %w", len(rows), err)
	}
	return nil
}

// Update patches the row with the given id and returns the updated
// diagram.
func (s *Store) Update(ctx context.Context, id string, p diagram.Patch) (diagram.Diagram, error) {
	cols := patchColumns(p)
	if len(cols) == 0 {
		return diagram.Diagram{}, fmt.Errorf("updating cloud diagram %s: empty patch", id)
	}

	var updated row
	_, err := s.client.From(Table).
		Update(cols, "representation", "").
		Eq("id", id).
		Single().
		ExecuteTo(&updated)
	if err != nil {
		return diagram.Diagram{}, fmt.Errorf("updating cloud diagram %s: %w", id, err)
	}
	return toDiagram(updated), nil
}

// Remove deletes the row with the given id.
func (s *Store) Remove(ctx context.Context, id string) error {
	_, _, err := s.client.From(Table).
		Delete("minimal", "").
		Eq("id", id).
		Execute()
	if err != nil {
		return fmt.Errorf("deleting cloud diagram %s: %w", id, err)
	}
	return nil
}

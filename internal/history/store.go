// Package history keeps a local activity log of committed diagram
// mutations. The log is informational: it never influences what the
// stores do, and failures to write it never fail the mutation.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mermaidkeep/mermaidkeep/internal/db"
	"github.com/mermaidkeep/mermaidkeep/internal/store"
)

// Store provides append and query operations for the activity log.
type Store struct {
	db *db.DB
}

// NewStore creates a Store backed by the given database.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// Log inserts a new activity entry. If entry.ID is empty a UUID is
// generated.
func (s *Store) Log(ctx context.Context, entry Entry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO activity_log (id, action, diagram_id, title, backend, detail)
		VALUES (?, ?, ?, ?, ?, ?)`,
		entry.ID,
		string(entry.Action),
		entry.DiagramID,
		entry.Title,
		string(entry.Backend),
		entry.Detail,
	)
	if err != nil {
		return fmt.Errorf("inserting activity entry: %w", err)
	}
	return nil
}

// QueryFilter controls which activity entries are returned by Query.
type QueryFilter struct {
	Action    Action
	DiagramID string
	Backend   Backend
	Since     *time.Time
	Limit     int
}

// Query returns activity entries matching the filter, newest first.
func (s *Store) Query(ctx context.Context, filter QueryFilter) ([]Entry, error) {
	var (
		clauses []string
		args    []any
	)

	if filter.Action != "" {
		clauses = append(clauses, "action = ?")
		args = append(args, string(filter.Action))
	}
	if filter.DiagramID != "" {
		clauses = append(clauses, "diagram_id = ?")
		args = append(args, filter.DiagramID)
	}
	if filter.Backend != "" {
		clauses = append(clauses, "backend = ?")
		args = append(args, string(filter.Backend))
	}
	if filter.Since != nil {
		clauses = append(clauses, "timestamp >= ?")
		args = append(args, filter.Since.UTC().Format(time.DateTime))
	}

	query := "SELECT id, timestamp, action, diagram_id, title, backend, detail FROM activity_log"
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY timestamp DESC, id DESC"
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying activity log: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *e)
	}
	return entries, rows.Err()
}

// Recent returns the latest n entries.
func (s *Store) Recent(ctx context.Context, n int) ([]Entry, error) {
	return s.Query(ctx, QueryFilter{Limit: n})
}

// DeleteBefore removes all entries older than the given time. Returns
// the number of deleted rows.
func (s *Store) DeleteBefore(ctx context.Context, before time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM activity_log WHERE timestamp < ?",
		before.UTC().Format(time.DateTime),
	)
	if err != nil {
		return 0, fmt.Errorf("deleting old activity entries: %w", err)
	}
	return res.RowsAffected()
}

func scanEntry(rows *sql.Rows) (*Entry, error) {
	var (
		e              Entry
		ts             string
		action, target string
	)
	if err := rows.Scan(&e.ID, &ts, &action, &e.DiagramID, &e.Title, &target, &e.Detail); err != nil {
		return nil, err
	}
	e.Action = Action(action)
	e.Backend = Backend(target)

	if t, err := time.Parse(time.DateTime, ts); err == nil {
		e.Timestamp = t
	} else if t, err := time.Parse(time.RFC3339, ts); err == nil {
		e.Timestamp = t
	}
	return &e, nil
}

// Record implements the store facade's Recorder interface.
func (s *Store) Record(ctx context.Context, a store.Activity) error {
	return s.Log(ctx, Entry{
		Action:    Action(a.Action),
		DiagramID: a.DiagramID,
		Title:     a.Title,
		Backend:   Backend(a.Backend),
	})
}

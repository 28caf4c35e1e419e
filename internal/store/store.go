// Package store is the facade the rest of the program talks to. It
// owns the in-memory diagram collection, routes every operation to the
// local vault or the cloud table depending on the current session, and
// applies optimistic updates that roll back when the backend refuses
// the write. Nothing above this package touches a backend directly,
// and nothing below it knows about user-facing messages.
package store

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mermaidkeep/mermaidkeep/internal/auth"
	"github.com/mermaidkeep/mermaidkeep/internal/diagram"
)

// LocalBackend is the synchronous guest-mode backend.
type LocalBackend interface {
	List() []diagram.Diagram
	Save(d diagram.Diagram) (diagram.Diagram, error)
	Update(id string, p diagram.Patch) (diagram.Diagram, error)
	Remove(id string) error
}

// CloudBackend is the asynchronous authenticated backend.
type CloudBackend interface {
	List(ctx context.Context) ([]diagram.Diagram, error)
	Create(ctx context.Context, userID string, d diagram.Draft) (diagram.Diagram, error)
	Update(ctx context.Context, id string, p diagram.Patch) (diagram.Diagram, error)
	Remove(ctx context.Context, id string) error
}

// Migrator runs the one-shot local-to-cloud migration.
type Migrator interface {
	SyncToCloud(ctx context.Context, userID string) (int, error)
}

// Activity describes a committed mutation for the activity log.
type Activity struct {
	Action    string
	DiagramID string
	Title     string
	Backend   string
}

// Recorder appends committed mutations to the activity log.
// Best-effort: failures never fail the mutation that triggered them.
type Recorder interface {
	Record(ctx context.Context, a Activity) error
}

// Options wires the facade's collaborators. Session is the explicit
// "current principal" accessor: the facade never reads ambient state.
type Options struct {
	Local    LocalBackend
	Cloud    CloudBackend
	Session  func() *auth.Session
	Migrator Migrator
	Notifier Notifier
	Recorder Recorder
}

// Store is the diagram facade. The mutex guards the in-memory
// collection; backend calls happen outside it.
type Store struct {
	mu       sync.Mutex
	diagrams []diagram.Diagram

	local    LocalBackend
	cloud    CloudBackend
	session  func() *auth.Session
	migrator Migrator
	notifier Notifier
	recorder Recorder

	inflight sync.WaitGroup
}

// New creates a facade. Local is required; Cloud, Migrator and
// Recorder may be nil (guest-only operation, no activity log).
func New(opts Options) *Store {
	if opts.Session == nil {
		opts.Session = func() *auth.Session { return nil }
	}
	if opts.Notifier == nil {
		opts.Notifier = LogNotifier{}
	}
	return &Store{
		local:    opts.Local,
		cloud:    opts.Cloud,
		session:  opts.Session,
		migrator: opts.Migrator,
		notifier: opts.Notifier,
		recorder: opts.Recorder,
	}
}

// CloudMode reports whether the cloud backend is authoritative right
// now: a session exists and a cloud backend is wired.
func (s *Store) CloudMode() bool {
	return s.cloud != nil && s.session() != nil
}

// Load replaces the in-memory collection from whichever backend is
// authoritative. A failed cloud load degrades to an empty collection
// and a surfaced error; it never panics the caller.
func (s *Store) Load(ctx context.Context) error {
	if s.CloudMode() {
		diagrams, err := s.cloud.List(ctx)
		if err != nil {
			s.replace(nil)
			s.notifier.Notify(Notification{
				Title:       "Load failed",
				Description: userMessage(err),
				Severity:    SeverityError,
			})
			return fmt.Errorf("loading cloud diagrams: %w", err)
		}
		s.replace(diagrams)
		return nil
	}
	s.replace(s.local.List())
	return nil
}

// SessionChanged re-evaluates backend selection after a sign-in or
// sign-out and reloads the collection from the newly authoritative
// backend.
func (s *Store) SessionChanged(ctx context.Context) error {
	return s.Load(ctx)
}

// Diagrams returns a copy of the in-memory collection, most recently
// updated first.
func (s *Store) Diagrams() []diagram.Diagram {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]diagram.Diagram, len(s.diagrams))
	for i, d := range s.diagrams {
		out[i] = d.Clone()
	}
	return out
}

// FindByID is a pure in-memory lookup; it never hits a backend.
func (s *Store) FindByID(id string) (diagram.Diagram, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, d := range s.diagrams {
		if d.ID == id {
			return d.Clone(), true
		}
	}
	return diagram.Diagram{}, false
}

// Search filters the in-memory collection by case-insensitive
// substring over title, description and tags.
func (s *Store) Search(query string) []diagram.Diagram {
	all := s.Diagrams()
	q := normalizeQuery(query)
	if q == "" {
		return all
	}
	out := make([]diagram.Diagram, 0, len(all))
	for _, d := range all {
		if diagramMatches(d, q) {
			out = append(out, d)
		}
	}
	return out
}

// Add persists a new diagram built from the draft. The returned id is
// in the in-memory collection when the call returns. In cloud mode the
// write is confirmed asynchronously: on success the optimistic entry
// is replaced by the canonical server row, on failure it is removed
// again and a failure notification fires.
func (s *Store) Add(d diagram.Draft) (string, error) {
	if err := diagram.ValidateDraft(d); err != nil {
		s.notifier.Notify(failure("Save failed", err))
		return "", err
	}
	tags, err := diagram.NormalizeTags(d.Tags)
	if err != nil {
		s.notifier.Notify(failure("Save failed", err))
		return "", err
	}
	d.Tags = tags

	now := time.Now().UTC()
	optimistic := diagram.Diagram{
		ID:          uuid.New().String(),
		Title:       d.Title,
		Code:        d.Code,
		Type:        d.Type,
		Tags:        d.Tags,
		Description: d.Description,
		IsFavorite:  d.IsFavorite,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	s.mu.Lock()
	snapshot := s.snapshotLocked()
	s.diagrams = append([]diagram.Diagram{optimistic}, s.diagrams...)
	s.mu.Unlock()

	if s.CloudMode() {
		userID := s.session().UserID
		s.inflight.Add(1)
		go func() {
			defer s.inflight.Done()
			canonical, err := s.cloud.Create(context.Background(), userID, d)
			if err != nil {
				s.restore(snapshot)
				s.notifier.Notify(failure("Save failed", err))
				return
			}
			s.reconcile(optimistic.ID, canonical)
			s.notifier.Notify(Notification{
				Title:       "Diagram saved to cloud",
				Description: fmt.Sprintf("%q saved.", d.Title),
				Severity:    SeveritySuccess,
			})
			s.record(Activity{Action: "create", DiagramID: canonical.ID, Title: canonical.Title, Backend: "cloud"})
		}()
		return optimistic.ID, nil
	}

	saved, err := s.local.Save(optimistic)
	if err != nil {
		s.restore(snapshot)
		s.notifier.Notify(failure("Save failed", err))
		return "", err
	}
	s.reconcile(optimistic.ID, saved)
	s.notifier.Notify(Notification{
		Title:       "Diagram saved",
		Description: fmt.Sprintf("%q saved.", saved.Title),
		Severity:    SeveritySuccess,
	})
	s.record(Activity{Action: "create", DiagramID: saved.ID, Title: saved.Title, Backend: "local"})
	return saved.ID, nil
}

// Update applies a partial update. The in-memory entry is patched and
// the collection re-sorted immediately; a backend failure restores the
// pre-operation snapshot.
func (s *Store) Update(id string, p diagram.Patch) error {
	if err := validatePatch(p); err != nil {
		s.notifier.Notify(failure("Update failed", err))
		return err
	}
	if p.Tags != nil {
		tags, err := diagram.NormalizeTags(*p.Tags)
		if err != nil {
			s.notifier.Notify(failure("Update failed", err))
			return err
		}
		p.Tags = &tags
	}

	s.mu.Lock()
	snapshot := s.snapshotLocked()
	title := ""
	for i := range s.diagrams {
		if s.diagrams[i].ID == id {
			updated := p.Apply(s.diagrams[i])
			updated.UpdatedAt = time.Now().UTC()
			s.diagrams[i] = updated
			title = updated.Title
			break
		}
	}
	diagram.SortByUpdatedDesc(s.diagrams)
	s.mu.Unlock()

	if s.CloudMode() {
		s.inflight.Add(1)
		go func() {
			defer s.inflight.Done()
			canonical, err := s.cloud.Update(context.Background(), id, p)
			if err != nil {
				s.restore(snapshot)
				s.notifier.Notify(failure("Update failed", err))
				return
			}
			s.reconcile(id, canonical)
			s.notifier.Notify(Notification{
				Title:       "Diagram updated",
				Description: "Changes saved to cloud.",
				Severity:    SeveritySuccess,
			})
			s.record(Activity{Action: "update", DiagramID: canonical.ID, Title: canonical.Title, Backend: "cloud"})
		}()
		return nil
	}

	stored, err := s.local.Update(id, p)
	if err != nil {
		s.restore(snapshot)
		s.notifier.Notify(failure("Update failed", err))
		return err
	}
	s.reconcile(id, stored)
	s.notifier.Notify(Notification{
		Title:       "Diagram updated",
		Description: "Changes saved.",
		Severity:    SeveritySuccess,
	})
	s.record(Activity{Action: "update", DiagramID: stored.ID, Title: title, Backend: "local"})
	return nil
}

// Remove deletes a diagram. The entry leaves the in-memory collection
// immediately; a backend failure restores the pre-operation snapshot.
func (s *Store) Remove(id string) error {
	s.mu.Lock()
	snapshot := s.snapshotLocked()
	title := ""
	kept := s.diagrams[:0]
	for _, d := range s.diagrams {
		if d.ID == id {
			title = d.Title
			continue
		}
		kept = append(kept, d)
	}
	s.diagrams = kept
	s.mu.Unlock()

	if s.CloudMode() {
		s.inflight.Add(1)
		go func() {
			defer s.inflight.Done()
			if err := s.cloud.Remove(context.Background(), id); err != nil {
				s.restore(snapshot)
				s.notifier.Notify(failure("Delete failed", err))
				return
			}
			s.notifier.Notify(Notification{
				Title:       "Diagram deleted",
				Description: deletedDescription(title),
				Severity:    SeveritySuccess,
			})
			s.record(Activity{Action: "delete", DiagramID: id, Title: title, Backend: "cloud"})
		}()
		return nil
	}

	if err := s.local.Remove(id); err != nil {
		s.restore(snapshot)
		s.notifier.Notify(failure("Delete failed", err))
		return err
	}
	s.notifier.Notify(Notification{
		Title:       "Diagram deleted",
		Description: deletedDescription(title),
		Severity:    SeveritySuccess,
	})
	s.record(Activity{Action: "delete", DiagramID: id, Title: title, Backend: "local"})
	return nil
}

// SyncToCloud migrates the local vault to the cloud and reloads the
// in-memory collection from the cloud afterwards. Requires a session.
func (s *Store) SyncToCloud(ctx context.Context) (int, error) {
	sess := s.session()
	if sess == nil {
		err := errors.New("sign in required to sync")
		s.notifier.Notify(Notification{
			Title:       "Sign in required",
			Description: "Please sign in to sync your diagrams to the cloud.",
			Severity:    SeverityError,
		})
		return 0, err
	}
	if s.migrator == nil {
		return 0, errors.New("no migrator configured")
	}

	count, err := s.migrator.SyncToCloud(ctx, sess.UserID)
	if err != nil {
		s.notifier.Notify(failure("Sync failed", err))
		return 0, err
	}

	if count > 0 {
		if err := s.Load(ctx); err != nil {
			return count, err
		}
		s.notifier.Notify(Notification{
			Title:       "Sync complete",
			Description: fmt.Sprintf("%d diagram%s synced to cloud.", count, plural(count)),
			Severity:    SeveritySuccess,
		})
		s.record(Activity{Action: "sync", Title: fmt.Sprintf("%d migrated", count), Backend: "cloud"})
	} else {
		s.notifier.Notify(Notification{
			Title:       "Nothing to sync",
			Description: "No local diagrams to migrate.",
			Severity:    SeverityInfo,
		})
	}
	return count, nil
}

// Wait blocks until every in-flight cloud commit has resolved. Callers
// that exit after mutating (the CLI) use it to avoid abandoning
// writes.
func (s *Store) Wait() {
	s.inflight.Wait()
}

// snapshotLocked copies the collection for a later verbatim rollback.
// Each operation keeps its own snapshot for the operation's lifetime;
// there is no shared "previous" value two operations could fight over.
func (s *Store) snapshotLocked() []diagram.Diagram {
	snap := make([]diagram.Diagram, len(s.diagrams))
	for i, d := range s.diagrams {
		snap[i] = d.Clone()
	}
	return snap
}

func (s *Store) replace(ds []diagram.Diagram) {
	copied := make([]diagram.Diagram, len(ds))
	for i, d := range ds {
		copied[i] = d.Clone()
	}
	diagram.SortByUpdatedDesc(copied)
	s.mu.Lock()
	s.diagrams = copied
	s.mu.Unlock()
}

func (s *Store) restore(snapshot []diagram.Diagram) {
	s.mu.Lock()
	s.diagrams = snapshot
	s.mu.Unlock()
}

// reconcile swaps the optimistic entry for the backend's canonical one
// and re-sorts.
func (s *Store) reconcile(optimisticID string, canonical diagram.Diagram) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.diagrams {
		if s.diagrams[i].ID == optimisticID {
			s.diagrams[i] = canonical.Clone()
			break
		}
	}
	diagram.SortByUpdatedDesc(s.diagrams)
}

func (s *Store) record(a Activity) {
	if s.recorder == nil {
		return
	}
	if err := s.recorder.Record(context.Background(), a); err != nil {
		log.Printf("store: recording activity: %v", err)
	}
}

// userMessage translates backend errors into user-readable text. This
// is the only layer that does so.
func userMessage(err error) string {
	switch {
	case errors.Is(err, diagram.ErrQuotaExceeded):
		return "Storage limit reached. Please delete some diagrams to free up space."
	case errors.Is(err, diagram.ErrNotFound):
		return "Diagram not found."
	case diagram.IsValidation(err):
		return err.Error()
	default:
		return err.Error()
	}
}

func failure(title string, err error) Notification {
	return Notification{Title: title, Description: userMessage(err), Severity: SeverityError}
}

func deletedDescription(title string) string {
	if title == "" {
		return "Diagram deleted successfully."
	}
	return fmt.Sprintf("%q has been deleted.", title)
}

func validatePatch(p diagram.Patch) error {
	if p.Title != nil {
		if err := diagram.ValidateTitle(*p.Title); err != nil {
			return err
		}
	}
	if p.Code != nil {
		if err := diagram.ValidateCode(*p.Code); err != nil {
			return err
		}
	}
	if p.Type != nil && !p.Type.Valid() {
		return &diagram.ValidationError{Field: "type", Reason: "unknown diagram type " + string(*p.Type)}
	}
	if p.Description != nil {
		if err := diagram.ValidateDescription(*p.Description); err != nil {
			return err
		}
	}
	if p.Tags != nil {
		if _, err := diagram.NormalizeTags(*p.Tags); err != nil {
			return err
		}
	}
	return nil
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

package history

import "time"

// Action describes what was done to a diagram.
type Action string

const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
	ActionSync   Action = "sync"
	ActionImport Action = "import"
)

// Backend identifies which store handled the mutation.
type Backend string

const (
	BackendLocal Backend = "local"
	BackendCloud Backend = "cloud"
)

// Entry is a single activity log record.
type Entry struct {
	ID        string
	Timestamp time.Time
	Action    Action
	DiagramID string
	Title     string
	Backend   Backend
	Detail    string
}

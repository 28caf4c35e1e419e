package diagram

import (
	"sort"
	"time"
)

// Type identifies the kind of Mermaid diagram. It is a display and
// filtering hint only; the code is never validated against it.
type Type string

const (
	TypeFlowchart Type = "flowchart"
	TypeSequence  Type = "sequence"
	TypeClass     Type = "class"
	TypeER        Type = "er"
	TypeGantt     Type = "gantt"
	TypePie       Type = "pie"
	TypeState     Type = "state"
	TypeJourney   Type = "journey"
	TypeGit       Type = "git"
)

// Types lists every recognised diagram type.
var Types = []Type{
	TypeFlowchart, TypeSequence, TypeClass, TypeER, TypeGantt,
	TypePie, TypeState, TypeJourney, TypeGit,
}

// Valid reports whether t is one of the recognised diagram types.
func (t Type) Valid() bool {
	for _, known := range Types {
		if t == known {
			return true
		}
	}
	return false
}

// Diagram is the persisted user artifact. JSON field names match the
// local vault format, which predates this tool.
type Diagram struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Code        string    `json:"code"`
	Type        Type      `json:"type"`
	Tags        []string  `json:"tags"`
	Description string    `json:"description,omitempty"`
	IsFavorite  bool      `json:"isFavorite,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Clone returns a deep copy of the diagram.
func (d Diagram) Clone() Diagram {
	out := d
	if d.Tags != nil {
		out.Tags = append([]string(nil), d.Tags...)
	}
	return out
}

// Draft is a diagram before it has been persisted anywhere: no id and
// no timestamps. Whichever backend accepts it assigns those.
type Draft struct {
	Title       string   `json:"title"`
	Code        string   `json:"code"`
	Type        Type     `json:"type"`
	Tags        []string `json:"tags"`
	Description string   `json:"description,omitempty"`
	IsFavorite  bool     `json:"isFavorite,omitempty"`
}

// Patch is a partial update. Nil fields are left untouched. The id and
// createdAt of a diagram can never be patched.
type Patch struct {
	Title       *string   `json:"title,omitempty"`
	Code        *string   `json:"code,omitempty"`
	Type        *Type     `json:"type,omitempty"`
	Tags        *[]string `json:"tags,omitempty"`
	Description *string   `json:"description,omitempty"`
	IsFavorite  *bool     `json:"isFavorite,omitempty"`
}

// IsZero reports whether the patch changes nothing.
func (p Patch) IsZero() bool {
	return p.Title == nil && p.Code == nil && p.Type == nil &&
		p.Tags == nil && p.Description == nil && p.IsFavorite == nil
}

// Apply merges the patch into d and returns the result. It does not
// touch id, createdAt or updatedAt; refreshing updatedAt is the
// caller's job.
func (p Patch) Apply(d Diagram) Diagram {
	out := d.Clone()
	if p.Title != nil {
		out.Title = *p.Title
	}
	if p.Code != nil {
		out.Code = *p.Code
	}
	if p.Type != nil {
		out.Type = *p.Type
	}
	if p.Tags != nil {
		out.Tags = append([]string(nil), (*p.Tags)...)
	}
	if p.Description != nil {
		out.Description = *p.Description
	}
	if p.IsFavorite != nil {
		out.IsFavorite = *p.IsFavorite
	}
	return out
}

// Draft returns the creation shape of d, dropping id and timestamps.
func (d Diagram) Draft() Draft {
	return Draft{
		Title:       d.Title,
		Code:        d.Code,
		Type:        d.Type,
		Tags:        append([]string(nil), d.Tags...),
		Description: d.Description,
		IsFavorite:  d.IsFavorite,
	}
}

// SortByUpdatedDesc sorts diagrams in place, most recently updated
// first. Every collection handed to callers goes through this.
func SortByUpdatedDesc(ds []Diagram) {
	sort.SliceStable(ds, func(i, j int) bool {
		return ds[i].UpdatedAt.After(ds[j].UpdatedAt)
	})
}

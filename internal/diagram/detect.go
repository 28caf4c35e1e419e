package diagram

import (
	"strings"
	"time"
)

// typePrefixes maps the keyword a Mermaid document opens with to the
// diagram type it declares.
var typePrefixes = []struct {
	prefix string
	typ    Type
}{
	{"graph", TypeFlowchart},
	{"flowchart", TypeFlowchart},
	{"sequencediagram", TypeSequence},
	{"classdiagram", TypeClass},
	{"erdiagram", TypeER},
	{"gantt", TypeGantt},
	{"pie", TypePie},
	{"statediagram", TypeState},
	{"journey", TypeJourney},
	{"gitgraph", TypeGit},
}

// DetectType sniffs the diagram type from the first non-blank line of
// the code. Unknown or empty code defaults to flowchart.
func DetectType(code string) Type {
	for _, line := range strings.Split(code, "\n") {
		trimmed := strings.ToLower(strings.TrimSpace(line))
		if trimmed == "" {
			continue
		}
		for _, p := range typePrefixes {
			if strings.HasPrefix(trimmed, p.prefix) {
				return p.typ
			}
		}
		break
	}
	return TypeFlowchart
}

// typeNames holds the display name for each diagram type.
var typeNames = map[Type]string{
	TypeFlowchart: "Flowchart",
	TypeSequence:  "Sequence Diagram",
	TypeClass:     "Class Diagram",
	TypeER:        "Entity Relationship Diagram",
	TypeGantt:     "Gantt Chart",
	TypePie:       "Pie Chart",
	TypeState:     "State Diagram",
	TypeJourney:   "User Journey",
	TypeGit:       "Git Graph",
}

// DisplayName returns the human-readable name of the type.
func (t Type) DisplayName() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return string(t)
}

// DefaultTitle builds a title for an unnamed diagram of the given
// type, e.g. "Flowchart - Jan 2, 2026".
func DefaultTitle(t Type, now time.Time) string {
	return t.DisplayName() + " - " + now.Format("Jan 2, 2006")
}

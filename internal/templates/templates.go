// Package templates ships the built-in diagram template library:
// pre-built Mermaid diagrams organized by category and difficulty.
package templates

import (
	"strings"

	"github.com/mermaidkeep/mermaidkeep/internal/diagram"
)

// Category groups templates by audience.
type Category string

const (
	CategoryBusiness  Category = "business"
	CategoryTechnical Category = "technical"
	CategoryEducation Category = "education"
)

// Difficulty indicates how much Mermaid experience a template assumes.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// Template is a pre-built diagram users can start from.
type Template struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Code        string       `json:"code"`
	Type        diagram.Type `json:"type"`
	Category    Category     `json:"category"`
	Difficulty  Difficulty   `json:"difficulty"`
}

// All returns every built-in template.
func All() []Template {
	out := make([]Template, len(builtin))
	copy(out, builtin)
	return out
}

// Get returns the template with the given id.
func Get(id string) (Template, bool) {
	for _, t := range builtin {
		if t.ID == id {
			return t, true
		}
	}
	return Template{}, false
}

// ByCategory returns the templates in a category.
func ByCategory(c Category) []Template {
	var out []Template
	for _, t := range builtin {
		if t.Category == c {
			out = append(out, t)
		}
	}
	return out
}

// ByType returns the templates producing the given diagram type.
func ByType(dt diagram.Type) []Template {
	var out []Template
	for _, t := range builtin {
		if t.Type == dt {
			out = append(out, t)
		}
	}
	return out
}

// Search returns templates whose name or description contains the
// query, case-insensitively. An empty query returns everything.
func Search(query string) []Template {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return All()
	}
	var out []Template
	for _, t := range builtin {
		if strings.Contains(strings.ToLower(t.Name), q) ||
			strings.Contains(strings.ToLower(t.Description), q) {
			out = append(out, t)
		}
	}
	return out
}

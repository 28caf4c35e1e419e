package store

import (
	"strings"

	"github.com/mermaidkeep/mermaidkeep/internal/diagram"
)

func normalizeQuery(q string) string {
	return strings.ToLower(strings.TrimSpace(q))
}

func diagramMatches(d diagram.Diagram, q string) bool {
	if strings.Contains(strings.ToLower(d.Title), q) {
		return true
	}
	if strings.Contains(strings.ToLower(d.Description), q) {
		return true
	}
	for _, tag := range d.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

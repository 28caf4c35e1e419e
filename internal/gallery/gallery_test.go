package gallery

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mermaidkeep/mermaidkeep/internal/diagram"
)

func testDiagrams() []diagram.Diagram {
	now := time.Now().UTC()
	return []diagram.Diagram{
		{
			ID:          "aaa",
			Title:       "Login Flow",
			Code:        "graph TD\n  A-->B",
			Type:        diagram.TypeFlowchart,
			Tags:        []string{"auth"},
			Description: "How users sign in",
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		{
			ID:         "bbb",
			Title:      "Checkout Sequence",
			Code:       "sequenceDiagram\n  A->>B: pay",
			Type:       diagram.TypeSequence,
			IsFavorite: true,
			CreatedAt:  now,
			UpdatedAt:  now,
		},
	}
}

func TestGenerate(t *testing.T) {
	out := t.TempDir()
	g := NewGenerator(out, "My Diagrams")

	count, err := g.Generate(testDiagrams())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 pages, got %d", count)
	}

	for _, name := range []string{"index.html", "diagram-aaa.html", "diagram-bbb.html", "style.css"} {
		if _, err := os.Stat(filepath.Join(out, name)); err != nil {
			t.Errorf("expected %s: %v", name, err)
		}
	}
}

func TestIndexLinksAllDiagrams(t *testing.T) {
	out := t.TempDir()
	g := NewGenerator(out, "")

	if _, err := g.Generate(testDiagrams()); err != nil {
		t.Fatalf("Generate: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(out, "index.html"))
	if err != nil {
		t.Fatalf("reading index: %v", err)
	}
	index := string(data)

	if !strings.Contains(index, "diagram-aaa.html") || !strings.Contains(index, "diagram-bbb.html") {
		t.Error("index should link every diagram page")
	}
	if !strings.Contains(index, "Login Flow") {
		t.Error("index should show diagram titles")
	}
	if !strings.Contains(index, "Diagram Gallery") {
		t.Error("empty title should default to Diagram Gallery")
	}
}

func TestDiagramPageHasMermaidDiv(t *testing.T) {
	out := t.TempDir()
	g := NewGenerator(out, "My Diagrams")

	if _, err := g.Generate(testDiagrams()); err != nil {
		t.Fatalf("Generate: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(out, "diagram-aaa.html"))
	if err != nil {
		t.Fatalf("reading page: %v", err)
	}
	page := string(data)

	if !strings.Contains(page, `<div class="mermaid">`) {
		t.Error("mermaid code block should be converted to a mermaid div")
	}
	if !strings.Contains(page, "How users sign in") {
		t.Error("page should include the description")
	}
	if !strings.Contains(page, "Flowchart") {
		t.Error("page should name the diagram type")
	}
}

func TestGenerateEmpty(t *testing.T) {
	g := NewGenerator(t.TempDir(), "")
	if _, err := g.Generate(nil); err == nil {
		t.Error("expected an error for an empty collection")
	}
}

package generate

import (
	"context"
	"strings"

	"github.com/mermaidkeep/mermaidkeep/internal/diagram"
	"github.com/mermaidkeep/mermaidkeep/internal/templates"
)

// keywords maps diagram types to prompt terms that suggest them.
// Checked in order; the first hit wins.
var keywords = []struct {
	diagramType diagram.Type
	terms       []string
}{
	{diagram.TypeSequence, []string{
		"sequence", "interaction", "api flow", "authentication flow",
		"auth", "payment", "processing",
	}},
	{diagram.TypeER, []string{
		"database", "schema", "er diagram", "entity relationship",
		"data model", "tables", "blog", "entities",
	}},
	{diagram.TypeClass, []string{
		"class diagram", "uml", "object", "e-commerce",
		"ecommerce", "inheritance",
	}},
	{diagram.TypeGantt, []string{
		"gantt", "timeline", "project timeline", "schedule",
		"roadmap", "project", "planning",
	}},
	{diagram.TypeGit, []string{
		"git", "branching", "branch strategy", "version control",
		"git flow", "branches",
	}},
	{diagram.TypeJourney, []string{
		"journey", "user journey", "onboarding", "customer journey",
		"experience", "customer",
	}},
	{diagram.TypeFlowchart, []string{
		"flowchart", "flow chart", "workflow", "process flow",
		"decision tree", "flow", "process", "login",
	}},
}

// fallbackDiagram is returned when nothing in the prompt matches.
const fallbackDiagram = `flowchart TD
    Start([Start]) --> Process[Process Input]
    Process --> Decision{Valid?}
    Decision -->|Yes| Success[Success]
    Decision -->|No| Error[Error]
    Error --> Process
    Success --> End([End])

    style Start fill:#e1f5e1
    style End fill:#e1f5e1
    style Success fill:#e1f5e1
    style Error fill:#ffe1e1`

// MockProvider matches prompts against the template library. It needs
// no network and no key, which makes it the default provider.
type MockProvider struct{}

func (MockProvider) Name() string {
	return "mock"
}

func (MockProvider) Generate(_ context.Context, prompt string) (string, error) {
	if err := ValidatePrompt(prompt); err != nil {
		return "", err
	}

	normalized := strings.ToLower(strings.TrimSpace(prompt))

	// Direct template search first: a prompt naming a template wins.
	if results := templates.Search(normalized); len(results) > 0 {
		return results[0].Code, nil
	}

	for _, entry := range keywords {
		for _, term := range entry.terms {
			if strings.Contains(normalized, term) {
				if tpls := templates.ByType(entry.diagramType); len(tpls) > 0 {
					return tpls[0].Code, nil
				}
			}
		}
	}

	return fallbackDiagram, nil
}

// DetectPromptType reports the diagram type a prompt most likely asks
// for, or false when nothing matches. Used for CLI hints.
func DetectPromptType(prompt string) (diagram.Type, bool) {
	normalized := strings.ToLower(strings.TrimSpace(prompt))
	for _, entry := range keywords {
		for _, term := range entry.terms {
			if strings.Contains(normalized, term) {
				return entry.diagramType, true
			}
		}
	}
	return "", false
}

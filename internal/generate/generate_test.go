package generate

import (
	"context"
	"strings"
	"testing"

	"github.com/mermaidkeep/mermaidkeep/internal/diagram"
)

func TestValidatePrompt(t *testing.T) {
	cases := []struct {
		name   string
		prompt string
		valid  bool
	}{
		{"good", "draw a login flowchart", true},
		{"minimum", "abc", true},
		{"too short", "ab", false},
		{"whitespace only", "   ", false},
		{"too long", strings.Repeat("x", 1001), false},
		{"at limit", strings.Repeat("x", 1000), true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidatePrompt(tc.prompt)
			if tc.valid && err != nil {
				t.Errorf("expected valid, got %v", err)
			}
			if !tc.valid {
				if err == nil {
					t.Fatal("expected an error")
				}
				if !diagram.IsValidation(err) {
					t.Errorf("expected a validation error, got %v", err)
				}
			}
		})
	}
}

func TestExtractDiagram(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"single block", "`graph TD\n  A-->B`", "graph TD\n  A-->B"},
		{"surrounding prose", "Here you go: `graph TD\n  A-->B` enjoy!", "graph TD\n  A-->B"},
		{"multiple blocks", "`graph TD` and `  A-->B`", "graph TD\n  A-->B"},
		{"no backticks", "graph TD\n  A-->B", "graph TD\n  A-->B"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := extractDiagram(tc.in); got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestMockKeywordMatching(t *testing.T) {
	p := MockProvider{}
	ctx := context.Background()

	cases := []struct {
		prompt   string
		contains string
	}{
		{"show me a gitgraph branching strategy", "gitGraph"},
		{"an entity relationship data model for my app", "erDiagram"},
		{"the checkout payment interaction", "sequenceDiagram"},
	}
	for _, tc := range cases {
		code, err := p.Generate(ctx, tc.prompt)
		if err != nil {
			t.Fatalf("Generate(%q): %v", tc.prompt, err)
		}
		if !strings.Contains(code, tc.contains) {
			t.Errorf("Generate(%q) = %q, expected to contain %q", tc.prompt, code[:min(len(code), 40)], tc.contains)
		}
	}
}

func TestMockFallback(t *testing.T) {
	p := MockProvider{}
	code, err := p.Generate(context.Background(), "zzz qqq xyzzy")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !strings.Contains(code, "flowchart TD") {
		t.Errorf("expected the fallback flowchart, got %q", code)
	}
}

func TestMockRejectsShortPrompt(t *testing.T) {
	p := MockProvider{}
	if _, err := p.Generate(context.Background(), "ab"); err == nil {
		t.Error("expected a validation error")
	}
}

func TestDetectPromptType(t *testing.T) {
	if dt, ok := DetectPromptType("design my database tables"); !ok || dt != diagram.TypeER {
		t.Errorf("expected er, got %q ok=%v", dt, ok)
	}
	if _, ok := DetectPromptType("qwerty"); ok {
		t.Error("expected no detection")
	}
}

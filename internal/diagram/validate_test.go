package diagram

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestValidateTitle(t *testing.T) {
	cases := []struct {
		name  string
		title string
		ok    bool
	}{
		{"simple", "My Flowchart", true},
		{"punctuation", "Q3 Roadmap (draft) - v2", true},
		{"empty", "", false},
		{"whitespace only", "   ", false},
		{"too long", strings.Repeat("a", 101), false},
		{"invalid chars", "diagram <script>", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateTitle(tc.title)
			if tc.ok && err != nil {
				t.Errorf("ValidateTitle(%q) = %v, want nil", tc.title, err)
			}
			if !tc.ok && err == nil {
				t.Errorf("ValidateTitle(%q) = nil, want error", tc.title)
			}
		})
	}
}

func TestNormalizeTag(t *testing.T) {
	got, err := NormalizeTag("  MyTag  ")
	if err != nil {
		t.Fatalf("NormalizeTag: %v", err)
	}
	if got != "mytag" {
		t.Errorf("expected %q, got %q", "mytag", got)
	}
	if strings.ContainsAny(got, " \t") {
		t.Errorf("normalized tag contains whitespace: %q", got)
	}

	if _, err := NormalizeTag(""); err == nil {
		t.Error("expected error for empty tag")
	}
	if _, err := NormalizeTag(strings.Repeat("x", 31)); err == nil {
		t.Error("expected error for overlong tag")
	}
	if _, err := NormalizeTag("has space"); err == nil {
		t.Error("expected error for tag with internal whitespace")
	}
}

func TestNormalizeTagsDeduplicates(t *testing.T) {
	got, err := NormalizeTags([]string{"Infra", "infra", "k8s"})
	if err != nil {
		t.Fatalf("NormalizeTags: %v", err)
	}
	if len(got) != 2 || got[0] != "infra" || got[1] != "k8s" {
		t.Errorf("unexpected tags: %v", got)
	}
}

func TestValidateDraft(t *testing.T) {
	draft := Draft{Title: "Login Flow", Code: "graph TD\n  A-->B", Type: TypeFlowchart}
	if err := ValidateDraft(draft); err != nil {
		t.Fatalf("ValidateDraft: %v", err)
	}

	bad := draft
	bad.Type = "mindmap"
	err := ValidateDraft(bad)
	if err == nil {
		t.Fatal("expected error for unknown type")
	}
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Errorf("expected *ValidationError, got %T", err)
	}
}

func TestWellFormed(t *testing.T) {
	now := time.Now().UTC()
	d := Diagram{
		ID:        "abc",
		Title:     "t",
		Code:      "graph TD",
		Type:      TypeFlowchart,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if !WellFormed(d) {
		t.Error("expected well-formed diagram")
	}

	missing := d
	missing.ID = ""
	if WellFormed(missing) {
		t.Error("diagram without id should not be well-formed")
	}

	badType := d
	badType.Type = "bogus"
	if WellFormed(badType) {
		t.Error("diagram with unknown type should not be well-formed")
	}

	noTime := d
	noTime.CreatedAt = time.Time{}
	if WellFormed(noTime) {
		t.Error("diagram without createdAt should not be well-formed")
	}
}

func TestPatchApply(t *testing.T) {
	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	d := Diagram{
		ID:        "id-1",
		Title:     "Before",
		Code:      "graph TD",
		Type:      TypeFlowchart,
		Tags:      []string{"a"},
		CreatedAt: created,
		UpdatedAt: created,
	}

	title := "After"
	fav := true
	out := Patch{Title: &title, IsFavorite: &fav}.Apply(d)

	if out.Title != "After" || !out.IsFavorite {
		t.Errorf("patch not applied: %+v", out)
	}
	if out.ID != "id-1" || !out.CreatedAt.Equal(created) {
		t.Error("patch must not touch id or createdAt")
	}
	if out.Code != d.Code || len(out.Tags) != 1 {
		t.Error("unpatched fields must be preserved")
	}
}

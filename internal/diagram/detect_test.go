package diagram

import (
	"testing"
	"time"
)

func TestDetectType(t *testing.T) {
	cases := []struct {
		code string
		want Type
	}{
		{"graph TD\n  A-->B", TypeFlowchart},
		{"flowchart LR\n  A-->B", TypeFlowchart},
		{"\n\n  sequenceDiagram\n  A->>B: hi", TypeSequence},
		{"classDiagram\n  Animal <|-- Dog", TypeClass},
		{"erDiagram\n  USER ||--o{ ORDER : places", TypeER},
		{"gantt\n  title Plan", TypeGantt},
		{"pie title Languages", TypePie},
		{"stateDiagram-v2\n  [*] --> Idle", TypeState},
		{"journey\n  title Onboarding", TypeJourney},
		{"gitGraph\n  commit", TypeGit},
		{"", TypeFlowchart},
		{"something unrecognizable", TypeFlowchart},
	}
	for _, tc := range cases {
		if got := DetectType(tc.code); got != tc.want {
			t.Errorf("DetectType(%q) = %s, want %s", tc.code, got, tc.want)
		}
	}
}

func TestDefaultTitle(t *testing.T) {
	now := time.Date(2026, time.March, 9, 12, 0, 0, 0, time.UTC)
	got := DefaultTitle(TypeSequence, now)
	want := "Sequence Diagram - Mar 9, 2026"
	if got != want {
		t.Errorf("DefaultTitle = %q, want %q", got, want)
	}
}

func TestSortByUpdatedDesc(t *testing.T) {
	base := time.Now().UTC()
	ds := []Diagram{
		{ID: "old", UpdatedAt: base.Add(-2 * time.Hour)},
		{ID: "new", UpdatedAt: base},
		{ID: "mid", UpdatedAt: base.Add(-1 * time.Hour)},
	}
	SortByUpdatedDesc(ds)
	if ds[0].ID != "new" || ds[1].ID != "mid" || ds[2].ID != "old" {
		t.Errorf("unexpected order: %s %s %s", ds[0].ID, ds[1].ID, ds[2].ID)
	}
}

package diagram

import (
	"regexp"
	"strings"
)

// Field limits. These match the limits the original vault format was
// written against, so imported snapshots validate identically.
const (
	MaxTitleLen       = 100
	MaxDescriptionLen = 500
	MaxTagLen         = 30
	MaxCodeLen        = 50000
)

var (
	titlePattern = regexp.MustCompile(`^[a-zA-Z0-9\s\-_.,!?()\[\]/&]+$`)
	tagPattern   = regexp.MustCompile(`^[a-z0-9-]+$`)
)

// ValidateTitle checks a user-facing title: non-empty after trimming,
// bounded length, restricted charset.
func ValidateTitle(title string) error {
	t := strings.TrimSpace(title)
	if t == "" {
		return &ValidationError{Field: "title", Reason: "cannot be empty"}
	}
	if len(t) > MaxTitleLen {
		return &ValidationError{Field: "title", Reason: "must be at most 100 characters"}
	}
	if !titlePattern.MatchString(t) {
		return &ValidationError{Field: "title", Reason: "contains invalid characters"}
	}
	return nil
}

// ValidateDescription checks an optional free-text description.
func ValidateDescription(desc string) error {
	if len(strings.TrimSpace(desc)) > MaxDescriptionLen {
		return &ValidationError{Field: "description", Reason: "must be at most 500 characters"}
	}
	return nil
}

// ValidateCode checks the diagram source. The syntax itself is opaque
// here; rendering owns interpretation.
func ValidateCode(code string) error {
	c := strings.TrimSpace(code)
	if c == "" {
		return &ValidationError{Field: "code", Reason: "cannot be empty"}
	}
	if len(c) > MaxCodeLen {
		return &ValidationError{Field: "code", Reason: "is too large"}
	}
	return nil
}

// NormalizeTag lowercases and trims a tag, then validates it against
// the tag charset (lowercase letters, digits, hyphens).
func NormalizeTag(tag string) (string, error) {
	t := strings.ToLower(strings.TrimSpace(tag))
	if t == "" {
		return "", &ValidationError{Field: "tag", Reason: "cannot be empty"}
	}
	if len(t) > MaxTagLen {
		return "", &ValidationError{Field: "tag", Reason: "must be at most 30 characters"}
	}
	if !tagPattern.MatchString(t) {
		return "", &ValidationError{Field: "tag", Reason: "must contain only lowercase letters, numbers, and hyphens"}
	}
	return t, nil
}

// NormalizeTags normalizes every tag and drops duplicates while
// preserving first-seen order.
func NormalizeTags(tags []string) ([]string, error) {
	if len(tags) == 0 {
		return nil, nil
	}
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		t, err := NormalizeTag(tag)
		if err != nil {
			return nil, err
		}
		if seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out, nil
}

// ValidateDraft checks the creation shape of a diagram.
func ValidateDraft(d Draft) error {
	if err := ValidateTitle(d.Title); err != nil {
		return err
	}
	if err := ValidateCode(d.Code); err != nil {
		return err
	}
	if !d.Type.Valid() {
		return &ValidationError{Field: "type", Reason: "unknown diagram type " + string(d.Type)}
	}
	if err := ValidateDescription(d.Description); err != nil {
		return err
	}
	if _, err := NormalizeTags(d.Tags); err != nil {
		return err
	}
	return nil
}

// WellFormed reports whether a stored entry has the shape of a
// diagram: id, title, code, a known type, timestamps. It is the single
// shape check shared by the local load path and snapshot import;
// entries failing it are dropped, not repaired.
func WellFormed(d Diagram) bool {
	if d.ID == "" || d.Title == "" || d.Code == "" {
		return false
	}
	if !d.Type.Valid() {
		return false
	}
	if d.CreatedAt.IsZero() || d.UpdatedAt.IsZero() {
		return false
	}
	return true
}

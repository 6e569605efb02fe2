package composer

import (
	"encoding/json"
	"strings"
)

// TagCollector keeps an ordered set of unique tags and mirrors it into a
// serialized field on every change.
type TagCollector struct {
	tags  []string
	field string
}

// NewTagCollector returns an empty collector. Its field is "" until the
// first successful mutation.
func NewTagCollector() *TagCollector {
	return &TagCollector{}
}

// Add trims text and appends it unless it is empty or already present
// (case-sensitive). It reports whether the tag was added.
func (t *TagCollector) Add(text string) bool {
	tag := strings.TrimSpace(text)
	if tag == "" || t.Has(tag) {
		return false
	}
	t.tags = append(t.tags, tag)
	t.serialize()
	return true
}

// Remove deletes text and reports whether it was present.
func (t *TagCollector) Remove(text string) bool {
	for i, tag := range t.tags {
		if tag == text {
			t.tags = append(t.tags[:i], t.tags[i+1:]...)
			t.serialize()
			return true
		}
	}
	return false
}

// Has reports whether tag is in the set.
func (t *TagCollector) Has(tag string) bool {
	for _, existing := range t.tags {
		if existing == tag {
			return true
		}
	}
	return false
}

// Tags returns the tags in insertion order.
func (t *TagCollector) Tags() []string {
	return append([]string(nil), t.tags...)
}

// Len returns the number of tags.
func (t *TagCollector) Len() int {
	return len(t.tags)
}

// Field returns the serialized JSON array, or "" if nothing was ever added.
func (t *TagCollector) Field() string {
	return t.field
}

// Restore replaces the set from a previously serialized field.
func (t *TagCollector) Restore(field string) {
	t.tags = nil
	t.field = ""
	for _, tag := range ParseTags(field) {
		t.Add(tag)
	}
}

func (t *TagCollector) serialize() {
	tags := t.tags
	if tags == nil {
		tags = []string{}
	}
	data, err := json.Marshal(tags)
	if err != nil {
		return
	}
	t.field = string(data)
}

// ParseTags reads a stored tag field. It accepts a JSON array or a comma
// separated list (ASCII or full-width commas) and drops blank entries.
func ParseTags(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return []string{}
	}
	if strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]") {
		var raw []string
		if err := json.Unmarshal([]byte(s), &raw); err == nil {
			return cleanTags(raw)
		}
	}
	s = strings.ReplaceAll(s, "，", ",")
	return cleanTags(strings.Split(s, ","))
}

func cleanTags(raw []string) []string {
	out := make([]string, 0, len(raw))
	for _, tag := range raw {
		if trimmed := strings.TrimSpace(tag); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

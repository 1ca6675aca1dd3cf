package content

import (
	"fmt"
	"maps"
	"strings"
	"time"
)

// DefaultTitle is used when a document declares no title.
const DefaultTitle = "Untitled"

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Metadata is the decoded metadata block of a document. Recognized keys are
// exposed through accessors; everything else stays available through Raw.
type Metadata struct {
	raw      map[string]any
	title    string
	date     *time.Time
	template string
}

// NewMetadata interprets the recognized keys of a decoded metadata block. A
// date that cannot be interpreted is an error.
func NewMetadata(raw map[string]any) (Metadata, error) {
	if raw == nil {
		raw = map[string]any{}
	}
	m := Metadata{raw: raw}
	m.title = stringValue(raw["title"])
	m.template = stringValue(raw["template"])

	if v, ok := raw["date"]; ok && v != nil {
		d, err := parseDate(v)
		if err != nil {
			return Metadata{}, err
		}
		m.date = &d
	}
	return m, nil
}

// Title returns the declared title or DefaultTitle.
func (m Metadata) Title() string {
	if m.title == "" {
		return DefaultTitle
	}
	return m.title
}

// Date returns the publication date, or nil when none was declared.
func (m Metadata) Date() *time.Time {
	return m.date
}

// Template returns the declared layout hint.
func (m Metadata) Template() string {
	return m.template
}

// Raw returns a copy of every decoded key, including unrecognized ones.
func (m Metadata) Raw() map[string]any {
	return maps.Clone(m.raw)
}

func stringValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	default:
		return strings.TrimSpace(fmt.Sprint(t))
	}
}

func parseDate(v any) (time.Time, error) {
	switch t := v.(type) {
	case time.Time:
		return t, nil
	case string:
		s := strings.TrimSpace(t)
		for _, layout := range dateLayouts {
			if d, err := time.Parse(layout, s); err == nil {
				return d, nil
			}
		}
		return time.Time{}, fmt.Errorf("unrecognized date %q", s)
	default:
		return time.Time{}, fmt.Errorf("unsupported date value %v (%T)", v, v)
	}
}

package model

import (
	"fmt"
	"strings"
	"time"
)

// wbTimeLayout is the timestamp format of Wildberries statistics exports;
// the API reports times without a zone suffix.
const wbTimeLayout = "2006-01-02T15:04:05"

// timeLayouts are accepted on input, most common first.
var timeLayouts = []string{
	wbTimeLayout,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Time is a time.Time whose JSON encoding matches statistics exports.
type Time struct {
	time.Time
}

// NewTime wraps a time.Time.
func NewTime(t time.Time) Time {
	return Time{Time: t}
}

// ParseTime parses a timestamp in any of the export formats: the zone-less
// API layout, RFC3339, SQL datetime text, or a bare date.
func ParseTime(s string) (Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Time{Time: t}, nil
		}
	}
	return Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Time) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		t.Time = time.Time{}
		return nil
	}

	parsed, err := ParseTime(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// MarshalJSON implements json.Marshaler, emitting the zone-less API layout.
func (t Time) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.Format(wbTimeLayout) + `"`), nil
}

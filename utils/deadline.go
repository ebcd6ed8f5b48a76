package utils

import (
	"encoding/json"
	"time"

	"github.com/pkg/errors"
)

var deadlineLayouts = []string{
	time.RFC3339,
	"2006-01-02",
	"2006-01-02 15:04",
	"2006-01-02 15:04:05",
}

var ErrInvalidDeadline = errors.New("invalid deadline format, use RFC3339 or YYYY-MM-DD")

// ParseDeadline coerces a client supplied deadline into a time. Strings are
// tried against the accepted layouts, numbers are epoch milliseconds.
func ParseDeadline(v interface{}) (time.Time, error) {
	switch d := v.(type) {
	case time.Time:
		return d.UTC(), nil
	case string:
		for _, layout := range deadlineLayouts {
			if t, err := time.Parse(layout, d); err == nil {
				return t.UTC(), nil
			}
		}
	case float64:
		return time.UnixMilli(int64(d)).UTC(), nil
	case int64:
		return time.UnixMilli(d).UTC(), nil
	case int:
		return time.UnixMilli(int64(d)).UTC(), nil
	case json.Number:
		if ms, err := d.Int64(); err == nil {
			return time.UnixMilli(ms).UTC(), nil
		}
	}
	return time.Time{}, errors.Wrapf(ErrInvalidDeadline, "%v", v)
}

// IsSet reports whether v carries a value worth coercing: nil, "", 0 and
// false are left untouched.
func IsSet(v interface{}) bool {
	switch d := v.(type) {
	case nil:
		return false
	case string:
		return d != ""
	case float64:
		return d != 0
	case bool:
		return d
	}
	return true
}

package frontmatter

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Metadata is a decoded front matter block.
type Metadata map[string]any

// String returns the value stored under key in its text form.
// The boolean reports whether the key was present with a non-null value.
func (m Metadata) String(key string) (string, bool) {
	v, ok := m[key]
	if !ok || v == nil {
		return "", false
	}
	return Stringify(v), true
}

// StringOr returns the text form of key, or fallback when the key is absent or null.
func (m Metadata) StringOr(key, fallback string) string {
	if s, ok := m.String(key); ok {
		return s
	}
	return fallback
}

// List returns key normalized with [List].
func (m Metadata) List(key string) []string {
	return List(m[key])
}

// Stringify renders a scalar front matter value as stored text.
//
// Booleans render as "1"/"0", the integer form SQLite stores for a bound bool. Dates without
// a clock part render as YYYY-MM-DD; other times as "YYYY-MM-DD HH:MM:SS", with fractional
// seconds and a UTC offset only when present.
func Stringify(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		if val {
			return "1"
		}
		return "0"
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case uint64:
		return strconv.FormatUint(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case time.Time:
		if val.Hour() == 0 && val.Minute() == 0 && val.Second() == 0 && val.Nanosecond() == 0 {
			return val.Format(time.DateOnly)
		}
		return formatDateTime(val)
	default:
		return fmt.Sprint(val)
	}
}

// List normalizes a categories/tags value into names.
//
// A sequence yields its non-blank elements; a non-empty scalar yields a single element;
// nil and empty values (including false and zero) yield no names.
func List(v any) []string {
	switch val := v.(type) {
	case []any:
		names := make([]string, 0, len(val))
		for _, item := range val {
			if item == nil {
				continue
			}
			name := strings.TrimSpace(Stringify(item))
			if name == "" {
				continue
			}
			names = append(names, name)
		}
		return names
	case []string:
		return List(toAny(val))
	}

	if isEmpty(v) {
		return []string{}
	}

	name := strings.TrimSpace(Stringify(v))
	if name == "" {
		return []string{}
	}
	return []string{name}
}

func isEmpty(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return val == ""
	case bool:
		return !val
	case int:
		return val == 0
	case int64:
		return val == 0
	case uint64:
		return val == 0
	case float64:
		return val == 0
	case map[string]any:
		return len(val) == 0
	}
	return false
}

func toAny(in []string) []any {
	out := make([]any, len(in))
	for i, s := range in {
		out[i] = s
	}
	return out
}

func formatDateTime(t time.Time) string {
	layout := time.DateTime
	if t.Nanosecond() != 0 {
		layout += ".000000"
	}
	if t.Location() != time.UTC {
		layout += "-07:00"
	}
	return t.Format(layout)
}

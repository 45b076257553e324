package filter

import (
	"strings"
	"time"
	"unicode"
)

func isScalar(v any) bool {
	if v == nil {
		return true
	}

	switch v.(type) {
	case bool, string, float64, float32, int, int32, int64, time.Time:
		return true
	default:
		return false
	}
}

func isScalarSlice(v any) bool {
	s, ok := v.([]any)
	if !ok {
		return false
	}
	for _, e := range s {
		if !isScalar(e) {
			return false
		}
	}
	return true
}

func anyToSliceMapAny(v any) ([]map[string]any, bool) {
	s, ok := v.([]any)
	if !ok {
		return nil, false
	}
	result := make([]map[string]any, 0, len(s))
	for _, e := range s {
		m, ok := e.(map[string]any)
		if !ok {
			return nil, false
		}
		result = append(result, m)
	}
	return result, true
}

// sanitizeField turns a resolved column reference into a parameter name
// segment: runs of characters outside [letters, digits, underscore] collapse
// into a single underscore.
func sanitizeField(field string) string {
	mapped := strings.Map(func(r rune) rune {
		if r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return '_'
	}, field)
	for strings.Contains(mapped, "__") {
		mapped = strings.ReplaceAll(mapped, "__", "_")
	}
	return strings.Trim(mapped, "_")
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if r == '_' || unicode.IsLetter(r) || (i > 0 && unicode.IsDigit(r)) {
			continue
		}
		return false
	}
	return true
}

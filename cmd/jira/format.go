package main

import (
	"fmt"
	"strings"
)

// truncateRaw returns the first n runes of s with no ellipsis.
func truncateRaw(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

// truncateCell shortens s to width runes, replacing the tail with "..."
// when it does not fit.
func truncateCell(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-3]) + "..."
}

// joinCSV is the inverse of splitCSV for display purposes.
func joinCSV(values []string) string {
	return strings.Join(values, ", ")
}

// agileFieldValue renders an issue field value for the agile tables.
// Objects collapse to their name or displayName; anything empty shows
// as "-".
func agileFieldValue(value any) string {
	var s string
	switch v := value.(type) {
	case nil:
	case string:
		s = v
	case map[string]any:
		if name, _ := v["name"].(string); name != "" {
			s = name
		} else if displayName, _ := v["displayName"].(string); displayName != "" {
			s = displayName
		} else {
			s = fmt.Sprintf("%v", v)
		}
	default:
		s = fmt.Sprintf("%v", v)
	}
	if s == "" {
		return "-"
	}
	return s
}

// flattenFieldValue renders an arbitrary issue field value as a single
// table cell. Objects collapse to their name, displayName, or value
// property; lists show at most three entries.
func flattenFieldValue(value any) string {
	switch v := value.(type) {
	case nil:
		return "-"
	case string:
		return v
	case map[string]any:
		for _, key := range []string{"name", "displayName", "value"} {
			if inner, ok := v[key]; ok {
				return fmt.Sprintf("%v", inner)
			}
		}
		return fmt.Sprintf("%v", v)
	case []any:
		limit := len(v)
		if limit > 3 {
			limit = 3
		}
		parts := make([]string, 0, limit)
		for _, item := range v[:limit] {
			parts = append(parts, fmt.Sprintf("%v", item))
		}
		joined := strings.Join(parts, ", ")
		if len(v) > 3 {
			joined += "..."
		}
		return joined
	default:
		return fmt.Sprintf("%v", v)
	}
}

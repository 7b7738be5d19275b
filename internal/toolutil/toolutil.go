// Package toolutil provides shared input helpers for go_distill MCP tools.
package toolutil

import (
	"fmt"
	"strings"
)

// Require returns an error naming field when value is blank.
func Require(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s is required", field)
	}
	return nil
}

// CleanURLs trims each entry, splits multi-line entries and drops blanks.
// Order is preserved; duplicates are kept so output positions match input.
func CleanURLs(in []string) []string {
	out := make([]string, 0, len(in))
	for _, entry := range in {
		for _, line := range strings.Split(entry, "\n") {
			if u := strings.TrimSpace(line); u != "" {
				out = append(out, u)
			}
		}
	}
	return out
}

// ClampInt returns def when v <= 0 and hi when v > hi.
func ClampInt(v, def, hi int) int {
	switch {
	case v <= 0:
		return def
	case v > hi:
		return hi
	}
	return v
}

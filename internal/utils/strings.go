package utils

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/thecoblack/edtoken/internal/ui"
)

// keyPattern is the placeholder name grammar. Keys outside it can be stored
// but never referenced from a template.
var keyPattern = regexp.MustCompile(`^[\w-]+$`)

// FormatPaths formats a slice of paths into a readable string.
func FormatPaths(paths []string) string {
	var b strings.Builder
	b.WriteString("\n")
	for _, path := range paths {
		b.WriteString("    - ")
		b.WriteString(ui.Path.Sprint(path))
		b.WriteString("\n")
	}
	return b.String()
}

// NumberedList renders items as "1. item" lines.
func NumberedList(items []string) string {
	var b strings.Builder
	for i, item := range items {
		fmt.Fprintf(&b, "%d. %s\n", i+1, item)
	}
	return b.String()
}

// IsReferenceableKey reports whether key can appear in a {key} or {?key} placeholder.
func IsReferenceableKey(key string) bool {
	return keyPattern.MatchString(key)
}

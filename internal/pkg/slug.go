package pkg

import "strings"

// Slugify lowercases a display name and collapses any run of whitespace to a
// single hyphen, so "Test  Club" and "Test Club" map to the same slug.
func Slugify(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), "-")
}

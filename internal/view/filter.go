package view

import (
	"strings"

	"golang.org/x/text/cases"
)

// Searchable is implemented by records that can be filtered by a free-text query
type Searchable interface {
	// SearchFields returns the name, the description or bio, and the tags,
	// topics or skills of the record
	SearchFields() (name, description string, tags []string)
}

// FilterByQuery returns the items whose name, description or tags contain
// query, ignoring case. A blank query returns every item.
func FilterByQuery[T Searchable](items []T, query string) []T {
	folder := cases.Fold()
	q := folder.String(strings.TrimSpace(query))

	out := make([]T, 0, len(items))
	for _, item := range items {
		if q == "" || matches(folder, item, q) {
			out = append(out, item)
		}
	}
	return out
}

func matches(folder cases.Caser, item Searchable, q string) bool {
	name, desc, tags := item.SearchFields()
	if strings.Contains(folder.String(name), q) || strings.Contains(folder.String(desc), q) {
		return true
	}
	for _, tag := range tags {
		if strings.Contains(folder.String(tag), q) {
			return true
		}
	}
	return false
}

package pagination

import (
	"cmp"
	"slices"
	"strings"

	"github.com/viewmim/archivectl/internal/archive"
)

// Sorter sorts items client-side by a named field.
type Sorter[T any] interface {
	// Sort returns a sorted copy of items; an unknown field returns items unchanged.
	Sort(items []T, field, order string) []T
	// IsValidField checks if the given field name is valid for sorting.
	IsValidField(field string) bool
	// GetValidFields returns the valid field names in a stable order.
	GetValidFields() []string
}

// AuthorSorter implements Sorter for archive.Author.
type AuthorSorter struct{}

// NewAuthorSorter creates an AuthorSorter.
func NewAuthorSorter() AuthorSorter {
	return AuthorSorter{}
}

// IsValidField checks if the field is valid for sorting.
func (AuthorSorter) IsValidField(field string) bool {
	return field == "id" || field == "name"
}

// GetValidFields returns all valid sort fields.
func (AuthorSorter) GetValidFields() []string {
	return []string{"id", "name"}
}

// Sort sorts authors by id or name (case-insensitive). The sort is stable.
func (s AuthorSorter) Sort(authors []archive.Author, field, order string) []archive.Author {
	if !s.IsValidField(field) {
		return authors
	}

	sorted := slices.Clone(authors)
	slices.SortStableFunc(sorted, func(a, b archive.Author) int {
		var c int
		switch field {
		case "id":
			c = cmp.Compare(a.ID, b.ID)
		default:
			c = cmp.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
		}
		if order == SortOrderDesc {
			return -c
		}
		return c
	})
	return sorted
}

var _ Sorter[archive.Author] = AuthorSorter{}

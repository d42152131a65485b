package pagecursor

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// DefaultPageSize is the number of items per page used when a query does not set one.
const DefaultPageSize = 10

// Query describes what defines a page: its size, the server-side sort key and
// a set of filters. Filters are opaque to the cursor and passed to the Fetcher
// unchanged.
type Query struct {
	// PageSize is the number of items a full page holds.
	PageSize int

	// Sort is the server-side sort key (e.g. "newest").
	Sort string

	// Filters holds filter parameters keyed by name. Empty values are dropped.
	Filters map[string]string
}

// NewQuery builds a normalized Query. Filter keys and values are trimmed and
// empty values removed so that "tag= " and no tag compare equal.
// A non-positive pageSize falls back to DefaultPageSize.
func NewQuery(pageSize int, sort string, filters map[string]string) Query {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	q := Query{
		PageSize: pageSize,
		Sort:     strings.TrimSpace(sort),
	}

	for k, v := range filters {
		k = strings.TrimSpace(k)
		v = strings.TrimSpace(v)
		if k == "" || v == "" {
			continue
		}
		if q.Filters == nil {
			q.Filters = make(map[string]string, len(filters))
		}
		q.Filters[k] = v
	}

	return q
}

// Validate checks that the query can address pages.
func (q Query) Validate() error {
	if q.PageSize < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidPageSize, q.PageSize)
	}
	return nil
}

// Filter returns the value of the named filter, or "" when unset.
func (q Query) Filter(name string) string {
	return q.Filters[name]
}

// WithFilter returns a copy of q with the named filter set (or removed when value is blank).
func (q Query) WithFilter(name, value string) Query {
	filters := maps.Clone(q.Filters)
	if filters == nil {
		filters = map[string]string{}
	}
	filters[name] = value
	return NewQuery(q.PageSize, q.Sort, filters)
}

// WithSort returns a copy of q using the given sort key.
func (q Query) WithSort(sort string) Query {
	return NewQuery(q.PageSize, sort, q.Filters)
}

// Equal reports whether two queries address the same pages.
// An absent filter and an empty filter map are equal.
func (q Query) Equal(other Query) bool {
	if q.PageSize != other.PageSize || q.Sort != other.Sort {
		return false
	}
	return maps.Equal(q.Filters, other.Filters)
}

// Offset returns the zero-based offset of the first item on the given page.
func (q Query) Offset(page int) int {
	if page < 1 {
		return 0
	}
	return (page - 1) * q.PageSize
}

// String renders the query in a stable form for logs.
func (q Query) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "size=%d", q.PageSize)
	if q.Sort != "" {
		fmt.Fprintf(&sb, " sort=%s", q.Sort)
	}
	for _, k := range slices.Sorted(maps.Keys(q.Filters)) {
		fmt.Fprintf(&sb, " %s=%s", k, q.Filters[k])
	}
	return sb.String()
}

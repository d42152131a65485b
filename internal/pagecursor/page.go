package pagecursor

import "context"

// Page is the outcome of fetching one page.
type Page[T any] struct {
	// Number is the 1-based page number.
	Number int

	// Items holds the page items in server order. Items are opaque to the cursor.
	Items []T

	// Full is true when the page holds a whole page of items, the signal that
	// more data may exist beyond it.
	Full bool
}

func newPage[T any](number int, items []T, pageSize int) Page[T] {
	return Page[T]{
		Number: number,
		Items:  items,
		Full:   len(items) >= pageSize,
	}
}

// Empty reports whether the page has no items.
func (p Page[T]) Empty() bool {
	return len(p.Items) == 0
}

// Len returns the number of items on the page.
func (p Page[T]) Len() int {
	return len(p.Items)
}

// Fetcher loads one page of items for a query. Implementations own transport,
// request construction and timeouts.
type Fetcher[T any] interface {
	FetchPage(ctx context.Context, page int, q Query) ([]T, error)
}

// FetchFunc adapts a function to the Fetcher interface.
type FetchFunc[T any] func(ctx context.Context, page int, q Query) ([]T, error)

// FetchPage calls f.
func (f FetchFunc[T]) FetchPage(ctx context.Context, page int, q Query) ([]T, error) {
	return f(ctx, page, q)
}

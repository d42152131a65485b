package archive

import (
	"context"
	"fmt"
	"net/http"
	"slices"
	"strings"
)

// ListAuthors returns every known author.
func (c *Client) ListAuthors(ctx context.Context) ([]Author, error) {
	var authors []Author
	if err := c.getJSON(ctx, "/authors/", nil, &authors); err != nil {
		return nil, fmt.Errorf("listing authors: %w", err)
	}
	return authors, nil
}

// EnsureAuthor returns the author with the given name, creating it when missing.
func (c *Client) EnsureAuthor(ctx context.Context, in AuthorInput) (Author, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return Author{}, fmt.Errorf("%w: author name is required", ErrInvalidInput)
	}

	var author Author
	if err := c.doJSON(ctx, http.MethodPost, "/authors/ensure", nil, in, &author); err != nil {
		return Author{}, fmt.Errorf("ensuring author %q: %w", in.Name, err)
	}
	return author, nil
}

// OrderAuthors returns authors with the pinned names first, in pinned order,
// followed by the rest in their original order. Names compare
// case-insensitively and ignore surrounding space. Only the first match of
// each pinned name is promoted.
func OrderAuthors(authors []Author, pinned []string) []Author {
	if len(authors) == 0 {
		return nil
	}

	key := func(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

	out := make([]Author, 0, len(authors))
	used := make([]bool, len(authors))
	for _, name := range pinned {
		idx := slices.IndexFunc(authors, func(a Author) bool { return key(a.Name) == key(name) })
		if idx < 0 || used[idx] {
			continue
		}
		used[idx] = true
		out = append(out, authors[idx])
	}

	pinnedKeys := make(map[string]bool, len(pinned))
	for _, name := range pinned {
		pinnedKeys[key(name)] = true
	}
	for i, a := range authors {
		if used[i] || pinnedKeys[key(a.Name)] {
			continue
		}
		out = append(out, a)
	}
	return out
}

// FindAuthor returns the author whose name matches, ignoring case and surrounding space.
func FindAuthor(authors []Author, name string) (Author, bool) {
	want := strings.ToLower(strings.TrimSpace(name))
	for _, a := range authors {
		if strings.ToLower(strings.TrimSpace(a.Name)) == want {
			return a, true
		}
	}
	return Author{}, false
}

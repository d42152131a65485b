package pagination

import (
	"errors"
	"fmt"
	"strings"

	"github.com/viewmim/archivectl/internal/pagecursor"
)

// Page flag defaults and limits.
const (
	DefaultPage     = 1
	MinPageSize     = 1
	MaxPageSize     = 100
	SortNewest      = "newest"
	SortOldest      = "oldest"
	SortOrderAsc    = "asc"
	SortOrderDesc   = "desc"
	DefaultSortKind = SortNewest
)

// Common validation errors.
var (
	ErrInvalidPageSize   = fmt.Errorf("page-size must be between %d and %d", MinPageSize, MaxPageSize)
	ErrInvalidPage       = errors.New("page must be >= 1")
	ErrInvalidJump       = errors.New("jump must be >= 1")
	ErrMixedNavigation   = errors.New("cannot use both --page and --jump")
	ErrInvalidSortOrder  = errors.New("sort must be 'newest' or 'oldest'")
	ErrInvalidSortFormat = errors.New("invalid sort format: use 'field' or 'field:order' (e.g., 'name:desc')")
	ErrEmptySortField    = errors.New("sort field cannot be empty")
)

// Params holds the page flags of a list command.
//
// --page loads a page through the cursor's LoadPage; --jump goes through
// JumpTo. Either way a target past the end lands on the last page.
type Params struct {
	// Page is the 1-based page to load.
	Page int

	// Jump is the page to jump to; 0 means no jump.
	Jump int

	// PageSize is the number of items per page.
	PageSize int

	// Sort is newest or oldest.
	Sort string
}

// Validate checks the flags and normalizes Sort.
func (p *Params) Validate() error {
	if p.Page < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidPage, p.Page)
	}
	if p.Jump < 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidJump, p.Jump)
	}
	if p.Jump > 0 && p.Page != DefaultPage {
		return ErrMixedNavigation
	}
	if p.PageSize < MinPageSize || p.PageSize > MaxPageSize {
		return fmt.Errorf("%w: got %d", ErrInvalidPageSize, p.PageSize)
	}

	sort, err := ParseSortOrder(p.Sort)
	if err != nil {
		return err
	}
	p.Sort = sort
	return nil
}

// IsJump reports whether the target resolves through a jump.
func (p Params) IsJump() bool {
	return p.Jump > 0
}

// Target returns the requested page number.
func (p Params) Target() int {
	if p.IsJump() {
		return p.Jump
	}
	return p.Page
}

// Query builds the cursor query for these flags.
func (p Params) Query(filters map[string]string) pagecursor.Query {
	return pagecursor.NewQuery(p.PageSize, p.Sort, filters)
}

// ParseSortOrder maps user input to the API sort key. "desc" and "asc" are
// accepted as newest and oldest. Empty input yields the default.
func ParseSortOrder(s string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return DefaultSortKind, nil
	case SortNewest, "new", SortOrderDesc:
		return SortNewest, nil
	case SortOldest, "old", SortOrderAsc:
		return SortOldest, nil
	default:
		return "", fmt.Errorf("%w: got %q", ErrInvalidSortOrder, s)
	}
}

// sortPartsMax is the maximum number of parts in a sort string (field:order).
const sortPartsMax = 2

// ParseSort parses a sort string in the format "field" or "field:order".
// The order defaults to ascending.
//
//nolint:nonamedreturns // Named returns improve readability for this multi-value function.
func ParseSort(sortStr string) (field, order string, err error) {
	if strings.TrimSpace(sortStr) == "" {
		return "", SortOrderAsc, nil
	}

	parts := strings.Split(sortStr, ":")
	switch len(parts) {
	case 1:
		field = strings.TrimSpace(parts[0])
		order = SortOrderAsc
	case sortPartsMax:
		field = strings.TrimSpace(parts[0])
		order = strings.ToLower(strings.TrimSpace(parts[1]))
	default:
		return "", "", fmt.Errorf("%w: %q", ErrInvalidSortFormat, sortStr)
	}

	if field == "" {
		return "", "", ErrEmptySortField
	}
	if order != SortOrderAsc && order != SortOrderDesc {
		return "", "", fmt.Errorf("invalid sort order %q: must be asc or desc", order)
	}
	return field, order, nil
}

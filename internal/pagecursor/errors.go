package pagecursor

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Navigation errors.
var (
	ErrInvalidPageNumber = errors.New("page number must be a positive integer")
	ErrInvalidPageSize   = errors.New("page size must be >= 1")
	ErrNilFetcher        = errors.New("fetcher cannot be nil")
	ErrNavigationFailed  = errors.New("page navigation failed")
	ErrNoNextPage        = errors.New("already on the last page")
	ErrNoPrevPage        = errors.New("already on the first page")
	ErrSuperseded        = errors.New("navigation superseded by a query change")
)

// NavigationError reports a fetch failure while probing for the last page.
// It matches ErrNavigationFailed with errors.Is and unwraps to the fetch error.
type NavigationError struct {
	// Page is the probe page whose fetch failed.
	Page int

	// Target is the page number the navigation was resolving.
	Target int

	// Err is the underlying fetch error.
	Err error
}

func (e *NavigationError) Error() string {
	return fmt.Sprintf("resolving page %d: probe of page %d failed: %v", e.Target, e.Page, e.Err)
}

func (e *NavigationError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrNavigationFailed) hold for any NavigationError.
func (e *NavigationError) Is(target error) bool {
	return target == ErrNavigationFailed
}

// ParsePageNumber parses user input such as a "jump to page" field.
// Anything other than a positive base-10 integer yields ErrInvalidPageNumber.
func ParsePageNumber(s string) (int, error) {
	trimmed := strings.TrimSpace(s)
	n, err := strconv.Atoi(trimmed)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidPageNumber, s)
	}
	return n, nil
}

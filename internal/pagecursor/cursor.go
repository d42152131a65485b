package pagecursor

import (
	"context"
	"fmt"
	"sync"

	"github.com/viewmim/archivectl/internal/logging"
)

// State is a snapshot of the cursor position.
type State struct {
	// CurrentPage is the page currently displayed, starting at 1.
	CurrentPage int

	// LastPage is the lowest confirmed upper bound on valid pages; 0 means unknown.
	LastPage int
}

// LastPageKnown reports whether the last page has been discovered.
func (s State) LastPageKnown() bool {
	return s.LastPage > 0
}

// HasNext reports whether Next may move forward without being refused.
func (s State) HasNext() bool {
	return !s.LastPageKnown() || s.CurrentPage < s.LastPage
}

// HasPrev reports whether Prev may move back.
func (s State) HasPrev() bool {
	return s.CurrentPage > 1
}

// Cursor resolves page navigation for a single Query against an injected Fetcher.
//
// Operations are serialized: each runs to completion, including every probe
// of a last-page search, before the next one starts. SetQuery does not wait
// for an in-flight operation; it invalidates it instead, and the superseded
// result is dropped with ErrSuperseded rather than applied.
type Cursor[T any] struct {
	fetcher Fetcher[T]

	// opMu serializes navigation operations.
	opMu sync.Mutex

	// mu guards the fields below.
	mu sync.Mutex

	query Query

	// generation increments on every query change.
	generation uint64

	current int
	last    int

	// floor is the highest page confirmed to hold items for the query.
	floor int

	// held is the page the cursor last resolved to.
	held *Page[T]
}

// snapshot captures the state an operation starts from.
type snapshot[T any] struct {
	query      Query
	generation uint64
	current    int
	last       int
	floor      int
	held       *Page[T]
}

// New creates a cursor positioned at page 1 with an unknown last page.
func New[T any](fetcher Fetcher[T], query Query) (*Cursor[T], error) {
	if fetcher == nil {
		return nil, ErrNilFetcher
	}
	if err := query.Validate(); err != nil {
		return nil, err
	}

	return &Cursor[T]{
		fetcher: fetcher,
		query:   query,
		current: 1,
	}, nil
}

// State returns the current position.
func (c *Cursor[T]) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return State{CurrentPage: c.current, LastPage: c.last}
}

// Query returns the active query.
func (c *Cursor[T]) Query() Query {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.query
}

// Current returns the page the cursor last resolved to, if any.
func (c *Cursor[T]) Current() (Page[T], bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.held == nil {
		return Page[T]{}, false
	}
	return *c.held, true
}

// SetQuery replaces the active query. When it differs from the current one the
// cursor resets to page 1 with an unknown last page and any in-flight
// operation is superseded. It never fetches. It reports whether a reset happened.
func (c *Cursor[T]) SetQuery(q Query) (bool, error) {
	if err := q.Validate(); err != nil {
		return false, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.query.Equal(q) {
		return false, nil
	}

	c.query = q
	c.generation++
	c.current = 1
	c.last = 0
	c.floor = 0
	c.held = nil
	return true, nil
}

// LoadPage fetches page n directly, bypassing the held page.
// A target past a known last page is clamped to it. An empty page past the
// first is treated as an overshoot and resolved to the real last page.
func (c *Cursor[T]) LoadPage(ctx context.Context, n int) (Page[T], error) {
	if n < 1 {
		return Page[T]{}, fmt.Errorf("%w: %d", ErrInvalidPageNumber, n)
	}

	c.opMu.Lock()
	defer c.opMu.Unlock()

	snap := c.snapshot()
	return c.resolve(ctx, snap, snap.clamp(n))
}

// Reload refetches the current page.
func (c *Cursor[T]) Reload(ctx context.Context) (Page[T], error) {
	return c.LoadPage(ctx, c.State().CurrentPage)
}

// Next moves to the following page. It is refused with ErrNoNextPage, without
// fetching, when the current page is the known last page. When the following
// page turns out to be empty the current page becomes the known last page and
// ErrNoNextPage is returned.
func (c *Cursor[T]) Next(ctx context.Context) (Page[T], error) {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	snap := c.snapshot()
	if snap.last > 0 && snap.current >= snap.last {
		return Page[T]{}, ErrNoNextPage
	}

	target := snap.current + 1
	page, err := c.resolve(ctx, snap, target)
	if err != nil {
		return Page[T]{}, err
	}
	if page.Number != target {
		return Page[T]{}, ErrNoNextPage
	}
	return page, nil
}

// Prev moves to the preceding page. It is refused with ErrNoPrevPage on page 1.
func (c *Cursor[T]) Prev(ctx context.Context) (Page[T], error) {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	snap := c.snapshot()
	if snap.current <= 1 {
		return Page[T]{}, ErrNoPrevPage
	}
	return c.resolve(ctx, snap, snap.current-1)
}

// JumpTo resolves an arbitrary page number to a page that exists.
//
// A target past the known last page is clamped to it. Jumping to the page
// already held returns it without fetching. Otherwise the target is fetched
// directly; if it is empty the target overshot the end and the last non-empty
// page is found by binary search, costing O(log target) fetches.
func (c *Cursor[T]) JumpTo(ctx context.Context, target int) (Page[T], error) {
	if target < 1 {
		return Page[T]{}, fmt.Errorf("%w: %d", ErrInvalidPageNumber, target)
	}

	c.opMu.Lock()
	defer c.opMu.Unlock()

	snap := c.snapshot()
	target = snap.clamp(target)
	if snap.held != nil && snap.held.Number == target {
		return *snap.held, nil
	}
	return c.resolve(ctx, snap, target)
}

func (c *Cursor[T]) snapshot() snapshot[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return snapshot[T]{
		query:      c.query,
		generation: c.generation,
		current:    c.current,
		last:       c.last,
		floor:      c.floor,
		held:       c.held,
	}
}

func (s snapshot[T]) clamp(n int) int {
	if s.last > 0 && n > s.last {
		return s.last
	}
	return n
}

// resolve fetches target directly and falls back to the last-page search on overshoot.
func (c *Cursor[T]) resolve(ctx context.Context, snap snapshot[T], target int) (Page[T], error) {
	items, err := c.fetcher.FetchPage(ctx, target, snap.query)
	if err != nil {
		return Page[T]{}, err
	}

	page := newPage(target, items, snap.query.PageSize)
	switch {
	case !page.Empty() && page.Full:
		return c.commit(ctx, snap, page, 0)
	case !page.Empty():
		return c.commit(ctx, snap, page, target)
	case target == 1:
		// Nothing at all under this query.
		return c.commit(ctx, snap, page, 1)
	default:
		return c.searchLast(ctx, snap, target)
	}
}

// searchLast finds the last non-empty page below an empty target page.
// The search starts above the highest page already confirmed to hold items;
// with nothing confirmed it first checks page 1.
func (c *Cursor[T]) searchLast(ctx context.Context, snap snapshot[T], target int) (Page[T], error) {
	log := logging.FromContext(ctx)
	size := snap.query.PageSize

	answer := snap.floor
	if answer >= target {
		// Data shrank below what was confirmed earlier.
		answer = 0
	}

	var best *Page[T]
	if answer == 0 {
		items, err := c.fetcher.FetchPage(ctx, 1, snap.query)
		if err != nil {
			return Page[T]{}, &NavigationError{Page: 1, Target: target, Err: err}
		}
		first := newPage(1, items, size)
		if first.Empty() || !first.Full {
			return c.commit(ctx, snap, first, 1)
		}
		answer = 1
		best = &first
	}

	lo, hi := answer+1, target-1
	for lo <= hi {
		mid := lo + (hi-lo)/2
		log.Debug().Int("probe", mid).Int("lo", lo).Int("hi", hi).Msg("probing page")

		items, err := c.fetcher.FetchPage(ctx, mid, snap.query)
		if err != nil {
			return Page[T]{}, &NavigationError{Page: mid, Target: target, Err: err}
		}

		probe := newPage(mid, items, size)
		if probe.Empty() {
			hi = mid - 1
			continue
		}
		answer = mid
		best = &probe
		if !probe.Full {
			// A partial page is the end; nothing above it can hold items.
			break
		}
		lo = mid + 1
	}

	if best == nil {
		// The answer was confirmed by an earlier operation; reuse it when held.
		if snap.held != nil && snap.held.Number == answer {
			best = snap.held
		} else {
			items, err := c.fetcher.FetchPage(ctx, answer, snap.query)
			if err != nil {
				return Page[T]{}, &NavigationError{Page: answer, Target: target, Err: err}
			}
			page := newPage(answer, items, size)
			best = &page
		}
	}

	log.Debug().Int("target", target).Int("last_page", answer).Msg("resolved last page")
	return c.commit(ctx, snap, *best, answer)
}

// commit applies a resolved page unless the operation was cancelled or superseded.
// last is the page confirmed as the last one, or 0 when none was learned.
func (c *Cursor[T]) commit(ctx context.Context, snap snapshot[T], page Page[T], last int) (Page[T], error) {
	if err := ctx.Err(); err != nil {
		return Page[T]{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.generation != snap.generation {
		return Page[T]{}, ErrSuperseded
	}

	c.current = page.Number
	if last > 0 && (c.last == 0 || last < c.last) {
		c.last = last
	}
	if !page.Empty() && page.Number > c.floor {
		c.floor = page.Number
	}
	if c.last > 0 && c.floor > c.last {
		c.floor = c.last
	}

	held := page
	c.held = &held
	return page, nil
}

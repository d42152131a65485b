package listview

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// halfViewportDivisor is used to calculate half the viewport height for centering.
const halfViewportDivisor = 2

// RenderFunc renders one item. The selected parameter indicates whether the
// item has the selection marker.
type RenderFunc[T any] func(item T, selected bool) string

// Model is a scrolling selection over the items of one page. Only the rows
// inside the viewport are rendered. Replacing the items resets the selection
// to the first row.
type Model[T any] struct {
	items      []T
	renderFunc RenderFunc[T]

	// selected is the index of the highlighted item.
	selected int

	// visibleFrom and visibleTo bound the rendered rows; visibleTo is exclusive.
	visibleFrom int
	visibleTo   int

	// height is the viewport height in rows.
	height int
}

// New creates a list showing at most height rows at a time.
func New[T any](height int, renderFunc RenderFunc[T]) *Model[T] {
	if height < 1 {
		height = 1
	}
	return &Model[T]{
		renderFunc: renderFunc,
		height:     height,
	}
}

// SetItems replaces the list contents and selects the first item.
func (m *Model[T]) SetItems(items []T) {
	m.items = items
	m.selected = 0
	m.updateVisibleRange()
}

// Items returns the list contents.
func (m *Model[T]) Items() []T {
	return m.items
}

// SetHeight resizes the viewport.
func (m *Model[T]) SetHeight(height int) {
	if height < 1 {
		height = 1
	}
	m.height = height
	m.updateVisibleRange()
}

// Update moves the selection for up/down, j/k, home/end and pgup/pgdown.
// It reports whether the message moved or could have moved the selection.
func (m *Model[T]) Update(msg tea.Msg) bool {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || len(m.items) == 0 {
		return false
	}

	switch keyMsg.String() {
	case "up", "k":
		m.move(-1)
	case "down", "j":
		m.move(1)
	case "pgup":
		m.move(-m.height)
	case "pgdown":
		m.move(m.height)
	case "home":
		m.SetSelected(0)
	case "end":
		m.SetSelected(len(m.items) - 1)
	default:
		return false
	}
	return true
}

func (m *Model[T]) move(delta int) {
	m.SetSelected(m.selected + delta)
}

// updateVisibleRange keeps the selected row inside the viewport, centering it
// when there is room.
func (m *Model[T]) updateVisibleRange() {
	if len(m.items) == 0 {
		m.visibleFrom = 0
		m.visibleTo = 0
		return
	}

	half := m.height / halfViewportDivisor
	from := max(m.selected-half, 0)
	to := from + m.height
	if to > len(m.items) {
		to = len(m.items)
		from = max(to-m.height, 0)
	}

	m.visibleFrom = from
	m.visibleTo = to
}

// View renders the rows inside the viewport.
func (m *Model[T]) View() string {
	if len(m.items) == 0 {
		return ""
	}

	lines := make([]string, 0, m.visibleTo-m.visibleFrom)
	for i := m.visibleFrom; i < m.visibleTo; i++ {
		lines = append(lines, m.renderFunc(m.items[i], i == m.selected))
	}
	return strings.Join(lines, "\n")
}

// Len returns the number of items.
func (m *Model[T]) Len() int {
	return len(m.items)
}

// Selected returns the index of the selected item.
func (m *Model[T]) Selected() int {
	return m.selected
}

// SetSelected moves the selection, clamped to the list bounds.
func (m *Model[T]) SetSelected(index int) {
	if len(m.items) == 0 {
		m.selected = 0
		return
	}
	m.selected = min(max(index, 0), len(m.items)-1)
	m.updateVisibleRange()
}

// VisibleRange returns the rendered row bounds, end exclusive.
func (m *Model[T]) VisibleRange() (int, int) {
	return m.visibleFrom, m.visibleTo
}

// SelectedItem returns the selected item, or false when the list is empty.
func (m *Model[T]) SelectedItem() (T, bool) {
	if len(m.items) == 0 {
		var zero T
		return zero, false
	}
	return m.items[m.selected], true
}

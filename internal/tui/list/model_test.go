package listview

import (
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

func render(s string, selected bool) string {
	if selected {
		return "*" + s
	}
	return " " + s
}

func items(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("row%d", i)
	}
	return out
}

func key(k string) tea.KeyMsg {
	switch k {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "home":
		return tea.KeyMsg{Type: tea.KeyHome}
	case "end":
		return tea.KeyMsg{Type: tea.KeyEnd}
	case "pgdown":
		return tea.KeyMsg{Type: tea.KeyPgDown}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
}

func TestModel_Empty(t *testing.T) {
	m := New(5, render)

	assert.Empty(t, m.View())
	assert.False(t, m.Update(key("down")))
	_, ok := m.SelectedItem()
	assert.False(t, ok)
}

func TestModel_Navigation(t *testing.T) {
	m := New(3, render)
	m.SetItems(items(10))

	assert.True(t, m.Update(key("j")))
	assert.True(t, m.Update(key("down")))
	assert.Equal(t, 2, m.Selected())

	m.Update(key("k"))
	assert.Equal(t, 1, m.Selected())

	m.Update(key("up"))
	m.Update(key("up"))
	assert.Equal(t, 0, m.Selected(), "clamped at the top")

	m.Update(key("end"))
	assert.Equal(t, 9, m.Selected())
	m.Update(key("down"))
	assert.Equal(t, 9, m.Selected(), "clamped at the bottom")

	m.Update(key("home"))
	m.Update(key("pgdown"))
	assert.Equal(t, 3, m.Selected())

	assert.False(t, m.Update(key("x")))
	assert.False(t, m.Update(tea.WindowSizeMsg{Width: 10, Height: 10}))
}

func TestModel_ViewportFollowsSelection(t *testing.T) {
	m := New(3, render)
	m.SetItems(items(10))

	from, to := m.VisibleRange()
	assert.Equal(t, 0, from)
	assert.Equal(t, 3, to)
	assert.Equal(t, "*row0\n row1\n row2", m.View())

	m.SetSelected(5)
	from, to = m.VisibleRange()
	assert.Equal(t, 4, from)
	assert.Equal(t, 7, to)

	m.SetSelected(9)
	from, to = m.VisibleRange()
	assert.Equal(t, 7, from)
	assert.Equal(t, 10, to)
	assert.Contains(t, m.View(), "*row9")
}

func TestModel_SetItemsResetsSelection(t *testing.T) {
	m := New(3, render)
	m.SetItems(items(10))
	m.SetSelected(8)

	m.SetItems(items(2))
	assert.Equal(t, 0, m.Selected())
	assert.Equal(t, 2, m.Len())

	item, ok := m.SelectedItem()
	assert.True(t, ok)
	assert.Equal(t, "row0", item)
	assert.Equal(t, "*row0\n row1", m.View())
}

func TestModel_SetHeight(t *testing.T) {
	m := New(0, render)
	m.SetItems(items(5))
	_, to := m.VisibleRange()
	assert.Equal(t, 1, to, "height is at least one row")

	m.SetHeight(10)
	from, to := m.VisibleRange()
	assert.Equal(t, 0, from)
	assert.Equal(t, 5, to)
}

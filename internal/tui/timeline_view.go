package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/viewmim/archivectl/internal/tui/detail"
)

// View renders the current screen (Bubble Tea interface).
func (m TimelineModel[T]) View() string {
	switch m.state {
	case ViewStateQuitting:
		return ""
	case ViewStateDetail:
		return m.renderDetailView()
	default:
		return m.renderListView()
	}
}

func (m TimelineModel[T]) renderListView() string {
	sections := []string{HeaderStyle.Render(m.cfg.Title)}

	switch {
	case m.list.Len() == 0 && m.loading:
		sections = append(sections, m.spinner.View()+" Loading...")
	case m.list.Len() == 0:
		sections = append(sections, SubtleStyle.Render("No items."))
	default:
		sections = append(sections, m.list.View())
	}

	sections = append(sections, RenderStatusBar(m.position, m.cfg.Cursor.Query(), m.loading, m.width))

	if line := m.renderMessageLine(); line != "" {
		sections = append(sections, line)
	}

	switch m.state {
	case ViewStateJumpInput:
		sections = append(sections, LabelStyle.Render("Jump to page: ")+m.input.View())
	case ViewStateFilterInput:
		sections = append(sections, LabelStyle.Render("Filter by "+m.cfg.FilterName+": ")+m.input.View())
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m TimelineModel[T]) renderMessageLine() string {
	switch {
	case m.err != nil:
		return CriticalStyle.Render("Error: " + m.err.Error())
	case m.notice != "":
		return WarningStyle.Render(m.notice)
	default:
		return ""
	}
}

func (m TimelineModel[T]) renderDetailView() string {
	var body string
	switch m.detail.State() {
	case detail.StateLoading:
		body = m.spinner.View() + fmt.Sprintf(" Loading #%d...", m.detail.Key())
	case detail.StateError:
		body = CriticalStyle.Render("Error: "+m.detail.Err().Error()) + "\n" +
			SubtleStyle.Render("Press 'r' to retry.")
	default:
		body = m.detail.Data()
	}

	help := SubtleStyle.Render("esc back  r reload  q quit")
	return lipgloss.JoinVertical(lipgloss.Left, body, help)
}

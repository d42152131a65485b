package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/viewmim/archivectl/internal/archive"
	"github.com/viewmim/archivectl/internal/media"
	"github.com/viewmim/archivectl/internal/pagecursor"
	"github.com/viewmim/archivectl/internal/session"
)

// Layout constants.
const (
	maxCaptionDisplayLen = 60
	maxNameDisplayLen    = 40
	truncateSuffix       = "..."
	borderPadding        = 2
	dateDisplayLayout    = "2006-01-02"
	selectedMarker       = "> "
	unselectedMarker     = "  "
)

// timestampLayouts are the forms the API uses for dates.
//
//nolint:gochecknoglobals // Lookup table.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	dateDisplayLayout,
}

// truncate shortens s to at most n runes, ending with "..." when cut.
func truncate(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	keep := max(n-len(truncateSuffix), 0)
	return string(runes[:keep]) + truncateSuffix
}

// formatDate renders an API timestamp as a calendar date. Unknown forms are returned unchanged.
func formatDate(s string) string {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(dateDisplayLayout)
		}
	}
	return s
}

func platformBadge(p media.Platform) string {
	label := "[" + strings.ToUpper(p.String()) + "]"
	switch p {
	case media.Instagram:
		return lipgloss.NewStyle().Foreground(ColorInstagram).Render(label)
	case media.Twitter:
		return lipgloss.NewStyle().Foreground(ColorTwitter).Render(label)
	case media.TikTok:
		return lipgloss.NewStyle().Foreground(ColorTikTok).Render(label)
	default:
		return SubtleStyle.Render(label)
	}
}

// styled renders s with style, keeping empty input empty.
func styled(style lipgloss.Style, s string) string {
	if strings.TrimSpace(s) == "" {
		return ""
	}
	return style.Render(s)
}

// RenderPostRow renders one line of the posts timeline.
func RenderPostRow(p archive.TimelinePost, selected bool) string {
	caption := p.Caption
	if caption == "" {
		caption = p.ExternalURL
	}

	var extras []string
	if n := len(archive.GroupReplyPairs(p.Comments)); n > 0 {
		extras = append(extras, fmt.Sprintf("%d comments", n))
	}
	if n := len(p.Replies); n > 0 {
		extras = append(extras, fmt.Sprintf("%d replies", n))
	}

	line := fmt.Sprintf("%s %s  %-12s %s",
		platformBadge(p.Platform),
		formatDate(p.PostedAt),
		truncate(p.AuthorName, maxNameDisplayLen/3), //nolint:mnd // Author column is a third of the name width.
		truncate(caption, maxCaptionDisplayLen),
	)
	if len(extras) > 0 {
		line += " " + SubtleStyle.Render("("+strings.Join(extras, ", ")+")")
	}

	if selected {
		return selectedMarker + SelectedRowStyle.Render(line)
	}
	return unselectedMarker + line
}

// RenderEventRow renders one line of the events timeline.
func RenderEventRow(e archive.Event, selected bool) string {
	date := formatDate(e.EventDate)
	if date == "" {
		date = strings.Repeat(" ", len(dateDisplayLayout))
	}

	line := fmt.Sprintf("%s  %s", date, truncate(e.Name, maxNameDisplayLen))
	if e.Location != "" {
		line += SubtleStyle.Render(" @ " + truncate(e.Location, maxNameDisplayLen/2)) //nolint:mnd // Half width.
	}
	if len(e.Tags) > 0 {
		line += " " + LabelStyle.Render("#"+strings.Join(e.Tags, " #"))
	}

	if selected {
		return selectedMarker + SelectedRowStyle.Render(line)
	}
	return unselectedMarker + line
}

func field(label, value string) string {
	if strings.TrimSpace(value) == "" {
		return ""
	}
	return LabelStyle.Render(label+": ") + ValueStyle.Render(value)
}

func joinNonEmpty(lines ...string) string {
	out := lines[:0:0]
	for _, l := range lines {
		if l != "" {
			out = append(out, l)
		}
	}
	return strings.Join(out, "\n")
}

func mediaLine(u string) string {
	u = media.SafeURL(u)
	if u == "" {
		return ""
	}
	kind := media.Classify(u).String()
	if media.IsFromR2(u) {
		kind += ", archived"
	}
	return field("Media", u+" "+SubtleStyle.Render("("+kind+")"))
}

// RenderPostDetail renders a post with its grouped comments and reply thread.
// Admin hints are shown only when caps allows mutations.
func RenderPostDetail(p archive.TimelinePost, caps session.Capabilities, width int) string {
	header := HeaderStyle.Render(fmt.Sprintf("%s post #%d", p.Platform.DisplayName(), p.ID))

	body := joinNonEmpty(
		header,
		field("Author", p.AuthorName),
		field("Posted", formatDate(p.PostedAt)),
		field("URL", media.SafeURL(p.ExternalURL)),
		field("External ID", p.ExternalID),
		mediaLine(p.MediaURL),
		styled(ValueStyle, p.Caption),
		styled(SubtleStyle, p.CaptionTranslation),
	)

	sections := []string{body}

	if pairs := archive.GroupReplyPairs(p.Comments); len(pairs) > 0 {
		lines := []string{HeaderStyle.Render(fmt.Sprintf("Comments (%d)", len(pairs)))}
		for _, pair := range pairs {
			lines = append(lines, fmt.Sprintf("%s %s: %s",
				SubtleStyle.Render("#"+strconv.Itoa(pair.Main.ID)),
				LabelStyle.Render(pair.Main.AuthorName),
				pair.Main.Content))
			if pair.Translation != nil {
				lines = append(lines, "    "+SubtleStyle.Render(pair.Translation.Content))
			}
		}
		sections = append(sections, strings.Join(lines, "\n"))
	}

	if len(p.Replies) > 0 {
		lines := []string{HeaderStyle.Render(fmt.Sprintf("Thread (%d)", len(p.Replies)))}
		for _, r := range p.Replies {
			lines = append(lines, fmt.Sprintf("%s %s %s",
				formatDate(r.PostedAt),
				LabelStyle.Render(r.AuthorName),
				truncate(r.Caption, maxCaptionDisplayLen)))
		}
		sections = append(sections, strings.Join(lines, "\n"))
	}

	if caps.IsAdmin {
		sections = append(sections, SubtleStyle.Render(fmt.Sprintf(
			"admin: archivectl posts edit %d | posts reply %d | posts delete %d", p.ID, p.ID, p.ID)))
	}

	return boxed(strings.Join(sections, "\n\n"), width)
}

// RenderEventDetail renders an event. Authors are shown in the order given.
func RenderEventDetail(e archive.Event, caps session.Capabilities, width int) string {
	names := make([]string, 0, len(e.Authors))
	for _, a := range e.Authors {
		names = append(names, a.Name)
	}

	var tags string
	if len(e.Tags) > 0 {
		tags = "#" + strings.Join(e.Tags, " #")
	}

	var search string
	if e.Keyword != "" {
		search = media.TwitterSearchQuery(e.Keyword, formatDate(e.EventDate))
	}

	lines := []string{
		HeaderStyle.Render(fmt.Sprintf("%s (event #%d)", e.Name, e.ID)),
		field("Date", formatDate(e.EventDate)),
		field("Location", e.Location),
		field("With", strings.Join(names, ", ")),
		field("Tags", tags),
		field("Keyword", e.Keyword),
		field("Twitter search", search),
		field("Announcement", media.SafeURL(e.AnnouncementURL)),
		field("Live", media.SafeURL(e.LiveURL)),
		field("Embed", media.YouTubeEmbedURL(e.LiveURL)),
		mediaLine(e.MediaURL),
	}

	if caps.IsAdmin {
		lines = append(lines, SubtleStyle.Render(fmt.Sprintf(
			"admin: archivectl events edit %d | events delete %d", e.ID, e.ID)))
	}

	return boxed(joinNonEmpty(lines...), width)
}

func boxed(content string, width int) string {
	style := BoxStyle
	if width > borderPadding*2 {
		style = style.Width(width - borderPadding)
	}
	return style.Render(content)
}

// PageLabel renders the position as "Page X of Y", with "?" while the last
// page is unknown.
func PageLabel(s pagecursor.State) string {
	last := "?"
	if s.LastPageKnown() {
		last = strconv.Itoa(s.LastPage)
	}
	return fmt.Sprintf("Page %d of %s", s.CurrentPage, last)
}

// RenderStatusBar renders the position, the active query and the key help.
func RenderStatusBar(s pagecursor.State, q pagecursor.Query, loading bool, width int) string {
	parts := []string{PageLabel(s)}
	if q.Sort != "" {
		parts = append(parts, "sort: "+q.Sort)
	}
	for _, name := range []string{archive.FilterPlatform, archive.FilterKeyword, archive.FilterTag} {
		if v := q.Filter(name); v != "" {
			parts = append(parts, name+": "+v)
		}
	}
	if loading {
		parts = append(parts, "loading...")
	}

	help := "n/p page  g jump  f filter  s sort  r reload  enter open  q quit"
	bar := StatusBarStyle.Render(strings.Join(parts, " | "))
	if width > 0 && lipgloss.Width(bar)+lipgloss.Width(help)+borderPadding < width {
		return bar + "  " + SubtleStyle.Render(help)
	}
	return bar + "\n" + SubtleStyle.Render(help)
}

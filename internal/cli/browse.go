package cli

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/viewmim/archivectl/internal/archive"
	"github.com/viewmim/archivectl/internal/cli/pagination"
	"github.com/viewmim/archivectl/internal/media"
	"github.com/viewmim/archivectl/internal/pagecursor"
	"github.com/viewmim/archivectl/internal/tui"
)

// ErrNotInteractive is returned by browse commands outside a terminal.
var ErrNotInteractive = errors.New("browse needs an interactive terminal: use the list commands instead")

// browseSorts are cycled with 's' in the browser.
var browseSorts = []string{pagination.SortNewest, pagination.SortOldest} //nolint:gochecknoglobals // Immutable sort cycle

// normalizePlatform maps a platform typed at the filter prompt to its short
// code, so aliases such as "instagram" and "ig" address the same pages.
func normalizePlatform(s string) (string, error) {
	p, err := media.ParsePlatform(s)
	if err != nil {
		return "", err
	}
	return p.String(), nil
}

// runBrowser runs a timeline until the user quits.
func runBrowser[T any](cmd *cobra.Command, cfg tui.TimelineConfig[T]) error {
	if tui.DetectOutputMode(false, false) != tui.OutputModeInteractive {
		return ErrNotInteractive
	}

	ctx := cmd.Context()
	m, err := tui.NewTimelineModel(ctx, cfg)
	if err != nil {
		return err
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err = p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return nil
}

type browseFlags struct {
	page pagination.Params
}

func (f *browseFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.page.Jump, "jump", 0, "open the browser at this page; lands on the last page if past the end")
	cmd.Flags().IntVar(&f.page.PageSize, "page-size", 0, "items per page (default from config)")
	cmd.Flags().StringVar(&f.page.Sort, "sort", "", "initial sort order: newest or oldest (default from config)")
}

// prepare resolves the flags against the configuration.
func (f *browseFlags) prepare(cmd *cobra.Command, a *app) error {
	f.page.Page = pagination.DefaultPage
	applyPageDefaults(cmd, &f.page, a.cfg.Pagination.PageSize, a.cfg.Pagination.Sort)
	return f.page.Validate()
}

// NewBrowsePostsCmd creates the interactive post browser.
func NewBrowsePostsCmd() *cobra.Command {
	var flags browseFlags
	var platform string

	cmd := &cobra.Command{
		Use:   "posts",
		Short: "Browse posts with comments and reply threads",
		Long: `Browse posts page by page.

Keys: n/p next and previous page, g jump to a page, f filter by platform,
s toggle sort, r reload, enter open a post, q quit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			if err = flags.prepare(cmd, a); err != nil {
				return err
			}

			filters := map[string]string{}
			if platform != "" {
				p, parseErr := normalizePlatform(platform)
				if parseErr != nil {
					return parseErr
				}
				filters[archive.FilterPlatform] = p
			}

			cursor, err := pagecursor.New[archive.TimelinePost](archive.PostPages{Client: a.client}, flags.page.Query(filters))
			if err != nil {
				return err
			}

			caps := a.caps
			return runBrowser(cmd, tui.TimelineConfig[archive.TimelinePost]{
				Title:     "Posts",
				Cursor:    cursor,
				RenderRow: tui.RenderPostRow,
				Decorate:  a.client.EnrichTimeline,
				ItemID:    func(p archive.TimelinePost) int { return p.ID },
				Detail: func(ctx context.Context, id int) (string, error) {
					post, loadErr := a.client.LoadTimelinePost(ctx, id)
					if loadErr != nil {
						return "", loadErr
					}
					return tui.RenderPostDetail(post, caps, 0), nil
				},
				FilterName:      archive.FilterPlatform,
				NormalizeFilter: normalizePlatform,
				Sorts:           browseSorts,
				StartPage:       flags.page.Jump,
			})
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&platform, "platform", "", "start filtered to this platform: ig, x or tt")
	return cmd
}

// NewBrowseEventsCmd creates the interactive event browser.
func NewBrowseEventsCmd() *cobra.Command {
	var flags browseFlags
	var keyword, tag string

	cmd := &cobra.Command{
		Use:   "events",
		Short: "Browse events",
		Long: `Browse events page by page.

Keys: n/p next and previous page, g jump to a page, f filter by keyword,
s toggle sort, r reload, enter open an event, q quit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			if err = flags.prepare(cmd, a); err != nil {
				return err
			}

			filters := map[string]string{
				archive.FilterKeyword: keyword,
				archive.FilterTag:     tag,
			}
			cursor, err := pagecursor.New[archive.Event](archive.EventPages{Client: a.client}, flags.page.Query(filters))
			if err != nil {
				return err
			}

			caps, pinned := a.caps, a.cfg.Display.PinnedAuthors
			return runBrowser(cmd, tui.TimelineConfig[archive.Event]{
				Title:     "Events",
				Cursor:    cursor,
				RenderRow: tui.RenderEventRow,
				ItemID:    func(e archive.Event) int { return e.ID },
				Detail: func(ctx context.Context, id int) (string, error) {
					event, loadErr := a.client.GetEvent(ctx, id)
					if loadErr != nil {
						return "", loadErr
					}
					event.Authors = archive.OrderAuthors(event.Authors, pinned)
					return tui.RenderEventDetail(event, caps, 0), nil
				},
				FilterName: archive.FilterKeyword,
				Sorts:      browseSorts,
				StartPage:  flags.page.Jump,
			})
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&keyword, "keyword", "", "start filtered to this keyword")
	cmd.Flags().StringVar(&tag, "tag", "", "only events carrying this tag")
	return cmd
}

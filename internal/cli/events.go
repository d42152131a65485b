package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/viewmim/archivectl/internal/archive"
	"github.com/viewmim/archivectl/internal/cli/pagination"
	"github.com/viewmim/archivectl/internal/tui"
)

const (
	eventNameColumnWidth     = 40
	eventLocationColumnWidth = 30
)

type eventsListFlags struct {
	page    pagination.Params
	keyword string
	tag     string
	output  string
}

// NewEventsListCmd creates the events list command.
func NewEventsListCmd() *cobra.Command {
	var flags eventsListFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List archived events",
		Example: `  # Latest events
  archivectl events list

  # Events tagged "concert", oldest first, as JSON
  archivectl events list --tag concert --sort oldest --output json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runEventsList(cmd, &flags)
		},
	}

	addPageFlags(cmd, &flags.page)
	cmd.Flags().StringVar(&flags.keyword, "keyword", "", "only events with this search keyword")
	cmd.Flags().StringVar(&flags.tag, "tag", "", "only events carrying this tag")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output format: table, json or ndjson")

	return cmd
}

func runEventsList(cmd *cobra.Command, flags *eventsListFlags) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	applyPageDefaults(cmd, &flags.page, a.cfg.Pagination.PageSize, a.cfg.Pagination.Sort)
	if err = flags.page.Validate(); err != nil {
		return err
	}
	format, err := parseOutputFormat(flags.output, a.cfg.Output.DefaultFormat)
	if err != nil {
		return err
	}

	filters := map[string]string{
		archive.FilterKeyword: flags.keyword,
		archive.FilterTag:     flags.tag,
	}

	page, meta, err := resolvePage[archive.Event](cmd.Context(), archive.EventPages{Client: a.client}, flags.page, filters)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch format {
	case OutputJSON:
		return writeJSON(out, listResult[archive.Event]{Items: page.Items, Pagination: meta})
	case OutputNDJSON:
		return writeNDJSON(out, page.Items)
	default:
		if err = writeEventsTable(out, page.Items); err != nil {
			return err
		}
		writePageFooter(out, meta)
		return nil
	}
}

func writeEventsTable(w io.Writer, events []archive.Event) error {
	tw := tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)
	fmt.Fprintln(tw, "ID\tDate\tName\tLocation\tTags")
	fmt.Fprintln(tw, "--\t----\t----\t--------\t----")
	for _, e := range events {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n",
			e.ID,
			orDash(shortDate(e.EventDate)),
			cell(e.Name, eventNameColumnWidth),
			cell(e.Location, eventLocationColumnWidth),
			orDash(strings.Join(e.Tags, ",")))
	}
	return tw.Flush()
}

// NewEventsShowCmd creates the events show command.
func NewEventsShowCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show an event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("event", args[0])
			if err != nil {
				return err
			}
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			format, err := parseOutputFormat(output, a.cfg.Output.DefaultFormat)
			if err != nil {
				return err
			}

			event, err := a.client.GetEvent(cmd.Context(), id)
			if err != nil {
				return err
			}
			event.Authors = archive.OrderAuthors(event.Authors, a.cfg.Display.PinnedAuthors)

			if format != OutputTable {
				return writeJSON(cmd.OutOrStdout(), event)
			}
			fmt.Fprintln(cmd.OutOrStdout(), tui.RenderEventDetail(event, a.caps, 0))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output format: table or json")
	return cmd
}

// eventFormFlags are the editable fields of an event.
type eventFormFlags struct {
	name            string
	location        string
	keyword         string
	tags            string
	mediaURL        string
	date            string
	announcementURL string
	liveURL         string
	authors         []string
}

func (f *eventFormFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "event name")
	cmd.Flags().StringVar(&f.location, "location", "", "venue or city")
	cmd.Flags().StringVar(&f.keyword, "keyword", "", "search keyword, used for the X/Twitter search link")
	cmd.Flags().StringVar(&f.tags, "tags", "", "comma-separated tags")
	cmd.Flags().StringVar(&f.mediaURL, "media-url", "", "archived media URL")
	cmd.Flags().StringVar(&f.date, "date", "", "event date, e.g. 2024-05-01")
	cmd.Flags().StringVar(&f.announcementURL, "announcement-url", "", "link to the announcement")
	cmd.Flags().StringVar(&f.liveURL, "live-url", "", "link to the live broadcast")
	cmd.Flags().StringArrayVar(&f.authors, "author", nil, "author taking part; repeatable, registered when unknown")
}

// authorIDs resolves author names to IDs, registering unknown names.
func authorIDs(ctx context.Context, client *archive.Client, names []string) ([]int, error) {
	ids := make([]int, 0, len(names))
	for _, name := range names {
		if strings.TrimSpace(name) == "" {
			continue
		}
		id, err := resolveAuthor(ctx, client, name)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// NewEventsCreateCmd creates the events create command.
func NewEventsCreateCmd() *cobra.Command {
	var flags eventFormFlags

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Archive a new event (admin)",
		Example: `  archivectl events create --name "Fan Meeting" --date 2024-05-01 \
    --location Bangkok --tags fanmeet,live --author View --author Mim`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			if err = a.requireAdmin(); err != nil {
				return err
			}

			ctx := cmd.Context()
			ids, err := authorIDs(ctx, a.client, flags.authors)
			if err != nil {
				return explainAPIError(err)
			}

			event, err := a.client.CreateEvent(ctx, archive.EventInput{
				Name:            flags.name,
				Location:        archive.OptionalString(flags.location),
				Keyword:         archive.OptionalString(flags.keyword),
				Tags:            archive.ParseTags(flags.tags),
				MediaURL:        archive.OptionalString(flags.mediaURL),
				EventDate:       archive.OptionalString(flags.date),
				AnnouncementURL: archive.OptionalString(flags.announcementURL),
				LiveURL:         archive.OptionalString(flags.liveURL),
				AuthorIDs:       ids,
			})
			if err != nil {
				return explainAPIError(err)
			}
			cmd.Printf("Created event %d (%s)\n", event.ID, event.Name)
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}

// eventInputFrom converts a stored event back into an update payload.
func eventInputFrom(e archive.Event) archive.EventInput {
	ids := make([]int, 0, len(e.Authors))
	for _, a := range e.Authors {
		ids = append(ids, a.ID)
	}
	return archive.EventInput{
		Name:            e.Name,
		Location:        archive.OptionalString(e.Location),
		Keyword:         archive.OptionalString(e.Keyword),
		Tags:            e.Tags,
		MediaURL:        archive.OptionalString(e.MediaURL),
		EventDate:       archive.OptionalString(e.EventDate),
		AnnouncementURL: archive.OptionalString(e.AnnouncementURL),
		LiveURL:         archive.OptionalString(e.LiveURL),
		AuthorIDs:       ids,
	}
}

// NewEventsEditCmd creates the events edit command. Only the flags given are
// changed; a blank value clears the field.
func NewEventsEditCmd() *cobra.Command {
	var flags eventFormFlags

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit an event (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("event", args[0])
			if err != nil {
				return err
			}
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			if err = a.requireAdmin(); err != nil {
				return err
			}

			ctx := cmd.Context()
			current, err := a.client.GetEvent(ctx, id)
			if err != nil {
				return explainAPIError(err)
			}
			in := eventInputFrom(current)

			changed := cmd.Flags().Changed
			if changed("name") {
				in.Name = flags.name
			}
			optional := map[string]struct {
				dst **string
				v   string
			}{
				"location":         {&in.Location, flags.location},
				"keyword":          {&in.Keyword, flags.keyword},
				"media-url":        {&in.MediaURL, flags.mediaURL},
				"date":             {&in.EventDate, flags.date},
				"announcement-url": {&in.AnnouncementURL, flags.announcementURL},
				"live-url":         {&in.LiveURL, flags.liveURL},
			}
			for name, f := range optional {
				if changed(name) {
					*f.dst = archive.OptionalString(f.v)
				}
			}
			if changed("tags") {
				in.Tags = archive.ParseTags(flags.tags)
			}
			if changed("author") {
				if in.AuthorIDs, err = authorIDs(ctx, a.client, flags.authors); err != nil {
					return explainAPIError(err)
				}
			}

			updated, err := a.client.UpdateEvent(ctx, id, in)
			if err != nil {
				return explainAPIError(err)
			}
			cmd.Printf("Updated event %d (%s)\n", updated.ID, updated.Name)
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}

// NewEventsDeleteCmd creates the events delete command.
func NewEventsDeleteCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an event (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("event", args[0])
			if err != nil {
				return err
			}
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			if err = a.requireAdmin(); err != nil {
				return err
			}
			if err = confirmDestructive(cmd, force, fmt.Sprintf("Delete event %d?", id)); err != nil {
				return err
			}

			if err = a.client.DeleteEvent(cmd.Context(), id); err != nil {
				return explainAPIError(err)
			}
			cmd.Printf("Deleted event %d\n", id)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "delete without asking")
	return cmd
}

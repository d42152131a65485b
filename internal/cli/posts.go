package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/viewmim/archivectl/internal/archive"
	"github.com/viewmim/archivectl/internal/cli/pagination"
	"github.com/viewmim/archivectl/internal/media"
	"github.com/viewmim/archivectl/internal/tui"
)

// captionColumnWidth bounds the caption column of post tables.
const captionColumnWidth = 50

// postsListFlags holds the flags of posts list.
type postsListFlags struct {
	page        pagination.Params
	platform    string
	withReplies bool
	output      string
}

// NewPostsListCmd creates the posts list command.
func NewPostsListCmd() *cobra.Command {
	var flags postsListFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List archived posts, newest first",
		Example: `  # First page of posts
  archivectl posts list

  # Page 3 of X/Twitter posts, oldest first
  archivectl posts list --platform x --page 3 --sort oldest

  # Jump far ahead; lands on the last page if there are fewer pages
  archivectl posts list --jump 50

  # Include comments and reply threads as JSON
  archivectl posts list --with-replies --output json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPostsList(cmd, &flags)
		},
	}

	addPageFlags(cmd, &flags.page)
	cmd.Flags().StringVar(&flags.platform, "platform", "", "only posts from this platform: ig, x or tt")
	cmd.Flags().BoolVar(&flags.withReplies, "with-replies", false, "load comments and reply threads for each post")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output format: table, json or ndjson")

	return cmd
}

func runPostsList(cmd *cobra.Command, flags *postsListFlags) error {
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

	filters := map[string]string{}
	if flags.platform != "" {
		p, parseErr := media.ParsePlatform(flags.platform)
		if parseErr != nil {
			return parseErr
		}
		filters[archive.FilterPlatform] = p.String()
	}

	ctx := cmd.Context()
	page, meta, err := resolvePage[archive.TimelinePost](ctx, archive.PostPages{Client: a.client}, flags.page, filters)
	if err != nil {
		return err
	}

	items := page.Items
	if flags.withReplies && len(items) > 0 {
		if items, err = a.client.EnrichTimeline(ctx, items); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	switch format {
	case OutputJSON:
		return writeJSON(out, listResult[archive.TimelinePost]{Items: items, Pagination: meta})
	case OutputNDJSON:
		return writeNDJSON(out, items)
	default:
		if err = writePostsTable(out, items, flags.withReplies); err != nil {
			return err
		}
		writePageFooter(out, meta)
		return nil
	}
}

func writePostsTable(w io.Writer, items []archive.TimelinePost, withReplies bool) error {
	tw := tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)

	if withReplies {
		fmt.Fprintln(tw, "ID\tPlatform\tPosted\tAuthor\tCaption\tComments\tReplies")
		fmt.Fprintln(tw, "--\t--------\t------\t------\t-------\t--------\t-------")
	} else {
		fmt.Fprintln(tw, "ID\tPlatform\tPosted\tAuthor\tCaption")
		fmt.Fprintln(tw, "--\t--------\t------\t------\t-------")
	}

	for _, p := range items {
		caption := p.Caption
		if caption == "" {
			caption = p.ExternalURL
		}
		row := fmt.Sprintf("%d\t%s\t%s\t%s\t%s",
			p.ID, p.Platform.DisplayName(), orDash(shortDate(p.PostedAt)), orDash(p.AuthorName), cell(caption, captionColumnWidth))
		if withReplies {
			row += fmt.Sprintf("\t%d\t%d", len(archive.GroupReplyPairs(p.Comments)), len(p.Replies))
		}
		fmt.Fprintln(tw, row)
	}
	return tw.Flush()
}

// shortDate keeps the calendar date of an API timestamp.
func shortDate(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= len("2006-01-02") && s[4] == '-' {
		return s[:10]
	}
	return s
}

// parseID parses a positional numeric ID.
func parseID(kind, s string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid %s ID %q: must be a positive integer", kind, s)
	}
	return id, nil
}

// NewPostsShowCmd creates the posts show command.
func NewPostsShowCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a post with its comments and reply thread",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("post", args[0])
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

			post, err := a.client.LoadTimelinePost(cmd.Context(), id)
			if err != nil {
				return err
			}

			switch format {
			case OutputJSON, OutputNDJSON:
				return writeJSON(cmd.OutOrStdout(), post)
			default:
				fmt.Fprintln(cmd.OutOrStdout(), tui.RenderPostDetail(post, a.caps, 0))
				return nil
			}
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output format: table or json")
	return cmd
}

// resolveAuthor returns the ID of the named author, registering it when unknown.
func resolveAuthor(ctx context.Context, client *archive.Client, name string) (int, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, fmt.Errorf("%w: --author is required", archive.ErrInvalidInput)
	}

	authors, err := client.ListAuthors(ctx)
	if err != nil {
		return 0, err
	}
	if a, ok := archive.FindAuthor(authors, name); ok {
		return a.ID, nil
	}

	created, err := client.EnsureAuthor(ctx, archive.AuthorInput{Name: name})
	if err != nil {
		return 0, err
	}
	logger.Info().Ctx(ctx).Int("author_id", created.ID).Str("name", created.Name).Msg("registered author")
	return created.ID, nil
}

// postFormFlags are the editable fields of a post.
type postFormFlags struct {
	platform    string
	url         string
	author      string
	caption     string
	translation string
	mediaURL    string
	postedAt    string
	parent      int
}

func (f *postFormFlags) register(cmd *cobra.Command, create bool) {
	if create {
		cmd.Flags().StringVar(&f.platform, "platform", "", "platform: ig, x or tt (required)")
		cmd.Flags().StringVar(&f.url, "url", "", "link to the original post (required)")
		cmd.Flags().StringVar(&f.author, "author", "", "author name; registered when unknown (required)")
		cmd.Flags().IntVar(&f.parent, "parent", 0, "ID of the post this one replies to")
	}
	cmd.Flags().StringVar(&f.caption, "caption", "", "caption text")
	cmd.Flags().StringVar(&f.translation, "translation", "", "caption translation")
	cmd.Flags().StringVar(&f.mediaURL, "media-url", "", "archived media URL")
	cmd.Flags().StringVar(&f.postedAt, "posted-at", "", "when it was posted, e.g. 2024-05-01T20:00:00")
}

// NewPostsCreateCmd creates the posts create command.
func NewPostsCreateCmd() *cobra.Command {
	var flags postFormFlags

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Archive a new post (admin)",
		Example: `  archivectl posts create --platform x --url https://x.com/view/status/123 \
    --author View --caption "good morning" --posted-at 2024-05-01T08:00:00`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			if err = a.requireAdmin(); err != nil {
				return err
			}

			platform, err := media.ParsePlatform(flags.platform)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			authorID, err := resolveAuthor(ctx, a.client, flags.author)
			if err != nil {
				return explainAPIError(err)
			}

			in := archive.PostInput{
				Platform:           platform,
				ExternalURL:        flags.url,
				AuthorID:           authorID,
				Caption:            archive.OptionalString(flags.caption),
				CaptionTranslation: archive.OptionalString(flags.translation),
				MediaURL:           archive.OptionalString(flags.mediaURL),
				PostedAt:           strings.TrimSpace(flags.postedAt),
			}
			if flags.parent > 0 {
				parent := flags.parent
				in.ParentID = &parent
			}

			post, err := a.client.CreatePost(ctx, in)
			if err != nil {
				return explainAPIError(err)
			}
			cmd.Printf("Created post %d (%s)\n", post.ID, post.ExternalURL)
			return nil
		},
	}

	flags.register(cmd, true)
	return cmd
}

// NewPostsEditCmd creates the posts edit command.
func NewPostsEditCmd() *cobra.Command {
	var flags postFormFlags

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a post's caption, translation, media or date (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("post", args[0])
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

			in := archive.PostInput{}
			changed := 0
			set := func(name string, dst **string, v string) {
				if cmd.Flags().Changed(name) {
					s := strings.TrimSpace(v)
					*dst = &s
					changed++
				}
			}
			set("caption", &in.Caption, flags.caption)
			set("translation", &in.CaptionTranslation, flags.translation)
			set("media-url", &in.MediaURL, flags.mediaURL)
			if cmd.Flags().Changed("posted-at") {
				in.PostedAt = strings.TrimSpace(flags.postedAt)
				changed++
			}
			if changed == 0 {
				return fmt.Errorf("%w: nothing to change; pass at least one field flag", archive.ErrInvalidInput)
			}

			post, err := a.client.UpdatePost(cmd.Context(), id, in)
			if err != nil {
				return explainAPIError(err)
			}
			cmd.Printf("Updated post %d\n", post.ID)
			return nil
		},
	}

	flags.register(cmd, false)
	return cmd
}

// NewPostsDeleteCmd creates the posts delete command.
func NewPostsDeleteCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a post (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("post", args[0])
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
			if err = confirmDestructive(cmd, force, fmt.Sprintf("Delete post %d?", id)); err != nil {
				return err
			}

			if err = a.client.DeletePost(cmd.Context(), id); err != nil {
				return explainAPIError(err)
			}
			cmd.Printf("Deleted post %d\n", id)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "delete without asking")
	return cmd
}

// replyFlags are the fields of an Instagram reply.
type replyFlags struct {
	author      string
	caption     string
	translation string
	mediaURL    string
	date        string
}

// NewPostsReplyCmd creates the posts reply command, which stores an Instagram
// reply and its optional translation under a post.
func NewPostsReplyCmd() *cobra.Command {
	var flags replyFlags

	cmd := &cobra.Command{
		Use:   "reply <post-id>",
		Short: "Add an Instagram reply and its translation to a post (admin)",
		Example: `  archivectl posts reply 42 --author Mim --caption "ขอบคุณค่ะ" \
    --translation "thank you" --date 2024-05-01T21:00:00`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			postID, err := parseID("post", args[0])
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
			authorID, err := resolveAuthor(ctx, a.client, flags.author)
			if err != nil {
				return explainAPIError(err)
			}

			pair, err := a.client.CreateReplyPair(ctx, archive.ReplyInput{
				PostID:      postID,
				AuthorID:    authorID,
				Caption:     flags.caption,
				Translation: flags.translation,
				MediaURL:    flags.mediaURL,
				PostedAt:    flags.date,
			})
			if err != nil {
				return explainAPIError(err)
			}

			cmd.Printf("Added reply %d to post %d", pair.Main.ID, postID)
			if pair.Translation != nil {
				cmd.Printf(" with translation %d", pair.Translation.ID)
			}
			cmd.Println()
			return nil
		},
	}

	cmd.Flags().StringVar(&flags.author, "author", "", "author name; registered when unknown (required)")
	cmd.Flags().StringVar(&flags.caption, "caption", "", "reply text (required)")
	cmd.Flags().StringVar(&flags.translation, "translation", "", "English translation")
	cmd.Flags().StringVar(&flags.mediaURL, "media-url", "", "archived media URL")
	cmd.Flags().StringVar(&flags.date, "date", "", "when the reply was posted (required)")
	return cmd
}

// NewPostsReplyEditCmd creates the command that edits a reply and its translation.
func NewPostsReplyEditCmd() *cobra.Command {
	var caption, translation string

	cmd := &cobra.Command{
		Use:   "reply-edit <comment-id>",
		Short: "Edit an Instagram reply and its translation (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("comment", args[0])
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

			in := archive.TextPairInput{Caption: caption, Translation: translation}
			if err = a.client.UpdateTextPair(cmd.Context(), id, in); err != nil {
				return explainAPIError(err)
			}
			cmd.Printf("Updated reply %d\n", id)
			return nil
		},
	}

	cmd.Flags().StringVar(&caption, "caption", "", "reply text")
	cmd.Flags().StringVar(&translation, "translation", "", "English translation")
	return cmd
}

// NewPostsReplyDeleteCmd creates the command that deletes a reply and its translation.
func NewPostsReplyDeleteCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "reply-delete <comment-id>",
		Short: "Delete an Instagram reply and its translation (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("comment", args[0])
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
			if err = confirmDestructive(cmd, force, fmt.Sprintf("Delete reply %d and its translation?", id)); err != nil {
				return err
			}

			if err = a.client.DeleteTextPair(cmd.Context(), id); err != nil {
				return explainAPIError(err)
			}
			cmd.Printf("Deleted reply %d\n", id)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "delete without asking")
	return cmd
}


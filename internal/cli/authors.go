package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/viewmim/archivectl/internal/archive"
	"github.com/viewmim/archivectl/internal/cli/pagination"
)

// NewAuthorsListCmd creates the authors list command. Without --sort the
// configured pinned authors come first.
func NewAuthorsListCmd() *cobra.Command {
	var sortFlag, output string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List known authors",
		Example: `  archivectl authors list
  archivectl authors list --sort name:desc --output json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			format, err := parseOutputFormat(output, a.cfg.Output.DefaultFormat)
			if err != nil {
				return err
			}

			sorter := pagination.NewAuthorSorter()
			var field, order string
			if sortFlag != "" {
				if field, order, err = pagination.ParseSort(sortFlag); err != nil {
					return err
				}
				if !sorter.IsValidField(field) {
					return fmt.Errorf("invalid sort field %q: valid fields are %s",
						field, strings.Join(sorter.GetValidFields(), ", "))
				}
			}

			authors, err := a.client.ListAuthors(cmd.Context())
			if err != nil {
				return err
			}
			if field != "" {
				authors = sorter.Sort(authors, field, order)
			} else {
				authors = archive.OrderAuthors(authors, a.cfg.Display.PinnedAuthors)
			}

			out := cmd.OutOrStdout()
			switch format {
			case OutputJSON:
				return writeJSON(out, authors)
			case OutputNDJSON:
				return writeNDJSON(out, authors)
			}

			tw := tabwriter.NewWriter(out, 0, 0, tabPadding, ' ', 0)
			fmt.Fprintln(tw, "ID\tName\tPhoto")
			fmt.Fprintln(tw, "--\t----\t-----")
			for _, au := range authors {
				fmt.Fprintf(tw, "%d\t%s\t%s\n", au.ID, au.Name, orDash(au.ProfilePhotoURL))
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVar(&sortFlag, "sort", "", "sort by field[:asc|desc]; fields: id, name")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output format: table, json or ndjson")
	return cmd
}

// NewAuthorsEnsureCmd creates the command that registers an author by name.
func NewAuthorsEnsureCmd() *cobra.Command {
	var photoURL string

	cmd := &cobra.Command{
		Use:   "ensure <name>",
		Short: "Register an author, or show the existing one with that name (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			if err = a.requireAdmin(); err != nil {
				return err
			}

			author, err := a.client.EnsureAuthor(cmd.Context(), archive.AuthorInput{
				Name:            args[0],
				ProfilePhotoURL: archive.OptionalString(photoURL),
			})
			if err != nil {
				return explainAPIError(err)
			}
			cmd.Printf("Author %d: %s\n", author.ID, author.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&photoURL, "photo-url", "", "profile photo URL")
	return cmd
}

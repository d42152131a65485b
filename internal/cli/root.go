package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/viewmim/archivectl/internal/config"
	"github.com/viewmim/archivectl/internal/logging"
)

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// NewRootCmd creates the root Cobra command for the archivectl CLI.
// It loads configuration, wires logging and tracing, and registers the
// posts, events, authors, auth, browse and config commands.
func NewRootCmd(ver string) *cobra.Command {
	var (
		logResult  *logging.LogPathResult
		configPath string
		apiURL     string
	)

	cmd := &cobra.Command{
		Use:           "archivectl",
		Short:         "Browse and curate the social-media archive",
		Long:          "archivectl: page through archived posts and events, and manage them with an admin login",
		Version:       ver,
		Example:       rootCmdExample,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				if cmd.Annotations[annotationLenientConfig] == "" {
					return fmt.Errorf("loading configuration: %w", err)
				}
				cfg = config.New()
			}
			if strings.TrimSpace(apiURL) != "" {
				cfg.API.BaseURL = strings.TrimSpace(apiURL)
				if err = cfg.Validate(); err != nil {
					return err
				}
			}
			config.SetGlobalConfig(cfg)

			result := setupLogging(cmd)
			logResult = &result
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return cleanupLogging(cmd, logResult)
		},
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.archivectl/config.yaml)")
	cmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "archive API base URL (overrides config and ARCHIVECTL_API_URL)")

	cmd.AddCommand(
		newPostsCmd(),
		newEventsCmd(),
		newAuthorsCmd(),
		NewLoginCmd(),
		NewLogoutCmd(),
		NewWhoamiCmd(),
		newBrowseCmd(),
		newConfigCmd(),
	)

	return cmd
}

const rootCmdExample = `  # Show the newest posts
  archivectl posts list

  # Jump to page 40 of Instagram posts; lands on the last page if there are fewer
  archivectl posts list --platform ig --jump 40

  # Show a post with its comments and reply thread
  archivectl posts show 123

  # Events tagged "fanmeet", oldest first, as JSON
  archivectl events list --tag fanmeet --sort oldest --output json

  # Browse posts interactively
  archivectl browse posts

  # Log in as an administrator to create and edit entries
  archivectl login --username admin

  # Initialize configuration
  archivectl config init`

// newPostsCmd creates the posts command group.
func newPostsCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "posts", Short: "List, show and manage archived posts"}
	cmd.AddCommand(
		NewPostsListCmd(), NewPostsShowCmd(), NewPostsCreateCmd(), NewPostsEditCmd(),
		NewPostsDeleteCmd(), NewPostsReplyCmd(), NewPostsReplyEditCmd(), NewPostsReplyDeleteCmd(),
	)
	return cmd
}

// newEventsCmd creates the events command group.
func newEventsCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "events", Short: "List, show and manage archived events"}
	cmd.AddCommand(
		NewEventsListCmd(), NewEventsShowCmd(), NewEventsCreateCmd(),
		NewEventsEditCmd(), NewEventsDeleteCmd(),
	)
	return cmd
}

// newAuthorsCmd creates the authors command group.
func newAuthorsCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "authors", Short: "List and register authors"}
	cmd.AddCommand(NewAuthorsListCmd(), NewAuthorsEnsureCmd())
	return cmd
}

// newBrowseCmd creates the interactive browse command group.
func newBrowseCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "browse", Short: "Browse timelines interactively"}
	cmd.AddCommand(NewBrowsePostsCmd(), NewBrowseEventsCmd())
	return cmd
}

// newConfigCmd creates the config command group.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Configuration management commands"}
	cmd.AddCommand(NewConfigInitCmd(), NewConfigShowCmd(), NewConfigValidateCmd())
	return cmd
}

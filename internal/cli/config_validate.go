package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/viewmim/archivectl/internal/config"
)

// annotationLenientConfig marks commands that must run even when the
// configuration does not load.
const annotationLenientConfig = "archivectl/lenient-config"

// NewConfigValidateCmd creates the config validate command for validating configuration.
func NewConfigValidateCmd() *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		Long: `Validates the configuration file at ~/.archivectl/config.yaml, with
environment overrides applied, for syntax and semantic correctness.

This includes:
- YAML syntax of every section
- API base URL scheme and pacing limits
- Page size, sort order and output format`,
		Example: `  # Validate current configuration
  archivectl config validate

  # Validate and show detailed information
  archivectl config validate --verbose`,
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationLenientConfig: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigValidate(cmd, verbose)
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show detailed validation information")

	return cmd
}

// runConfigValidate executes the configuration validation logic.
func runConfigValidate(cmd *cobra.Command, verbose bool) error {
	path, _ := cmd.Flags().GetString("config")

	cfg, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	cmd.Printf("Configuration is valid\n")

	if verbose {
		printVerboseDetails(cmd, cfg)
	}

	return nil
}

// printVerboseDetails prints detailed configuration information.
func printVerboseDetails(cmd *cobra.Command, cfg *config.Config) {
	cmd.Println()
	cmd.Println("Configuration details:")
	if p := cfg.Path(); p != "" {
		cmd.Printf("  Config file: %s\n", p)
	} else {
		cmd.Println("  Config file: none (defaults)")
	}
	cmd.Printf("  API: %s (timeout %s, %.1f req/s, burst %d)\n",
		cfg.API.BaseURL, cfg.API.Timeout, cfg.API.RequestsPerSecond, cfg.API.Burst)
	cmd.Printf("  Page size: %d, sort: %s\n", cfg.Pagination.PageSize, cfg.Pagination.Sort)
	cmd.Printf("  Output format: %s\n", cfg.Output.DefaultFormat)
	cmd.Printf("  Logging level: %s\n", cfg.Logging.Level)
	cmd.Printf("  Log file: %s\n", orDash(cfg.Logging.File))

	printAuthorDetails(cmd, cfg)
}

// printAuthorDetails prints the pinned author order.
func printAuthorDetails(cmd *cobra.Command, cfg *config.Config) {
	if len(cfg.Display.PinnedAuthors) == 0 {
		cmd.Println("  No pinned authors")
		return
	}
	cmd.Printf("  Pinned authors: %s\n", strings.Join(cfg.Display.PinnedAuthors, ", "))
}

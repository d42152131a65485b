package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// ErrConfirmationRequired is returned when a destructive command cannot ask
// for confirmation and --force was not given.
var ErrConfirmationRequired = errors.New("refusing to continue without confirmation: use --force on non-interactive input")

// ErrAborted is returned when the user declines a confirmation prompt.
var ErrAborted = errors.New("aborted")

// PromptResult contains the result of a user prompt interaction.
type PromptResult struct {
	// Accepted is true if the user accepted the prompt (typed "y" or "yes")
	Accepted bool
	// Skipped is true if no prompt was shown because input is not interactive
	Skipped bool
	// Cancelled is true if reading the answer failed
	Cancelled bool
}

// Confirm asks a yes/no question. It returns immediately with Skipped=true
// when interactive is false.
//
// The prompt defaults to "No" when the user presses Enter without input.
// Valid inputs: "y", "Y", "yes", "Yes", "YES" for acceptance; anything else declines.
func Confirm(writer io.Writer, reader io.Reader, interactive bool, question string) PromptResult {
	if !interactive {
		return PromptResult{Skipped: true}
	}

	fmt.Fprintf(writer, "? %s [y/N] ", question)

	scanner := bufio.NewScanner(reader)
	if !scanner.Scan() {
		if scanner.Err() != nil {
			return PromptResult{Cancelled: true}
		}
		// EOF without error - treat as decline (user pressed Ctrl+D)
		return PromptResult{}
	}

	switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
	case "y", "yes":
		return PromptResult{Accepted: true}
	default:
		return PromptResult{}
	}
}

// interactiveInput reports whether the command reads from a terminal.
// Commands whose input was redirected (including in tests) are not interactive.
func interactiveInput(cmd *cobra.Command) bool {
	f, ok := cmd.InOrStdin().(*os.File)
	return ok && isTerminal(f)
}

// confirmDestructive returns nil when the action may proceed: --force was
// given or the user accepted the prompt.
func confirmDestructive(cmd *cobra.Command, force bool, question string) error {
	if force {
		return nil
	}

	result := Confirm(cmd.ErrOrStderr(), cmd.InOrStdin(), interactiveInput(cmd), question)
	switch {
	case result.Accepted:
		return nil
	case result.Skipped:
		return ErrConfirmationRequired
	default:
		return ErrAborted
	}
}

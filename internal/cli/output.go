package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/viewmim/archivectl/internal/cli/pagination"
	"github.com/viewmim/archivectl/internal/tui"
)

// OutputFormat selects how command results are written.
type OutputFormat string

// Supported output formats.
const (
	OutputTable  OutputFormat = "table"
	OutputJSON   OutputFormat = "json"
	OutputNDJSON OutputFormat = "ndjson"
)

// tabPadding is the column gap of table output.
const tabPadding = 2

// parseOutputFormat resolves the --output flag, falling back to the configured default.
func parseOutputFormat(flag, fallback string) (OutputFormat, error) {
	v := strings.ToLower(strings.TrimSpace(flag))
	if v == "" {
		v = strings.ToLower(strings.TrimSpace(fallback))
	}
	switch OutputFormat(v) {
	case OutputTable, "":
		return OutputTable, nil
	case OutputJSON:
		return OutputJSON, nil
	case OutputNDJSON:
		return OutputNDJSON, nil
	default:
		return "", fmt.Errorf("unsupported output format: %s (use table, json or ndjson)", flag)
	}
}

// writeJSON writes v as indented JSON.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding JSON output: %w", err)
	}
	return nil
}

// writeNDJSON writes one JSON document per item.
func writeNDJSON[T any](w io.Writer, items []T) error {
	enc := json.NewEncoder(w)
	for _, item := range items {
		if err := enc.Encode(item); err != nil {
			return fmt.Errorf("encoding NDJSON output: %w", err)
		}
	}
	return nil
}

// listResult is the JSON shape of a paged listing.
type listResult[T any] struct {
	Items      []T             `json:"items"`
	Pagination pagination.Meta `json:"pagination"`
}

// writePageFooter prints the position line under a table.
func writePageFooter(w io.Writer, meta pagination.Meta) {
	label := tui.PageLabel(stateOf(meta))
	switch {
	case meta.Clamped():
		fmt.Fprintf(w, "\n%s (page %d is past the end)\n", label, meta.RequestedPage)
	case meta.ItemCount == 0:
		fmt.Fprintf(w, "\n%s: no items\n", label)
	default:
		fmt.Fprintf(w, "\n%s\n", label)
	}
}

// orDash returns "-" for blank cells.
func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

// cell flattens s to one line and bounds its width.
func cell(s string, limit int) string {
	s = strings.Join(strings.Fields(s), " ")
	runes := []rune(s)
	if len(runes) > limit {
		return string(runes[:limit-1]) + "…"
	}
	return orDash(s)
}

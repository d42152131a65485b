// Package detail loads the data behind a detail pane on demand.
//
// A pane is opened for one key (a post or event ID). The load runs as a
// tea.Cmd, the pane shows a loading state meanwhile, and a failed load stays
// visible with its error until the user retries with 'r'. Results that arrive
// after the pane moved to another key, or was closed, are ignored.
package detail

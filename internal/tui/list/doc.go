// Package listview provides the in-page selection list used by the timeline
// views. It renders only the rows inside the viewport and handles up/down,
// j/k, pgup/pgdown and home/end navigation.
package listview

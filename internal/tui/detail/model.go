package detail

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

// State is the loading state of a detail pane.
type State int

// Detail pane states.
const (
	StateIdle State = iota
	StateLoading
	StateLoaded
	StateError
)

// LoadFunc fetches the detail data for a key.
type LoadFunc[K comparable, D any] func(ctx context.Context, key K) (D, error)

// LoadedMsg carries the outcome of a load. Seq ties it to the request that
// produced it so stale results can be ignored.
type LoadedMsg[K comparable, D any] struct {
	Key  K
	Seq  uint64
	Data D
	Err  error
}

// Model loads detail data on demand for the selected item and keeps the
// last result. A failed load stays on screen until Retry.
type Model[K comparable, D any] struct {
	load LoadFunc[K, D]

	state State
	key   K
	seq   uint64
	data  D
	err   error
}

// New creates an idle detail model.
func New[K comparable, D any](load LoadFunc[K, D]) Model[K, D] {
	return Model[K, D]{load: load}
}

// Open starts loading key. The returned model is in StateLoading.
func (m Model[K, D]) Open(ctx context.Context, key K) (Model[K, D], tea.Cmd) {
	m.key = key
	m.seq++
	m.state = StateLoading
	var zero D
	m.data = zero
	m.err = nil

	seq, load := m.seq, m.load
	return m, func() tea.Msg {
		data, err := load(ctx, key)
		return LoadedMsg[K, D]{Key: key, Seq: seq, Data: data, Err: err}
	}
}

// Retry reloads the current key.
func (m Model[K, D]) Retry(ctx context.Context) (Model[K, D], tea.Cmd) {
	return m.Open(ctx, m.key)
}

// Close returns the model to StateIdle and drops any pending result.
func (m Model[K, D]) Close() Model[K, D] {
	m.seq++
	m.state = StateIdle
	return m
}

// Update applies a LoadedMsg for the pending request. Other messages and
// stale results leave the model unchanged.
func (m Model[K, D]) Update(msg tea.Msg) Model[K, D] {
	loaded, ok := msg.(LoadedMsg[K, D])
	if !ok || loaded.Seq != m.seq || m.state != StateLoading {
		return m
	}
	if loaded.Err != nil {
		m.state = StateError
		m.err = loaded.Err
		return m
	}
	m.state = StateLoaded
	m.data = loaded.Data
	return m
}

// State returns the loading state.
func (m Model[K, D]) State() State { return m.state }

// Key returns the key being shown.
func (m Model[K, D]) Key() K { return m.key }

// Data returns the loaded data.
func (m Model[K, D]) Data() D { return m.data }

// Err returns the last load error.
func (m Model[K, D]) Err() error { return m.err }

// IsOpen reports whether the pane is showing something.
func (m Model[K, D]) IsOpen() bool { return m.state != StateIdle }

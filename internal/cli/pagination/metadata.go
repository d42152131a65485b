package pagination

import "github.com/viewmim/archivectl/internal/pagecursor"

// Meta describes where a list command landed.
type Meta struct {
	CurrentPage int `json:"current_page" yaml:"current_page"`
	PageSize    int `json:"page_size"    yaml:"page_size"`

	// LastPage is the discovered last page, 0 while unknown.
	LastPage int `json:"last_page,omitempty" yaml:"last_page,omitempty"`

	// RequestedPage is the page asked for; it differs from CurrentPage when
	// a jump landed on the last page.
	RequestedPage int  `json:"requested_page" yaml:"requested_page"`
	ItemCount     int  `json:"item_count"     yaml:"item_count"`
	HasPrevious   bool `json:"has_previous"   yaml:"has_previous"`
	HasNext       bool `json:"has_next"       yaml:"has_next"`
}

// NewMeta builds metadata from the cursor state after resolving requested.
func NewMeta[T any](state pagecursor.State, page pagecursor.Page[T], requested, pageSize int) Meta {
	return Meta{
		CurrentPage:   state.CurrentPage,
		PageSize:      pageSize,
		LastPage:      state.LastPage,
		RequestedPage: requested,
		ItemCount:     page.Len(),
		HasPrevious:   state.HasPrev(),
		HasNext:       state.HasNext() && page.Full,
	}
}

// Clamped reports whether the request was moved to the last page.
func (m Meta) Clamped() bool {
	return m.RequestedPage > m.CurrentPage
}

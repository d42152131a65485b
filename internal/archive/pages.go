package archive

import (
	"context"

	"github.com/viewmim/archivectl/internal/media"
	"github.com/viewmim/archivectl/internal/pagecursor"
)

// Filter names understood by the page fetchers.
const (
	FilterPlatform = "platform"
	FilterKeyword  = "keyword"
	FilterTag      = "tag"
)

// PostPages serves timeline pages of top-level posts to a pagecursor.Cursor.
// Items carry the post only; comments and threads are loaded with
// EnrichTimeline once a page is resolved.
type PostPages struct {
	Client *Client
}

// FetchPage implements pagecursor.Fetcher.
func (p PostPages) FetchPage(ctx context.Context, page int, q pagecursor.Query) ([]TimelinePost, error) {
	filter := PostFilter{
		Platform: media.Platform(q.Filter(FilterPlatform)),
		Sort:     q.Sort,
	}

	posts, err := p.Client.ListPosts(ctx, filter, q.PageSize, q.Offset(page))
	if err != nil {
		return nil, err
	}

	out := make([]TimelinePost, len(posts))
	for i, post := range posts {
		out[i].Post = post
	}
	return out, nil
}

// EventPages serves event pages to a pagecursor.Cursor.
type EventPages struct {
	Client *Client
}

// FetchPage implements pagecursor.Fetcher.
func (e EventPages) FetchPage(ctx context.Context, page int, q pagecursor.Query) ([]Event, error) {
	filter := EventFilter{
		Keyword: q.Filter(FilterKeyword),
		Tag:     q.Filter(FilterTag),
		Sort:    q.Sort,
	}
	return e.Client.ListEvents(ctx, filter, q.PageSize, q.Offset(page))
}

var (
	_ pagecursor.Fetcher[TimelinePost] = PostPages{}
	_ pagecursor.Fetcher[Event]        = EventPages{}
)

package archive

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// enrichConcurrency bounds the per-page fan-out of comment and thread lookups.
const enrichConcurrency = 4

// EnrichPosts loads comments and the reply thread of every post concurrently.
// The result keeps the input order. The first failure cancels the rest.
func (c *Client) EnrichPosts(ctx context.Context, posts []Post) ([]TimelinePost, error) {
	out := make([]TimelinePost, len(posts))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(enrichConcurrency)

	for i, p := range posts {
		out[i].Post = p
		g.Go(func() error {
			comments, err := c.CommentsByPost(gctx, p.ID)
			if err != nil {
				return err
			}
			out[i].Comments = comments
			return nil
		})
		g.Go(func() error {
			replies, err := c.PostThread(gctx, p.ID)
			if err != nil {
				return err
			}
			out[i].Replies = replies
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// EnrichTimeline loads comments and threads for items already on screen.
func (c *Client) EnrichTimeline(ctx context.Context, items []TimelinePost) ([]TimelinePost, error) {
	posts := make([]Post, len(items))
	for i, it := range items {
		posts[i] = it.Post
	}
	return c.EnrichPosts(ctx, posts)
}

// LoadTimelinePost fetches one post with its comments and reply thread.
func (c *Client) LoadTimelinePost(ctx context.Context, id int) (TimelinePost, error) {
	var (
		detail  PostDetail
		replies []Post
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		detail, err = c.GetPost(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		replies, err = c.PostThread(gctx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		return TimelinePost{}, err
	}

	return TimelinePost{Post: detail.Post, Comments: detail.Comments, Replies: replies}, nil
}

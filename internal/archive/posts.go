package archive

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/viewmim/archivectl/internal/media"
)

// Sort orders accepted by the list endpoints.
const (
	SortNewest = "newest"
	SortOldest = "oldest"
)

// PostFilter narrows ListPosts.
type PostFilter struct {
	// Platform restricts results to one network; empty means all.
	Platform media.Platform
	Sort     string
}

// ListPosts returns one window of top-level posts.
func (c *Client) ListPosts(ctx context.Context, filter PostFilter, limit, offset int) ([]Post, error) {
	q := pagingQuery(limit, offset, filter.Sort)
	if filter.Platform != "" {
		q.Set("platform", filter.Platform.String())
	}

	var posts []Post
	if err := c.getJSON(ctx, "/posts", q, &posts); err != nil {
		return nil, fmt.Errorf("listing posts: %w", err)
	}
	return posts, nil
}

// GetPost returns a post together with its comments.
func (c *Client) GetPost(ctx context.Context, id int) (PostDetail, error) {
	var detail PostDetail
	if err := c.getJSON(ctx, fmt.Sprintf("/posts/%d", id), nil, &detail); err != nil {
		return PostDetail{}, fmt.Errorf("getting post %d: %w", id, err)
	}
	return detail, nil
}

// PostThread returns the replies posted under a post.
func (c *Client) PostThread(ctx context.Context, id int) ([]Post, error) {
	if c.threads != nil {
		if cached, ok := c.threads.Get(id); ok {
			return cached, nil
		}
	}

	var replies []Post
	if err := c.getJSON(ctx, fmt.Sprintf("/posts/%d/thread", id), nil, &replies); err != nil {
		return nil, fmt.Errorf("getting thread of post %d: %w", id, err)
	}

	if c.threads != nil {
		c.threads.Add(id, replies)
	}
	return replies, nil
}

// CreatePost archives a new post or reply. The URL is normalized for the
// platform and the external ID derived from it when not set.
func (c *Client) CreatePost(ctx context.Context, in PostInput) (Post, error) {
	if in.Platform == "" || strings.TrimSpace(in.ExternalURL) == "" {
		return Post{}, fmt.Errorf("%w: platform and external URL are required", ErrInvalidInput)
	}
	if in.AuthorID == 0 {
		return Post{}, fmt.Errorf("%w: author is required", ErrInvalidInput)
	}

	in.ExternalURL = media.NormalizeURL(in.Platform, in.ExternalURL)
	if in.ExternalID == "" {
		in.ExternalID = media.ExtractExternalID(in.ExternalURL, in.Platform)
	}

	var created Post
	if err := c.doJSON(ctx, http.MethodPost, "/posts/", nil, in, &created); err != nil {
		return Post{}, fmt.Errorf("creating post: %w", err)
	}
	if in.ParentID != nil {
		c.forget(*in.ParentID)
	}
	return created, nil
}

// UpdatePost patches the fields set in in.
func (c *Client) UpdatePost(ctx context.Context, id int, in PostInput) (Post, error) {
	if in.ExternalURL != "" && in.Platform != "" {
		in.ExternalURL = media.NormalizeURL(in.Platform, in.ExternalURL)
	}

	var updated Post
	if err := c.doJSON(ctx, http.MethodPatch, fmt.Sprintf("/posts/%d", id), nil, in, &updated); err != nil {
		return Post{}, fmt.Errorf("updating post %d: %w", id, err)
	}
	c.forget(id)
	if updated.ParentID != nil {
		c.forget(*updated.ParentID)
	}
	return updated, nil
}

// DeletePost removes a post. Its cached thread and comments are dropped.
func (c *Client) DeletePost(ctx context.Context, id int) error {
	if err := c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/posts/%d", id), nil, nil, nil); err != nil {
		return fmt.Errorf("deleting post %d: %w", id, err)
	}
	c.forget(id)
	// The deleted post may have been a reply in some other cached thread.
	if c.threads != nil {
		c.threads.Purge()
	}
	return nil
}

// forget drops memoized lookups for a post.
func (c *Client) forget(postID int) {
	if c.comments != nil {
		c.comments.Remove(postID)
	}
	if c.threads != nil {
		c.threads.Remove(postID)
	}
}

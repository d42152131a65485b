package archive

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

// CommentsByPost returns the comments stored for a post.
func (c *Client) CommentsByPost(ctx context.Context, postID int) ([]Text, error) {
	if c.comments != nil {
		if cached, ok := c.comments.Get(postID); ok {
			return cached, nil
		}
	}

	var texts []Text
	if err := c.getJSON(ctx, fmt.Sprintf("/texts/by_post/%d", postID), nil, &texts); err != nil {
		return nil, fmt.Errorf("getting comments of post %d: %w", postID, err)
	}

	if c.comments != nil {
		c.comments.Add(postID, texts)
	}
	return texts, nil
}

// CreateText stores a comment on a post.
func (c *Client) CreateText(ctx context.Context, in TextInput) (Text, error) {
	if in.PostID == 0 || strings.TrimSpace(in.Content) == "" {
		return Text{}, fmt.Errorf("%w: post and content are required", ErrInvalidInput)
	}
	if in.Source == "" {
		in.Source = "manual"
	}

	var created Text
	if err := c.doJSON(ctx, http.MethodPost, "/texts/", nil, in, &created); err != nil {
		return Text{}, fmt.Errorf("creating comment on post %d: %w", in.PostID, err)
	}
	c.forget(in.PostID)
	return created, nil
}

// ReplyInput describes an Instagram reply and its optional translation.
type ReplyInput struct {
	PostID      int
	AuthorID    int
	Caption     string
	Translation string
	MediaURL    string
	PostedAt    string
}

// CreateReplyPair stores an Instagram reply and, when given, its English
// translation linked to it.
func (c *Client) CreateReplyPair(ctx context.Context, in ReplyInput) (ReplyPair, error) {
	if strings.TrimSpace(in.PostedAt) == "" {
		return ReplyPair{}, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	main, err := c.CreateText(ctx, TextInput{
		PostID:   in.PostID,
		Type:     TextTypeReply,
		Language: "th",
		Content:  in.Caption,
		MediaURL: OptionalString(in.MediaURL),
		AuthorID: in.AuthorID,
		PostedAt: in.PostedAt,
	})
	if err != nil {
		return ReplyPair{}, err
	}

	pair := ReplyPair{Main: main}
	if strings.TrimSpace(in.Translation) == "" {
		return pair, nil
	}

	parentID := main.ID
	tr, err := c.CreateText(ctx, TextInput{
		PostID:          in.PostID,
		Type:            TextTypeTranslation,
		Language:        "en",
		Content:         in.Translation,
		AuthorID:        in.AuthorID,
		PostedAt:        in.PostedAt,
		ParentCommentID: &parentID,
	})
	if err != nil {
		return pair, err
	}
	pair.Translation = &tr
	return pair, nil
}

// UpdateTextPair edits a reply and its translation together.
func (c *Client) UpdateTextPair(ctx context.Context, mainID int, in TextPairInput) error {
	if err := c.doJSON(ctx, http.MethodPatch, fmt.Sprintf("/texts/pair/%d", mainID), nil, in, nil); err != nil {
		return fmt.Errorf("updating comment pair %d: %w", mainID, err)
	}
	c.purgeComments()
	return nil
}

// DeleteTextPair removes a reply and its translation.
func (c *Client) DeleteTextPair(ctx context.Context, mainID int) error {
	if err := c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/texts/pair/%d", mainID), nil, nil, nil); err != nil {
		return fmt.Errorf("deleting comment pair %d: %w", mainID, err)
	}
	c.purgeComments()
	return nil
}

// purgeComments drops every memoized comment list; pair endpoints do not
// report which post they belong to.
func (c *Client) purgeComments() {
	if c.comments != nil {
		c.comments.Purge()
	}
}

package archive

import (
	"strings"

	"github.com/viewmim/archivectl/internal/media"
)

// Comment types stored alongside Instagram posts.
const (
	TextTypeReply       = "ig-reply"
	TextTypeTranslation = "ig-translation"
)

// Author is a person whose interactions are archived.
type Author struct {
	ID              int    `json:"id"`
	Name            string `json:"name"`
	ProfilePhotoURL string `json:"profile_photo_url,omitempty"`
}

// Post is an archived social-media post. Replies are posts with ParentID set.
type Post struct {
	ID                 int            `json:"id"`
	Platform           media.Platform `json:"platform"`
	ExternalURL        string         `json:"external_url"`
	ExternalID         string         `json:"external_id"`
	AuthorID           int            `json:"author_id,omitempty"`
	AuthorName         string         `json:"author_name,omitempty"`
	AuthorPhoto        string         `json:"author_photo,omitempty"`
	Caption            string         `json:"caption,omitempty"`
	CaptionTranslation string         `json:"caption_translation,omitempty"`
	MediaURL           string         `json:"media_url,omitempty"`
	PostedAt           string         `json:"posted_at,omitempty"`
	ParentID           *int           `json:"parent_id,omitempty"`
}

// IsReply reports whether the post belongs to another post's thread.
func (p Post) IsReply() bool {
	return p.ParentID != nil
}

// Text is a comment attached to a post, such as an Instagram reply or its translation.
type Text struct {
	ID              int    `json:"id"`
	PostID          int    `json:"post_id"`
	Type            string `json:"type"`
	Language        string `json:"language,omitempty"`
	Content         string `json:"content"`
	MediaURL        string `json:"media_url,omitempty"`
	AuthorID        int    `json:"author_id,omitempty"`
	AuthorName      string `json:"author_name,omitempty"`
	AuthorPhoto     string `json:"author_photo,omitempty"`
	PostedAt        string `json:"posted_at,omitempty"`
	Source          string `json:"source,omitempty"`
	ParentCommentID *int   `json:"parent_comment_id,omitempty"`
}

// PostDetail is the response of GET /posts/:id.
type PostDetail struct {
	Post     Post   `json:"post"`
	Comments []Text `json:"comments"`
}

// Event is an archived appearance such as a fan meeting or a live broadcast.
type Event struct {
	ID              int      `json:"id"`
	Name            string   `json:"name"`
	Location        string   `json:"location,omitempty"`
	Keyword         string   `json:"keyword,omitempty"`
	Tags            []string `json:"tags,omitempty"`
	MediaURL        string   `json:"media_url,omitempty"`
	EventDate       string   `json:"event_date,omitempty"`
	AnnouncementURL string   `json:"announcement_url,omitempty"`
	LiveURL         string   `json:"live_url,omitempty"`
	Authors         []Author `json:"authors,omitempty"`
}

// Token is the response of POST /auth/login.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// TimelinePost is a post with its comments and reply thread loaded.
type TimelinePost struct {
	Post
	Comments []Text `json:"comments"`
	Replies  []Post `json:"replies"`
}

// PostInput is the payload for creating or updating a post. Nil fields are
// omitted from updates and sent as null on create.
type PostInput struct {
	Platform           media.Platform `json:"platform,omitempty"`
	ExternalURL        string         `json:"external_url,omitempty"`
	ExternalID         string         `json:"external_id,omitempty"`
	AuthorID           int            `json:"author_id,omitempty"`
	Caption            *string        `json:"caption,omitempty"`
	CaptionTranslation *string        `json:"caption_translation,omitempty"`
	MediaURL           *string        `json:"media_url,omitempty"`
	PostedAt           string         `json:"posted_at,omitempty"`
	ParentID           *int           `json:"parent_id,omitempty"`
}

// TextInput is the payload for POST /texts/.
type TextInput struct {
	PostID          int     `json:"post_id"`
	Type            string  `json:"type"`
	Language        string  `json:"language"`
	Content         string  `json:"content"`
	MediaURL        *string `json:"media_url"`
	AuthorID        int     `json:"author_id"`
	PostedAt        string  `json:"posted_at"`
	Source          string  `json:"source"`
	ParentCommentID *int    `json:"parent_comment_id"`
}

// TextPairInput is the payload for PATCH /texts/pair/:id.
type TextPairInput struct {
	Caption     string `json:"caption"`
	Translation string `json:"translation"`
}

// EventInput is the payload for creating or updating an event.
type EventInput struct {
	Name            string   `json:"name"`
	Location        *string  `json:"location"`
	Keyword         *string  `json:"keyword"`
	Tags            []string `json:"tags"`
	MediaURL        *string  `json:"media_url"`
	EventDate       *string  `json:"event_date"`
	AnnouncementURL *string  `json:"announcement_url"`
	LiveURL         *string  `json:"live_url"`
	AuthorIDs       []int    `json:"author_ids"`
}

// AuthorInput is the payload for POST /authors/ensure.
type AuthorInput struct {
	Name            string  `json:"name"`
	ProfilePhotoURL *string `json:"profile_photo_url"`
}

// OptionalString returns nil for blank input and a pointer to the trimmed value otherwise.
func OptionalString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

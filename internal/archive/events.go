package archive

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

// EventFilter narrows ListEvents.
type EventFilter struct {
	Keyword string
	Tag     string
	Sort    string
}

// ListEvents returns one window of events.
func (c *Client) ListEvents(ctx context.Context, filter EventFilter, limit, offset int) ([]Event, error) {
	q := pagingQuery(limit, offset, filter.Sort)
	if kw := strings.TrimSpace(filter.Keyword); kw != "" {
		q.Set("keyword", kw)
	}
	if tag := strings.TrimSpace(filter.Tag); tag != "" {
		q.Set("tag", tag)
	}

	var events []Event
	if err := c.getJSON(ctx, "/events", q, &events); err != nil {
		return nil, fmt.Errorf("listing events: %w", err)
	}
	return events, nil
}

// GetEvent returns a single event.
func (c *Client) GetEvent(ctx context.Context, id int) (Event, error) {
	var resp struct {
		Event *Event `json:"event"`
	}
	if err := c.getJSON(ctx, fmt.Sprintf("/events/%d", id), nil, &resp); err != nil {
		return Event{}, fmt.Errorf("getting event %d: %w", id, err)
	}
	if resp.Event == nil {
		return Event{}, fmt.Errorf("getting event %d: %w", id, &APIError{
			StatusCode: http.StatusNotFound,
			Method:     http.MethodGet,
			Path:       fmt.Sprintf("/events/%d", id),
			Message:    "event not found",
		})
	}
	return *resp.Event, nil
}

// CreateEvent stores a new event.
func (c *Client) CreateEvent(ctx context.Context, in EventInput) (Event, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return Event{}, fmt.Errorf("%w: event name is required", ErrInvalidInput)
	}
	in.Tags = normalizeTags(in.Tags)

	var created Event
	if err := c.doJSON(ctx, http.MethodPost, "/events", nil, in, &created); err != nil {
		return Event{}, fmt.Errorf("creating event: %w", err)
	}
	return created, nil
}

// UpdateEvent replaces an event's fields.
func (c *Client) UpdateEvent(ctx context.Context, id int, in EventInput) (Event, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return Event{}, fmt.Errorf("%w: event name is required", ErrInvalidInput)
	}
	in.Tags = normalizeTags(in.Tags)

	var updated Event
	if err := c.doJSON(ctx, http.MethodPatch, fmt.Sprintf("/events/%d", id), nil, in, &updated); err != nil {
		return Event{}, fmt.Errorf("updating event %d: %w", id, err)
	}
	return updated, nil
}

// DeleteEvent removes an event.
func (c *Client) DeleteEvent(ctx context.Context, id int) error {
	if err := c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/events/%d", id), nil, nil, nil); err != nil {
		return fmt.Errorf("deleting event %d: %w", id, err)
	}
	return nil
}

// ParseTags splits a comma-separated tag list.
func ParseTags(s string) []string {
	return normalizeTags(strings.Split(s, ","))
}

// normalizeTags trims tags, drops blanks and duplicates, and never returns nil
// so the API receives [] rather than null.
func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

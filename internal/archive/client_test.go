package archive

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viewmim/archivectl/internal/media"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := New(Config{
		BaseURL:           srv.URL,
		Token:             "test-token",
		RequestsPerSecond: 1000,
		Burst:             100,
	})
	require.NoError(t, err)
	return c
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	assert.NoError(t, json.NewEncoder(w).Encode(v))
}

func TestNew(t *testing.T) {
	t.Run("requires base URL", func(t *testing.T) {
		_, err := New(Config{})
		require.ErrorIs(t, err, ErrNoBaseURL)
	})

	t.Run("rejects URL without scheme", func(t *testing.T) {
		_, err := New(Config{BaseURL: "api.example.com"})
		require.ErrorIs(t, err, ErrNoBaseURL)
	})

	t.Run("trims trailing slash", func(t *testing.T) {
		c, err := New(Config{BaseURL: "https://api.example.com/"})
		require.NoError(t, err)
		assert.Equal(t, "https://api.example.com", c.BaseURL())
	})
}

func TestClient_ListPosts(t *testing.T) {
	reqs := make(chan *http.Request, 1)
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqs <- r.Clone(context.Background())
		writeJSON(t, w, http.StatusOK, []Post{{ID: 7, Platform: media.Instagram}})
	}))

	posts, err := c.ListPosts(context.Background(), PostFilter{Platform: media.Instagram, Sort: SortOldest}, 10, 20)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, 7, posts[0].ID)

	gotReq := <-reqs
	assert.Equal(t, "/posts", gotReq.URL.Path)
	assert.Equal(t, "10", gotReq.URL.Query().Get("limit"))
	assert.Equal(t, "20", gotReq.URL.Query().Get("offset"))
	assert.Equal(t, "oldest", gotReq.URL.Query().Get("sort"))
	assert.Equal(t, "ig", gotReq.URL.Query().Get("platform"))
	assert.Equal(t, "Bearer test-token", gotReq.Header.Get("Authorization"))
	assert.NotEmpty(t, gotReq.Header.Get("X-Request-ID"))
}

func TestClient_ListPostsOmitsEmptyPlatform(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.False(t, r.URL.Query().Has("platform"))
		writeJSON(t, w, http.StatusOK, []Post{})
	}))

	posts, err := c.ListPosts(context.Background(), PostFilter{}, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, posts)
}

func TestClient_NoTokenSendsNoAuthorization(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		writeJSON(t, w, http.StatusOK, []Author{})
	}))
	c.SetToken("")

	_, err := c.ListAuthors(context.Background())
	require.NoError(t, err)
}

func TestClient_APIError(t *testing.T) {
	tests := []struct {
		name         string
		status       int
		body         string
		wantUnauth   bool
		wantNotFound bool
		wantMessage  string
	}{
		{"unauthorized with detail", http.StatusUnauthorized, `{"detail":"Not authenticated"}`, true, false, "Not authenticated"},
		{"forbidden", http.StatusForbidden, `{"detail":"Admins only"}`, true, false, "Admins only"},
		{"not found", http.StatusNotFound, `{"detail":"Post not found"}`, false, true, "Post not found"},
		{"validation detail list", http.StatusUnprocessableEntity, `{"detail":[{"msg":"bad"}]}`, false, false, `[{"msg":"bad"}]`},
		{"plain body", http.StatusInternalServerError, "boom", false, false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))

			_, err := c.GetPost(context.Background(), 3)
			require.Error(t, err)

			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, "/posts/3", apiErr.Path)
			assert.Equal(t, http.MethodGet, apiErr.Method)
			assert.Equal(t, tt.wantMessage, apiErr.Message)
			assert.NotEmpty(t, apiErr.RequestID)
			assert.Equal(t, tt.wantUnauth, errors.Is(err, ErrUnauthorized))
			assert.Equal(t, tt.wantNotFound, IsNotFound(err))
		})
	}
}

func TestClient_GetPost(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/posts/12", r.URL.Path)
		writeJSON(t, w, http.StatusOK, map[string]any{
			"post":     map[string]any{"id": 12, "platform": "x", "caption": "hello", "media_url": nil},
			"comments": []map[string]any{{"id": 1, "post_id": 12, "type": "ig-reply", "content": "hi"}},
		})
	}))

	detail, err := c.GetPost(context.Background(), 12)
	require.NoError(t, err)
	assert.Equal(t, 12, detail.Post.ID)
	assert.Equal(t, media.Twitter, detail.Post.Platform)
	assert.Equal(t, "hello", detail.Post.Caption)
	require.Len(t, detail.Comments, 1)
	assert.Equal(t, "hi", detail.Comments[0].Content)
}

func TestClient_GetEvent(t *testing.T) {
	t.Run("unwraps event envelope", func(t *testing.T) {
		c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(t, w, http.StatusOK, map[string]any{
				"event": map[string]any{"id": 4, "name": "Fan meeting", "tags": []string{"live"}},
			})
		}))

		ev, err := c.GetEvent(context.Background(), 4)
		require.NoError(t, err)
		assert.Equal(t, "Fan meeting", ev.Name)
		assert.Equal(t, []string{"live"}, ev.Tags)
	})

	t.Run("missing envelope is not found", func(t *testing.T) {
		c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(t, w, http.StatusOK, map[string]any{})
		}))

		_, err := c.GetEvent(context.Background(), 4)
		require.Error(t, err)
		assert.True(t, IsNotFound(err))
	})
}

func TestClient_CreatePost(t *testing.T) {
	t.Run("normalizes URL and derives external id", func(t *testing.T) {
		bodies := make(chan map[string]any, 1)
		c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/posts/", r.URL.Path)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			var body map[string]any
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			bodies <- body
			writeJSON(t, w, http.StatusOK, Post{ID: 99})
		}))

		caption := "hello"
		created, err := c.CreatePost(context.Background(), PostInput{
			Platform:    media.Twitter,
			ExternalURL: "https://x.com/viewmim/status/555?s=20",
			AuthorID:    2,
			Caption:     &caption,
		})
		require.NoError(t, err)
		assert.Equal(t, 99, created.ID)
		body := <-bodies
		assert.Equal(t, "https://twitter.com/viewmim/status/555", body["external_url"])
		assert.Equal(t, "555", body["external_id"])
		assert.Equal(t, "x", body["platform"])
		assert.NotContains(t, body, "media_url")
	})

	t.Run("rejects missing fields without a request", func(t *testing.T) {
		var calls atomic.Int32
		c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusOK)
		}))

		_, err := c.CreatePost(context.Background(), PostInput{Platform: media.Instagram})
		require.ErrorIs(t, err, ErrInvalidInput)
		_, err = c.CreatePost(context.Background(), PostInput{Platform: media.Instagram, ExternalURL: "https://instagram.com/p/x"})
		require.ErrorIs(t, err, ErrInvalidInput)
		assert.Zero(t, calls.Load())
	})
}

func TestClient_Login(t *testing.T) {
	t.Run("posts form credentials", func(t *testing.T) {
		c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/auth/login", r.URL.Path)
			assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
			assert.NoError(t, r.ParseForm())
			assert.Equal(t, "admin", r.PostForm.Get("username"))
			assert.Equal(t, "s3cret", r.PostForm.Get("password"))
			writeJSON(t, w, http.StatusOK, Token{AccessToken: "abc", TokenType: "bearer"})
		}))

		tok, err := c.Login(context.Background(), "admin", "s3cret")
		require.NoError(t, err)
		assert.Equal(t, "abc", tok.AccessToken)
	})

	t.Run("bad credentials", func(t *testing.T) {
		c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(t, w, http.StatusUnauthorized, map[string]string{"detail": "Incorrect username or password"})
		}))

		_, err := c.Login(context.Background(), "admin", "wrong")
		require.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("empty token", func(t *testing.T) {
		c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(t, w, http.StatusOK, Token{})
		}))

		_, err := c.Login(context.Background(), "admin", "pw")
		require.ErrorIs(t, err, ErrEmptyToken)
	})
}

func TestClient_ThreadMemo(t *testing.T) {
	var threadCalls atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("GET /posts/{id}/thread", func(w http.ResponseWriter, _ *http.Request) {
		threadCalls.Add(1)
		writeJSON(t, w, http.StatusOK, []Post{{ID: 50}})
	})
	mux.HandleFunc("POST /posts/", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(t, w, http.StatusOK, Post{ID: 51})
	})
	c := newTestClient(t, mux)
	ctx := context.Background()

	_, err := c.PostThread(ctx, 1)
	require.NoError(t, err)
	_, err = c.PostThread(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int32(1), threadCalls.Load(), "second lookup is memoized")

	parent := 1
	_, err = c.CreatePost(ctx, PostInput{
		Platform:    media.Twitter,
		ExternalURL: "https://x.com/a/status/9",
		AuthorID:    1,
		ParentID:    &parent,
	})
	require.NoError(t, err)

	_, err = c.PostThread(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int32(2), threadCalls.Load(), "a new reply invalidates the parent thread")
}

func TestClient_EnrichPosts(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /texts/by_post/{id}", func(w http.ResponseWriter, r *http.Request) {
		id, _ := strconv.Atoi(r.PathValue("id"))
		writeJSON(t, w, http.StatusOK, []Text{{ID: id * 10, PostID: id, Type: TextTypeReply}})
	})
	mux.HandleFunc("GET /posts/{id}/thread", func(w http.ResponseWriter, r *http.Request) {
		id, _ := strconv.Atoi(r.PathValue("id"))
		writeJSON(t, w, http.StatusOK, []Post{{ID: id * 100}})
	})
	c := newTestClient(t, mux)

	posts := []Post{{ID: 1}, {ID: 2}, {ID: 3}, {ID: 4}, {ID: 5}}
	enriched, err := c.EnrichPosts(context.Background(), posts)
	require.NoError(t, err)
	require.Len(t, enriched, len(posts))

	for i, tp := range enriched {
		assert.Equal(t, posts[i].ID, tp.ID, "order preserved")
		require.Len(t, tp.Comments, 1)
		assert.Equal(t, tp.ID*10, tp.Comments[0].ID)
		require.Len(t, tp.Replies, 1)
		assert.Equal(t, tp.ID*100, tp.Replies[0].ID)
	}
}

func TestClient_EnrichPostsFailure(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /texts/by_post/{id}", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(t, w, http.StatusOK, []Text{})
	})
	mux.HandleFunc("GET /posts/{id}/thread", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	c := newTestClient(t, mux)

	_, err := c.EnrichPosts(context.Background(), []Post{{ID: 1}, {ID: 2}})
	require.Error(t, err)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
}

func TestClient_EventMutations(t *testing.T) {
	var (
		mu      sync.Mutex
		methods []string
		payload map[string]any
	)
	mux := http.NewServeMux()
	record := func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		methods = append(methods, r.Method+" "+r.URL.Path)
		if r.Body != nil && r.ContentLength > 0 {
			payload = map[string]any{}
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		}
		if r.Method == http.MethodDelete {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		writeJSON(t, w, http.StatusOK, Event{ID: 8, Name: "Concert"})
	}
	mux.HandleFunc("POST /events", record)
	mux.HandleFunc("PATCH /events/{id}", record)
	mux.HandleFunc("DELETE /events/{id}", record)
	c := newTestClient(t, mux)
	ctx := context.Background()
	lastPayload := func() map[string]any {
		mu.Lock()
		defer mu.Unlock()
		return payload
	}

	_, err := c.CreateEvent(ctx, EventInput{Name: "  "})
	require.ErrorIs(t, err, ErrInvalidInput)

	created, err := c.CreateEvent(ctx, EventInput{Name: " Concert ", Tags: []string{"live", " ", "live", "tour"}})
	require.NoError(t, err)
	assert.Equal(t, 8, created.ID)
	assert.Equal(t, "Concert", lastPayload()["name"])
	assert.Equal(t, []any{"live", "tour"}, lastPayload()["tags"])
	assert.Nil(t, lastPayload()["location"])

	_, err = c.UpdateEvent(ctx, 8, EventInput{Name: "Concert II", Location: OptionalString("Bangkok")})
	require.NoError(t, err)
	assert.Equal(t, "Bangkok", lastPayload()["location"])
	assert.Equal(t, []any{}, lastPayload()["tags"])

	require.NoError(t, c.DeleteEvent(ctx, 8))

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"POST /events", "PATCH /events/8", "DELETE /events/8"}, methods)
}

func TestClient_CreateReplyPair(t *testing.T) {
	var (
		mu     sync.Mutex
		bodies []TextInput
	)
	mux := http.NewServeMux()
	mux.HandleFunc("POST /texts/", func(w http.ResponseWriter, r *http.Request) {
		var in TextInput
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		mu.Lock()
		bodies = append(bodies, in)
		id := len(bodies)
		mu.Unlock()
		writeJSON(t, w, http.StatusOK, Text{ID: id, PostID: in.PostID, Type: in.Type, Content: in.Content})
	})
	c := newTestClient(t, mux)

	pair, err := c.CreateReplyPair(context.Background(), ReplyInput{
		PostID:      3,
		AuthorID:    2,
		Caption:     "ขอบคุณ",
		Translation: "thank you",
		PostedAt:    "2024-05-01",
	})
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, bodies, 2)

	assert.Equal(t, TextTypeReply, bodies[0].Type)
	assert.Equal(t, "th", bodies[0].Language)
	assert.Nil(t, bodies[0].ParentCommentID)
	assert.Equal(t, "manual", bodies[0].Source)

	assert.Equal(t, TextTypeTranslation, bodies[1].Type)
	assert.Equal(t, "en", bodies[1].Language)
	require.NotNil(t, bodies[1].ParentCommentID)
	assert.Equal(t, pair.Main.ID, *bodies[1].ParentCommentID)
	require.NotNil(t, pair.Translation)
	assert.Equal(t, "thank you", pair.Translation.Content)
}

func TestClient_CancelledContext(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(t, w, http.StatusOK, []Post{})
	}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.ListPosts(ctx, PostFilter{}, 10, 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func ExampleGroupReplyPairs() {
	parent := 1
	pairs := GroupReplyPairs([]Text{
		{ID: 1, Type: TextTypeReply, Content: "สวัสดี"},
		{ID: 2, Type: TextTypeTranslation, Content: "hello", ParentCommentID: &parent},
	})
	fmt.Println(len(pairs), pairs[0].Main.Content, pairs[0].Translation.Content)
	// Output: 1 สวัสดี hello
}

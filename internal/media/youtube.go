package media

import (
	"net/url"
	"slices"
	"strings"
)

const youtubeEmbedBase = "https://www.youtube.com/embed/"

// YouTubeEmbedURL converts a YouTube watch, share, live or shorts link into
// its embeddable form. Non-YouTube links yield "".
func YouTubeEmbedURL(raw string) string {
	u := SafeURL(raw)
	if u == "" {
		return ""
	}

	parsed, err := url.Parse(u)
	if err != nil {
		return ""
	}

	host := parsed.Hostname()
	switch {
	case strings.Contains(host, "youtu.be"):
		id := strings.TrimSpace(strings.TrimPrefix(parsed.Path, "/"))
		id, _, _ = strings.Cut(id, "/")
		if id == "" {
			return ""
		}
		return youtubeEmbedBase + id
	case strings.Contains(host, "youtube.com"):
		if v := parsed.Query().Get("v"); v != "" {
			return youtubeEmbedBase + v
		}
		parts := slices.DeleteFunc(strings.Split(parsed.Path, "/"), func(s string) bool { return s == "" })
		for i, p := range parts {
			if (p == "live" || p == "embed" || p == "shorts") && i+1 < len(parts) {
				return youtubeEmbedBase + parts[i+1]
			}
		}
	}
	return ""
}

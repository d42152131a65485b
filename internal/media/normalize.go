package media

import (
	"regexp"
	"strings"
)

var tweetPathRe = regexp.MustCompile(`twitter\.com/([^/?#]+)/status/(\d+)`)

// NormalizeTweetURL rewrites x.com links to twitter.com and reduces them to
// the canonical https://twitter.com/<user>/status/<id> form when possible.
func NormalizeTweetURL(raw string) string {
	u := SafeURL(raw)
	if u == "" {
		return ""
	}

	for _, host := range []string{"://www.x.com", "://mobile.x.com", "://x.com", "://www.twitter.com", "://mobile.twitter.com"} {
		if i := strings.Index(u, host); i >= 0 {
			u = "https://twitter.com" + u[i+len(host):]
			break
		}
	}

	m := tweetPathRe.FindStringSubmatch(u)
	if m == nil {
		return u
	}
	return "https://twitter.com/" + m[1] + "/status/" + m[2]
}

// NormalizeInstagramURL drops the query string, forces a trailing slash and
// the www host.
func NormalizeInstagramURL(raw string) string {
	u := stripQuery(strings.TrimSpace(raw))
	if u == "" {
		return ""
	}
	u = SafeURL(u)
	if !strings.HasSuffix(u, "/") {
		u += "/"
	}
	u = strings.Replace(u, "://instagram.com", "://www.instagram.com", 1)
	return strings.Replace(u, "http://", "https://", 1)
}

// NormalizeTikTokURL drops the query string, maps the mobile host to www and
// adds a scheme when missing.
func NormalizeTikTokURL(raw string) string {
	u := stripQuery(strings.TrimSpace(raw))
	if u == "" {
		return ""
	}
	u = SafeURL(u)
	return strings.Replace(u, "://m.tiktok.com", "://www.tiktok.com", 1)
}

// NormalizeURL applies the normalization matching p. Unknown platforms only
// get whitespace trimmed.
func NormalizeURL(p Platform, raw string) string {
	switch p {
	case Instagram:
		return NormalizeInstagramURL(raw)
	case Twitter:
		return NormalizeTweetURL(raw)
	case TikTok:
		return NormalizeTikTokURL(raw)
	default:
		return strings.TrimSpace(raw)
	}
}

var tiktokVideoRe = regexp.MustCompile(`/video/(\d+)`)

// ExtractExternalID returns the platform's identifier for the linked item:
// the Instagram shortcode, the tweet ID or the TikTok video ID. It returns ""
// when the URL does not carry one.
func ExtractExternalID(raw string, p Platform) string {
	if raw == "" {
		return ""
	}

	switch p {
	case Instagram:
		_, rest, ok := strings.Cut(raw, "/p/")
		if !ok {
			return ""
		}
		id, _, _ := strings.Cut(rest, "/")
		return stripQuery(id)
	case Twitter:
		_, rest, ok := strings.Cut(raw, "/status/")
		if !ok {
			return ""
		}
		id := stripQuery(rest)
		id, _, _ = strings.Cut(id, "/")
		return id
	case TikTok:
		if m := tiktokVideoRe.FindStringSubmatch(raw); m != nil {
			return m[1]
		}
		return ""
	default:
		return ""
	}
}

func stripQuery(s string) string {
	s, _, _ = strings.Cut(s, "?")
	s, _, _ = strings.Cut(s, "#")
	return s
}

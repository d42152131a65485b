package media

import (
	"net/url"
	"regexp"
	"strings"
)

var (
	videoRe = regexp.MustCompile(`(?i)\.(mp4|webm|ogg|mov)(\?.*)?$`)
	imageRe = regexp.MustCompile(`(?i)\.(jpg|jpeg|png|webp|gif)(\?.*)?$`)
)

// Kind classifies a media URL.
type Kind int

// Media kinds.
const (
	KindNone Kind = iota
	KindImage
	KindVideo
	KindLink
)

// String returns a short label for the kind.
func (k Kind) String() string {
	switch k {
	case KindImage:
		return "image"
	case KindVideo:
		return "video"
	case KindLink:
		return "link"
	default:
		return "none"
	}
}

// IsVideo reports whether the URL points at a video file.
func IsVideo(u string) bool {
	return videoRe.MatchString(u)
}

// IsImage reports whether the URL points at an image file.
func IsImage(u string) bool {
	return imageRe.MatchString(u)
}

// IsFromR2 reports whether the URL is served from a public Cloudflare R2 bucket.
func IsFromR2(u string) bool {
	parsed, err := url.Parse(u)
	if err != nil || parsed.Host == "" {
		return false
	}
	return strings.HasSuffix(parsed.Hostname(), ".r2.dev")
}

// Classify returns the kind of media behind u.
func Classify(u string) Kind {
	switch {
	case strings.TrimSpace(u) == "":
		return KindNone
	case IsVideo(u):
		return KindVideo
	case IsImage(u):
		return KindImage
	default:
		return KindLink
	}
}

// SafeURL trims s and adds an https scheme when it has none.
func SafeURL(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://") {
		return s
	}
	return "https://" + s
}

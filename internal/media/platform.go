// Package media normalizes social-media URLs and classifies the media
// attached to archived posts and events.
package media

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Platform identifies the network a post was archived from.
type Platform string

// Supported platforms, using the short codes the archive API stores.
const (
	Instagram Platform = "ig"
	Twitter   Platform = "x"
	TikTok    Platform = "tt"
)

// ErrUnknownPlatform is returned by ParsePlatform for unrecognized input.
var ErrUnknownPlatform = errors.New("unknown platform")

// Platforms lists every supported platform in display order.
func Platforms() []Platform {
	return []Platform{Instagram, Twitter, TikTok}
}

var platformAliases = map[string]Platform{
	"ig":        Instagram,
	"instagram": Instagram,
	"x":         Twitter,
	"twitter":   Twitter,
	"tt":        TikTok,
	"tiktok":    TikTok,
}

// ParsePlatform accepts a short code or a full platform name, case-insensitively.
func ParsePlatform(s string) (Platform, error) {
	p, ok := platformAliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return "", fmt.Errorf("%w: %q (valid: ig, x, tt)", ErrUnknownPlatform, s)
	}
	return p, nil
}

// String returns the short code.
func (p Platform) String() string {
	return string(p)
}

// DisplayName returns the human-readable network name.
func (p Platform) DisplayName() string {
	switch p {
	case Instagram:
		return "Instagram"
	case Twitter:
		return "Twitter"
	case TikTok:
		return "TikTok"
	default:
		return cases.Title(language.English).String(string(p))
	}
}

package engine

import (
	"net/url"
	"regexp"
	"strings"
)

// videoIDRE matches every known watch URL shape. The greedy prefix makes the
// last marker win, so ids after redirects or nested params are still found.
var videoIDRE = regexp.MustCompile(`^.*(youtu\.be/|v/|u/\w/|embed/|watch\?v=|&v=|shorts/)([^#&?]*).*`)

const videoIDLen = 11

// ExtractVideoID pulls the 11-char video id out of any supported URL shape.
// Returns "" when nothing of the right length is found.
func ExtractVideoID(raw string) string {
	m := videoIDRE.FindStringSubmatch(strings.TrimSpace(raw))
	if len(m) < 3 || len(m[2]) != videoIDLen {
		return ""
	}
	return m[2]
}

// IsYouTubeURL reports whether raw should go through the video extractor.
func IsYouTubeURL(raw string) bool {
	return strings.Contains(raw, "youtube.com") || strings.Contains(raw, "youtu.be")
}

// LooksLikeChannelRef reports whether raw may name a channel rather than a video.
func LooksLikeChannelRef(raw string) bool {
	return IsYouTubeURL(raw) || strings.HasPrefix(strings.TrimSpace(raw), "@")
}

// VideoURL is the canonical watch URL for id.
func VideoURL(id string) string {
	return "https://www.youtube.com/watch?v=" + id
}

// VideoThumbnail derives the medium thumbnail from id without a network call.
func VideoThumbnail(id string) string {
	return "https://img.youtube.com/vi/" + id + "/mqdefault.jpg"
}

// ResolveChannel parses a URL, @handle or bare id into a ChannelIdentity.
// Pure: malformed URLs degrade to treating the raw input as an id.
func ResolveChannel(raw string) ChannelIdentity {
	clean := strings.TrimSpace(raw)

	if strings.HasPrefix(clean, "http://") || strings.HasPrefix(clean, "https://") {
		if id, ok := channelFromURL(clean); ok {
			return id
		}
	}

	if strings.HasPrefix(clean, "@") {
		return ChannelIdentity{Kind: IdentityHandle, Value: clean}
	}
	return ChannelIdentity{Kind: IdentityID, Value: clean}
}

func channelFromURL(raw string) (ChannelIdentity, bool) {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return ChannelIdentity{}, false
	}

	var segments []string
	for _, s := range strings.Split(u.EscapedPath(), "/") {
		if s != "" {
			segments = append(segments, s)
		}
	}

	for i, s := range segments {
		if s == "channel" && i+1 < len(segments) {
			return ChannelIdentity{Kind: IdentityID, Value: unescape(segments[i+1])}, true
		}
	}
	for _, s := range segments {
		if strings.HasPrefix(s, "@") || strings.HasPrefix(s, "%40") {
			return ChannelIdentity{Kind: IdentityHandle, Value: unescape(s)}, true
		}
	}
	return ChannelIdentity{}, false
}

func unescape(s string) string {
	if d, err := url.PathUnescape(s); err == nil {
		return d
	}
	return s
}

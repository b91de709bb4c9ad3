// Package youtube extracts video transcripts and metadata without an API
// key, using YouTube's public Innertube and oEmbed endpoints.
package youtube

import (
	"fmt"
	"net/url"
	"strings"
)

// IsVideoURL reports whether rawURL points at a known video-hosting domain.
func IsVideoURL(rawURL string) bool {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return false
	}
	host := strings.ToLower(u.Hostname())
	return host == "youtu.be" ||
		host == "youtube.com" ||
		strings.HasSuffix(host, ".youtube.com")
}

// VideoID extracts the 11-character video identifier from the common URL
// shapes: watch?v=, youtu.be/, /shorts/, /embed/, /live/ and /v/.
func VideoID(rawURL string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return "", fmt.Errorf("parse url: %w", err)
	}
	host := strings.ToLower(u.Hostname())
	path := strings.Trim(u.Path, "/")

	var id string
	switch {
	case host == "youtu.be":
		id = firstSegment(path)
	case host == "youtube.com" || strings.HasSuffix(host, ".youtube.com"):
		switch {
		case path == "watch":
			id = u.Query().Get("v")
		case strings.HasPrefix(path, "shorts/"),
			strings.HasPrefix(path, "embed/"),
			strings.HasPrefix(path, "live/"),
			strings.HasPrefix(path, "v/"):
			if _, rest, ok := strings.Cut(path, "/"); ok {
				id = firstSegment(rest)
			}
		}
	}
	if !validVideoID(id) {
		return "", fmt.Errorf("no video id in %q", rawURL)
	}
	return id, nil
}

func firstSegment(p string) string {
	if i := strings.IndexByte(p, '/'); i >= 0 {
		return p[:i]
	}
	return p
}

// validVideoID checks the 11-character URL-safe alphabet video ids use.
func validVideoID(id string) bool {
	if len(id) != 11 {
		return false
	}
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return false
		}
	}
	return true
}

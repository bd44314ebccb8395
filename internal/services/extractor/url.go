package extractor

import (
	"fmt"
	"regexp"
)

var (
	supportedURLPattern = regexp.MustCompile(`^(https?://)?(www\.|m\.)?(youtube\.com|youtu\.be)/`)
	videoIDPattern      = regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtu\.be/|youtube\.com/embed/|youtube\.com/v/|youtube\.com/shorts/)([a-zA-Z0-9_-]{11})`)
)

// IsSupportedURL reports whether text starts with a known YouTube host,
// with optional scheme and "www."/"m." prefix, followed by a path separator.
func IsSupportedURL(text string) bool {
	return supportedURLPattern.MatchString(text)
}

// ParseVideoID extracts the 11-character video ID from a YouTube URL.
func ParseVideoID(url string) (string, error) {
	matches := videoIDPattern.FindStringSubmatch(url)
	if len(matches) > 1 {
		return matches[1], nil
	}
	return "", fmt.Errorf("could not extract video ID from YouTube URL: %s", url)
}

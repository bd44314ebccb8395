package extractor

import (
	"context"

	"github.com/tubegrab/tubegrab/internal/models"
)

// Extractor wraps the media extraction backend: metadata inspection without
// downloading, and download/transcode of a selected stream.
type Extractor interface {
	// IsSupportedURL reports whether the text looks like a YouTube link.
	IsSupportedURL(url string) bool

	// ParseVideoID extracts the video ID from a YouTube URL.
	ParseVideoID(url string) (string, error)

	// FetchInfo retrieves video metadata. It must not initiate a download.
	FetchInfo(ctx context.Context, url string) (*models.VideoInfo, error)

	// Download fetches and transcodes the stream described by sel, writing a
	// single file whose name starts with outputBase. It returns the exact
	// path of the produced file; the extension is backend-determined.
	Download(ctx context.Context, url string, sel Selection, outputBase string) (string, error)
}

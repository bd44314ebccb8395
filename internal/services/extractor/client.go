package extractor

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/kkdai/youtube/v2"

	"github.com/tubegrab/tubegrab/internal/models"
)

// Client is the production Extractor. Metadata inspection goes through the
// YouTube client library; downloads shell out to yt-dlp (see ytdlp.go).
type Client struct {
	yt         *youtube.Client
	httpClient *http.Client
}

// NewClient builds an extractor whose metadata calls are bounded by
// fetchTimeout.
func NewClient(fetchTimeout time.Duration) *Client {
	if fetchTimeout <= 0 {
		fetchTimeout = 30 * time.Second
	}
	httpClient := &http.Client{
		Timeout: fetchTimeout,
	}

	ytClient := &youtube.Client{
		HTTPClient: httpClient,
	}

	return &Client{
		yt:         ytClient,
		httpClient: httpClient,
	}
}

func (c *Client) IsSupportedURL(url string) bool {
	return IsSupportedURL(url)
}

func (c *Client) ParseVideoID(url string) (string, error) {
	return ParseVideoID(url)
}

// FetchInfo retrieves title, duration and thumbnail without downloading
// media. Title and thumbnail are passed through as the source provides them;
// a source without a duration yields 0 seconds.
func (c *Client) FetchInfo(ctx context.Context, url string) (*models.VideoInfo, error) {
	videoID, err := ParseVideoID(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse video URL: %w", err)
	}

	video, err := c.yt.GetVideoContext(ctx, videoID)
	if err != nil {
		return nil, fmt.Errorf("failed to get video info: %w", err)
	}

	info := &models.VideoInfo{
		ID:              video.ID,
		Title:           video.Title,
		Author:          video.Author,
		DurationSeconds: int(video.Duration / time.Second),
	}

	if len(video.Thumbnails) > 0 {
		info.ThumbnailURL = video.Thumbnails[0].URL
	}

	return info, nil
}

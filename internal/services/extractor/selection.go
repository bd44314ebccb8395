package extractor

import (
	"fmt"
	"strconv"
)

// Selection is a parsed quality/format selection key. Audio selections carry
// a nominal bitrate in kbps; video selections carry a maximum height.
type Selection struct {
	Key     string
	Audio   bool
	Bitrate int
	Height  int
}

// ParseSelection decodes a selection key: "mp3_<bitrate>" for audio, a bare
// numeric height for video.
func ParseSelection(key string) (Selection, error) {
	switch key {
	case "mp3_320":
		return Selection{Key: key, Audio: true, Bitrate: 320}, nil
	case "mp3_128":
		return Selection{Key: key, Audio: true, Bitrate: 128}, nil
	}

	height, err := strconv.Atoi(key)
	if err != nil || height <= 0 {
		return Selection{}, fmt.Errorf("unknown selection key: %q", key)
	}
	return Selection{Key: key, Height: height}, nil
}

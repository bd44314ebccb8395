package extractor

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

const (
	ytdlpBinary  = "yt-dlp"
	ffmpegBinary = "ffmpeg"
)

// Extensions left behind by interrupted yt-dlp runs. Never returned as a
// produced file.
var partialExtensions = []string{".part", ".ytdl", ".temp"}

// Download runs yt-dlp for the given selection, writing one file named
// "<outputBase>.<ext>" where ext is chosen by the backend. The exact produced
// path is located before returning so callers never have to scan the scratch
// directory themselves.
func (c *Client) Download(ctx context.Context, url string, sel Selection, outputBase string) (string, error) {
	args := buildDownloadArgs(sel, outputBase, url)

	cmd := exec.CommandContext(ctx, ytdlpBinary, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("yt-dlp failed: %w | %s", err, strings.TrimSpace(stderr.String()))
	}

	path, err := locateOutput(outputBase)
	if err != nil {
		return "", err
	}
	return path, nil
}

// buildDownloadArgs translates a selection into yt-dlp arguments. Audio
// selections extract the best audio stream and transcode to mp3 at the
// requested nominal bitrate; video selections merge the best stream at or
// below the requested height with the best audio into an mp4 container.
func buildDownloadArgs(sel Selection, outputBase, url string) []string {
	args := []string{
		"--no-playlist",
		"--no-warnings",
		"-q",
		"-o", outputBase + ".%(ext)s",
	}

	if sel.Audio {
		args = append(args,
			"-f", "bestaudio/best",
			"-x",
			"--audio-format", "mp3",
			"--audio-quality", strconv.Itoa(sel.Bitrate)+"K",
		)
	} else {
		args = append(args,
			"-f", fmt.Sprintf("bestvideo[height<=%d]+bestaudio/best[height<=%d]", sel.Height, sel.Height),
			"--merge-output-format", "mp4",
		)
	}

	return append(args, url)
}

// locateOutput resolves the single file yt-dlp produced for outputBase. The
// glob is scoped to the job-unique base name, so concurrent jobs cannot be
// confused with each other.
func locateOutput(outputBase string) (string, error) {
	matches, err := filepath.Glob(outputBase + ".*")
	if err != nil {
		return "", fmt.Errorf("failed to scan for output file: %w", err)
	}

	candidates := matches[:0]
	for _, m := range matches {
		if isPartialFile(m) {
			continue
		}
		candidates = append(candidates, m)
	}

	if len(candidates) == 0 {
		return "", fmt.Errorf("no output file found for %s", outputBase)
	}

	// yt-dlp leaves exactly one final file per run; if intermediates survive
	// a crash the lexicographically first complete file is the final output.
	sort.Strings(candidates)
	return candidates[0], nil
}

func isPartialFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, partial := range partialExtensions {
		if ext == partial {
			return true
		}
	}
	return false
}

// CheckBinaries verifies the external toolchain is present in PATH.
func CheckBinaries() error {
	for _, bin := range []string{ytdlpBinary, ffmpegBinary} {
		if _, err := exec.LookPath(bin); err != nil {
			return fmt.Errorf("%s not found in PATH: %w", bin, err)
		}
	}
	return nil
}

package extractor

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestIsSupportedURL(t *testing.T) {
	testCases := []struct {
		name     string
		url      string
		expected bool
	}{
		{
			name:     "Short link without scheme",
			url:      "youtu.be/abc123",
			expected: true,
		},
		{
			name:     "Short link with scheme",
			url:      "https://youtu.be/dQw4w9WgXcQ",
			expected: true,
		},
		{
			name:     "Long link with www",
			url:      "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
			expected: true,
		},
		{
			name:     "Long link without scheme",
			url:      "youtube.com/watch?v=dQw4w9WgXcQ",
			expected: true,
		},
		{
			name:     "Mobile host",
			url:      "https://m.youtube.com/watch?v=dQw4w9WgXcQ",
			expected: true,
		},
		{
			name:     "Plain http scheme",
			url:      "http://www.youtube.com/watch?v=dQw4w9WgXcQ",
			expected: true,
		},
		{
			name:     "Other video platform",
			url:      "vimeo.com/abc",
			expected: false,
		},
		{
			name:     "Not a URL at all",
			url:      "not a url",
			expected: false,
		},
		{
			name:     "Host without path separator",
			url:      "youtube.com",
			expected: false,
		},
		{
			name:     "Lookalike host",
			url:      "https://notyoutube.com/watch?v=abc",
			expected: false,
		},
		{
			name:     "Empty string",
			url:      "",
			expected: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsSupportedURL(tc.url); got != tc.expected {
				t.Errorf("IsSupportedURL(%q) = %v, want %v", tc.url, got, tc.expected)
			}
		})
	}
}

func TestParseVideoID(t *testing.T) {
	testCases := []struct {
		name        string
		url         string
		expectedID  string
		expectError bool
	}{
		{
			name:       "Watch URL",
			url:        "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
			expectedID: "dQw4w9WgXcQ",
		},
		{
			name:       "Short URL",
			url:        "https://youtu.be/dQw4w9WgXcQ",
			expectedID: "dQw4w9WgXcQ",
		},
		{
			name:       "Embed URL",
			url:        "https://www.youtube.com/embed/dQw4w9WgXcQ",
			expectedID: "dQw4w9WgXcQ",
		},
		{
			name:       "Shorts URL",
			url:        "https://youtube.com/shorts/dQw4w9WgXcQ",
			expectedID: "dQw4w9WgXcQ",
		},
		{
			name:        "No ID present",
			url:         "https://youtube.com/",
			expectError: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			id, err := ParseVideoID(tc.url)
			if tc.expectError {
				if err == nil {
					t.Errorf("ParseVideoID(%q) expected error, got %q", tc.url, id)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseVideoID(%q) unexpected error: %v", tc.url, err)
			}
			if id != tc.expectedID {
				t.Errorf("ParseVideoID(%q) = %q, want %q", tc.url, id, tc.expectedID)
			}
		})
	}
}

func TestParseSelection(t *testing.T) {
	testCases := []struct {
		name        string
		key         string
		expectError bool
		audio       bool
		bitrate     int
		height      int
	}{
		{name: "MP3 320", key: "mp3_320", audio: true, bitrate: 320},
		{name: "MP3 128", key: "mp3_128", audio: true, bitrate: 128},
		{name: "4K", key: "2160", height: 2160},
		{name: "720p", key: "720", height: 720},
		{name: "Unknown audio key", key: "mp3_192", expectError: true},
		{name: "Garbage", key: "bestest", expectError: true},
		{name: "Negative height", key: "-720", expectError: true},
		{name: "Empty", key: "", expectError: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			sel, err := ParseSelection(tc.key)
			if tc.expectError {
				if err == nil {
					t.Errorf("ParseSelection(%q) expected error", tc.key)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseSelection(%q) unexpected error: %v", tc.key, err)
			}
			if sel.Audio != tc.audio || sel.Bitrate != tc.bitrate || sel.Height != tc.height {
				t.Errorf("ParseSelection(%q) = %+v, want audio=%v bitrate=%d height=%d",
					tc.key, sel, tc.audio, tc.bitrate, tc.height)
			}
		})
	}
}

func TestBuildDownloadArgs(t *testing.T) {
	t.Run("Audio selection", func(t *testing.T) {
		sel, _ := ParseSelection("mp3_320")
		args := buildDownloadArgs(sel, "downloads/job1", "https://youtu.be/abc12345678")

		joined := strings.Join(args, " ")
		for _, want := range []string{
			"-f bestaudio/best",
			"--audio-format mp3",
			"--audio-quality 320K",
			"-o downloads/job1.%(ext)s",
			"--no-playlist",
		} {
			if !strings.Contains(joined, want) {
				t.Errorf("audio args missing %q: %s", want, joined)
			}
		}
		if args[len(args)-1] != "https://youtu.be/abc12345678" {
			t.Error("URL must be the final argument")
		}
	})

	t.Run("Video selection", func(t *testing.T) {
		sel, _ := ParseSelection("720")
		args := buildDownloadArgs(sel, "downloads/job2", "https://youtu.be/abc12345678")

		joined := strings.Join(args, " ")
		if !strings.Contains(joined, "bestvideo[height<=720]+bestaudio/best[height<=720]") {
			t.Errorf("video args missing height constraint: %s", joined)
		}
		if !strings.Contains(joined, "--merge-output-format mp4") {
			t.Errorf("video args missing merge container: %s", joined)
		}
		if strings.Contains(joined, "--audio-format") {
			t.Errorf("video args must not request audio transcode: %s", joined)
		}
	})
}

func TestLocateOutput(t *testing.T) {
	dir := t.TempDir()

	t.Run("Single output file", func(t *testing.T) {
		base := filepath.Join(dir, "job-a")
		mustWriteFile(t, base+".mp4")

		path, err := locateOutput(base)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if path != base+".mp4" {
			t.Errorf("located %q, want %q", path, base+".mp4")
		}
	})

	t.Run("Partial files are skipped", func(t *testing.T) {
		base := filepath.Join(dir, "job-b")
		mustWriteFile(t, base+".mp3")
		mustWriteFile(t, base+".mp3.part")
		mustWriteFile(t, base+".ytdl")

		path, err := locateOutput(base)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if path != base+".mp3" {
			t.Errorf("located %q, want %q", path, base+".mp3")
		}
	})

	t.Run("No output", func(t *testing.T) {
		if _, err := locateOutput(filepath.Join(dir, "job-missing")); err == nil {
			t.Error("expected error when no output file exists")
		}
	})

	t.Run("Sibling jobs do not collide", func(t *testing.T) {
		baseC := filepath.Join(dir, "job-c")
		baseD := filepath.Join(dir, "job-d")
		mustWriteFile(t, baseC+".mp4")
		mustWriteFile(t, baseD+".mp4")

		path, err := locateOutput(baseC)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if path != baseC+".mp4" {
			t.Errorf("located %q, want %q", path, baseC+".mp4")
		}
	})
}

func mustWriteFile(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

package downloader

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/tubegrab/tubegrab/internal/config"
	"github.com/tubegrab/tubegrab/internal/models"
	"github.com/tubegrab/tubegrab/internal/services/extractor"
	"github.com/tubegrab/tubegrab/internal/utils"
)

// fakeExtractor writes a file per Download call, or fails on demand.
type fakeExtractor struct {
	mu        sync.Mutex
	ext       string
	content   []byte
	failWith  error
	delay     time.Duration
	downloads []extractor.Selection
}

func (f *fakeExtractor) IsSupportedURL(url string) bool          { return true }
func (f *fakeExtractor) ParseVideoID(url string) (string, error) { return "fakevideo01", nil }

func (f *fakeExtractor) FetchInfo(ctx context.Context, url string) (*models.VideoInfo, error) {
	return &models.VideoInfo{ID: "fakevideo01", Title: "fake"}, nil
}

func (f *fakeExtractor) Download(ctx context.Context, url string, sel extractor.Selection, outputBase string) (string, error) {
	f.mu.Lock()
	f.downloads = append(f.downloads, sel)
	f.mu.Unlock()

	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	if f.failWith != nil {
		return "", f.failWith
	}

	path := outputBase + "." + f.ext
	if err := os.WriteFile(path, f.content, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

func newTestConfig(t *testing.T) *config.DownloadConfig {
	t.Helper()
	return &config.DownloadConfig{
		ScratchDir:             t.TempDir(),
		MaxConcurrentDownloads: 2,
		DownloadTimeout:        5 * time.Second,
		MaxFileSize:            1024,
	}
}

func TestRunProducesAndCleansUpFile(t *testing.T) {
	cfg := newTestConfig(t)
	fake := &fakeExtractor{ext: "mp4", content: []byte("video bytes")}
	orch, err := NewOrchestrator(fake, cfg)
	if err != nil {
		t.Fatalf("new orchestrator: %v", err)
	}

	job := NewJob(1, 10, "https://youtu.be/dQw4w9WgXcQ", "720")
	result, err := orch.Run(context.Background(), job)
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if _, err := os.Stat(result.Path); err != nil {
		t.Fatalf("expected output file to exist during the job: %v", err)
	}
	if filepath.Base(result.Path) != job.JobID+".mp4" {
		t.Errorf("output name %q must embed the job ID", result.Path)
	}
	if job.Status != models.JobStatusCompleted {
		t.Errorf("expected completed status, got %s", job.Status)
	}

	if err := result.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if _, err := os.Stat(result.Path); !os.IsNotExist(err) {
		t.Error("expected output file to be deleted after Close")
	}
	if err := result.Close(); err != nil {
		t.Errorf("Close must be idempotent, got %v", err)
	}

	assertScratchEmpty(t, cfg.ScratchDir)
}

func TestRunVideoHeightConstraint(t *testing.T) {
	cfg := newTestConfig(t)
	fake := &fakeExtractor{ext: "mp4"}
	orch, _ := NewOrchestrator(fake, cfg)

	job := NewJob(1, 10, "https://youtu.be/dQw4w9WgXcQ", "720")
	result, err := orch.Run(context.Background(), job)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	defer result.Close()

	if len(fake.downloads) != 1 {
		t.Fatalf("expected one download call, got %d", len(fake.downloads))
	}
	sel := fake.downloads[0]
	if sel.Audio || sel.Height != 720 {
		t.Errorf("expected video selection with height 720, got %+v", sel)
	}
}

func TestRunAudioSelection(t *testing.T) {
	cfg := newTestConfig(t)
	fake := &fakeExtractor{ext: "mp3"}
	orch, _ := NewOrchestrator(fake, cfg)

	job := NewJob(1, 10, "https://youtu.be/dQw4w9WgXcQ", "mp3_320")
	result, err := orch.Run(context.Background(), job)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	defer result.Close()

	sel := fake.downloads[0]
	if !sel.Audio || sel.Bitrate != 320 {
		t.Errorf("expected audio selection at 320 kbps, got %+v", sel)
	}
}

func TestRunBackendFailure(t *testing.T) {
	cfg := newTestConfig(t)
	fake := &fakeExtractor{failWith: errors.New("geo blocked")}
	orch, _ := NewOrchestrator(fake, cfg)

	job := NewJob(1, 10, "https://youtu.be/dQw4w9WgXcQ", "1080")
	if _, err := orch.Run(context.Background(), job); err == nil {
		t.Fatal("expected error from failing backend")
	} else if utils.ErrorCodeOf(err) != utils.ErrorCodeDownloadFailed {
		t.Errorf("expected DOWNLOAD_FAILED, got %s", utils.ErrorCodeOf(err))
	}

	if job.Status != models.JobStatusFailed {
		t.Errorf("expected failed status, got %s", job.Status)
	}
	if job.ErrorMessage == nil {
		t.Error("expected error message on the job")
	}
	assertScratchEmpty(t, cfg.ScratchDir)
}

func TestRunUnknownSelectionKey(t *testing.T) {
	cfg := newTestConfig(t)
	fake := &fakeExtractor{ext: "mp4"}
	orch, _ := NewOrchestrator(fake, cfg)

	job := NewJob(1, 10, "https://youtu.be/dQw4w9WgXcQ", "betamax")
	if _, err := orch.Run(context.Background(), job); err == nil {
		t.Fatal("expected error for unknown selection key")
	}
	if len(fake.downloads) != 0 {
		t.Error("backend must not be invoked for an unknown selection key")
	}
}

func TestRunFileTooLarge(t *testing.T) {
	cfg := newTestConfig(t)
	cfg.MaxFileSize = 4
	fake := &fakeExtractor{ext: "mp4", content: []byte("way past the limit")}
	orch, _ := NewOrchestrator(fake, cfg)

	job := NewJob(1, 10, "https://youtu.be/dQw4w9WgXcQ", "480")
	_, err := orch.Run(context.Background(), job)
	if err == nil {
		t.Fatal("expected error for oversized file")
	}
	if utils.ErrorCodeOf(err) != utils.ErrorCodeFileTooLarge {
		t.Errorf("expected FILE_TOO_LARGE, got %s", utils.ErrorCodeOf(err))
	}
	assertScratchEmpty(t, cfg.ScratchDir)
}

func TestConcurrentJobsDoNotCollide(t *testing.T) {
	cfg := newTestConfig(t)
	cfg.MaxConcurrentDownloads = 4
	fake := &fakeExtractor{ext: "mp4", content: []byte("x")}
	orch, _ := NewOrchestrator(fake, cfg)

	const jobs = 4
	paths := make(chan string, jobs)
	var wg sync.WaitGroup
	for i := 0; i < jobs; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			// Same URL and selection on purpose; only the job ID separates them.
			job := NewJob(7, 10, "https://youtu.be/dQw4w9WgXcQ", "720")
			result, err := orch.Run(context.Background(), job)
			if err != nil {
				t.Errorf("run: %v", err)
				return
			}
			defer result.Close()
			paths <- result.Path
		}()
	}
	wg.Wait()
	close(paths)

	seen := make(map[string]bool)
	for path := range paths {
		if seen[path] {
			t.Errorf("two jobs produced the same output path %q", path)
		}
		seen[path] = true
	}
	if len(seen) != jobs {
		t.Errorf("expected %d distinct output paths, got %d", jobs, len(seen))
	}
}

func TestRunHonorsContextCancellation(t *testing.T) {
	cfg := newTestConfig(t)
	fake := &fakeExtractor{ext: "mp4", delay: time.Second}
	orch, _ := NewOrchestrator(fake, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	job := NewJob(1, 10, "https://youtu.be/dQw4w9WgXcQ", "720")
	if _, err := orch.Run(ctx, job); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}

func TestSweepScratch(t *testing.T) {
	cfg := newTestConfig(t)
	fake := &fakeExtractor{ext: "mp4"}
	orch, _ := NewOrchestrator(fake, cfg)

	for i := 0; i < 3; i++ {
		path := filepath.Join(cfg.ScratchDir, fmt.Sprintf("stale-%d.mp4.part", i))
		if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
			t.Fatalf("write stale file: %v", err)
		}
	}

	if removed := orch.SweepScratch(context.Background()); removed != 3 {
		t.Errorf("expected 3 files swept, got %d", removed)
	}
	assertScratchEmpty(t, cfg.ScratchDir)
}

func TestNewJobUniqueIDs(t *testing.T) {
	a := NewJob(1, 10, "https://youtu.be/dQw4w9WgXcQ", "720")
	b := NewJob(1, 10, "https://youtu.be/dQw4w9WgXcQ", "720")
	if a.JobID == b.JobID {
		t.Error("expected distinct job IDs for identical inputs")
	}
	if a.Status != models.JobStatusPending {
		t.Errorf("expected pending status, got %s", a.Status)
	}
}

func assertScratchEmpty(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read scratch dir: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected empty scratch directory, found %d entries", len(entries))
	}
}

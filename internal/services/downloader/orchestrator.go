package downloader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tubegrab/tubegrab/internal/config"
	"github.com/tubegrab/tubegrab/internal/models"
	"github.com/tubegrab/tubegrab/internal/services/extractor"
	"github.com/tubegrab/tubegrab/internal/utils"
)

// Orchestrator runs download jobs. Concurrency is bounded by a semaphore,
// each job gets its own timeout, and the produced file is scoped to a Result
// whose Close removes it on every exit path.
type Orchestrator struct {
	extractor extractor.Extractor
	config    *config.DownloadConfig
	semaphore chan struct{}
}

func NewOrchestrator(ext extractor.Extractor, cfg *config.DownloadConfig) (*Orchestrator, error) {
	if err := os.MkdirAll(cfg.ScratchDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create scratch directory: %w", err)
	}

	return &Orchestrator{
		extractor: ext,
		config:    cfg,
		semaphore: make(chan struct{}, cfg.MaxConcurrentDownloads),
	}, nil
}

// Result is the scoped output file of a completed job. Callers must Close it
// after delivery; Close is idempotent and removes the file.
type Result struct {
	Path string
	Size int64

	once sync.Once
}

func (r *Result) Close() error {
	var err error
	r.once.Do(func() {
		if removeErr := os.Remove(r.Path); removeErr != nil && !os.IsNotExist(removeErr) {
			err = removeErr
		}
	})
	return err
}

// Run executes one job: acquire a download slot, invoke the extraction
// backend, and hand back the produced file. The job-unique base name is the
// only isolation between concurrent jobs.
func (o *Orchestrator) Run(ctx context.Context, job *models.DownloadJob) (*Result, error) {
	ctx = utils.WithJobID(ctx, job.JobID)
	ctx = utils.WithChatID(ctx, job.ChatID)

	select {
	case o.semaphore <- struct{}{}:
	case <-ctx.Done():
		return nil, utils.NewDownloadError(ctx.Err())
	}
	defer func() { <-o.semaphore }()

	ctx, cancel := context.WithTimeout(ctx, o.config.DownloadTimeout)
	defer cancel()

	job.Status = models.JobStatusProcessing
	utils.LogInfo(ctx, "Starting download job", utils.Fields{
		"selection": job.SelectionKey,
		"url":       job.SourceURL,
	})

	sel, err := extractor.ParseSelection(job.SelectionKey)
	if err != nil {
		return nil, o.fail(ctx, job, err)
	}

	outputBase := filepath.Join(o.config.ScratchDir, job.JobID)
	path, err := o.extractor.Download(ctx, job.SourceURL, sel, outputBase)
	if err != nil {
		o.removeArtifacts(ctx, outputBase)
		return nil, o.fail(ctx, job, err)
	}

	info, err := os.Stat(path)
	if err != nil {
		o.removeArtifacts(ctx, outputBase)
		return nil, o.fail(ctx, job, err)
	}

	if info.Size() > o.config.MaxFileSize {
		os.Remove(path)
		errMsg := fmt.Sprintf("file size %d exceeds limit %d", info.Size(), o.config.MaxFileSize)
		job.Status = models.JobStatusFailed
		job.ErrorMessage = &errMsg
		return nil, utils.NewFileTooLargeError(info.Size(), o.config.MaxFileSize)
	}

	job.Status = models.JobStatusCompleted
	utils.LogInfo(ctx, "Download job completed", utils.Fields{
		"path": path,
		"size": info.Size(),
	})

	return &Result{Path: path, Size: info.Size()}, nil
}

func (o *Orchestrator) fail(ctx context.Context, job *models.DownloadJob, err error) error {
	job.Status = models.JobStatusFailed
	errMsg := err.Error()
	job.ErrorMessage = &errMsg
	utils.LogError(ctx, "Download job failed", err, utils.Fields{
		"selection": job.SelectionKey,
	})
	return utils.NewDownloadError(err)
}

// removeArtifacts clears any partial files a failed job left behind.
func (o *Orchestrator) removeArtifacts(ctx context.Context, outputBase string) {
	matches, err := filepath.Glob(outputBase + ".*")
	if err != nil {
		return
	}
	for _, m := range matches {
		if err := os.Remove(m); err != nil && !os.IsNotExist(err) {
			utils.LogWarn(ctx, "Failed to remove partial download artifact", utils.Fields{
				"path":  m,
				"error": err.Error(),
			})
		}
	}
}

// SweepScratch removes files left over from jobs interrupted by a crash.
// Every file in the scratch directory is orphaned at startup since job
// output is deleted right after delivery.
func (o *Orchestrator) SweepScratch(ctx context.Context) int {
	entries, err := os.ReadDir(o.config.ScratchDir)
	if err != nil {
		utils.LogWarn(ctx, "Failed to read scratch directory", utils.Fields{"error": err.Error()})
		return 0
	}

	removed := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(o.config.ScratchDir, entry.Name())
		if err := os.Remove(path); err != nil {
			utils.LogWarn(ctx, "Failed to remove stale scratch file", utils.Fields{
				"path":  path,
				"error": err.Error(),
			})
			continue
		}
		removed++
	}

	if removed > 0 {
		utils.LogInfo(ctx, "Swept stale scratch files", utils.Fields{"count": removed})
	}
	return removed
}

// NewJob builds a DownloadJob for a button press, stamping a fresh unique ID.
func NewJob(chatID int64, messageID int, sourceURL, selectionKey string) *models.DownloadJob {
	return &models.DownloadJob{
		JobID:        uuid.New().String(),
		ChatID:       chatID,
		MessageID:    messageID,
		SourceURL:    sourceURL,
		SelectionKey: selectionKey,
		Status:       models.JobStatusPending,
		CreatedAt:    time.Now(),
	}
}

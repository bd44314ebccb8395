package models

import "time"

// VideoInfo is derived per link submission from the extraction backend and
// never persisted.
type VideoInfo struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	Author          string `json:"author"`
	DurationSeconds int    `json:"duration_seconds"`
	ThumbnailURL    string `json:"thumbnail_url"`
}

// QualityOption is one entry of the fixed quality/format catalog. The
// selection key is round-tripped opaquely through the inline button payload.
type QualityOption struct {
	Label        string `json:"label"`
	SelectionKey string `json:"selection_key"`
}

type JobStatus string

const (
	JobStatusPending    JobStatus = "pending"
	JobStatusProcessing JobStatus = "processing"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusFailed     JobStatus = "failed"
)

// DownloadJob describes one download-and-deliver operation triggered by a
// single button press. The job ID is embedded in the scratch filename to keep
// concurrent jobs from colliding.
type DownloadJob struct {
	JobID        string    `json:"job_id"`
	ChatID       int64     `json:"chat_id"`
	MessageID    int       `json:"message_id"`
	SourceURL    string    `json:"source_url"`
	SelectionKey string    `json:"selection_key"`
	Status       JobStatus `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	ErrorMessage *string   `json:"error_message,omitempty"`
}

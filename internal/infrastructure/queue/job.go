package queue

import "time"

type JobType string

const (
	JobVideoPublish JobType = "video_publish"
)

// Job is one unit of background work. The file at FilePath belongs to the
// handler once the job is accepted.
type Job struct {
	ID         string
	Type       JobType
	Filename   string
	FilePath   string
	Size       int64
	EnqueuedAt time.Time
}

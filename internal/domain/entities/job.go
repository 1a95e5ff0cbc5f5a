package entities

import (
	"errors"
	"fmt"
	"time"

	consts "media-publisher/pkg/constants"
)

type JobStatus string

const (
	JobQueued     JobStatus = consts.StatusQueued
	JobProcessing JobStatus = consts.StatusProcessing
	JobUploading  JobStatus = consts.StatusUploading
	JobCompleted  JobStatus = consts.StatusCompleted
	JobFailed     JobStatus = consts.StatusFailed
)

var ErrInvalidTransition = errors.New("invalid job status transition")

// allowed lists the forward edges of the video job lifecycle.
var allowed = map[JobStatus][]JobStatus{
	JobQueued:     {JobProcessing, JobFailed},
	JobProcessing: {JobUploading, JobFailed},
	JobUploading:  {JobCompleted, JobFailed},
}

func (s JobStatus) Terminal() bool {
	return s == JobCompleted || s == JobFailed
}

func (s JobStatus) Valid() bool {
	switch s {
	case JobQueued, JobProcessing, JobUploading, JobCompleted, JobFailed:
		return true
	}
	return false
}

func (s JobStatus) CanTransitionTo(next JobStatus) bool {
	for _, to := range allowed[s] {
		if to == next {
			return true
		}
	}
	return false
}

// Job is the registry record of one background video upload.
type Job struct {
	ID              string
	Status          JobStatus
	Message         string
	RemoteReference string
	FileName        string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Transition describes one status change requested by the job's worker.
type Transition struct {
	To              JobStatus
	Message         string
	RemoteReference string
}

func NewJob(id, fileName, message string, now time.Time) *Job {
	return &Job{
		ID:        id,
		Status:    JobQueued,
		Message:   message,
		FileName:  fileName,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Apply moves the job forward. updatedAt always advances, even when the clock
// reports the same instant twice.
func (j *Job) Apply(t Transition, now time.Time) error {
	if !j.Status.CanTransitionTo(t.To) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, j.Status, t.To)
	}
	if t.To == JobCompleted && t.RemoteReference == "" {
		return fmt.Errorf("%w: completed job needs a remote reference", ErrInvalidTransition)
	}

	j.Status = t.To
	j.Message = t.Message
	if t.To == JobCompleted {
		j.RemoteReference = t.RemoteReference
	}
	if !now.After(j.UpdatedAt) {
		now = j.UpdatedAt.Add(time.Microsecond)
	}
	j.UpdatedAt = now
	return nil
}

func (j *Job) Clone() *Job {
	c := *j
	return &c
}

package job

import (
	"fmt"
	"time"

	"github.com/kailas-cloud/docdex/internal/domain"
)

// Status is the lifecycle state of an ingestion job.
type Status string

// Job states. Queued and Processing are transient; Completed and Failed are
// terminal, no further transitions apply.
const (
	StatusQueued     Status = "queued"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// Job tracks one document ingestion through the pipeline (immutable value
// object; transitions return copies).
type Job struct {
	id           string
	ref          domain.DocumentRef
	status       Status
	progress     int
	message      string
	errorMessage string
	createdAt    time.Time
	startedAt    time.Time
	completedAt  time.Time
}

// New validates and creates a queued Job.
func New(id string, ref domain.DocumentRef, now time.Time) (Job, error) {
	if id == "" {
		return Job{}, fmt.Errorf("%w: job ID is required", domain.ErrValidation)
	}
	if err := ref.Validate(); err != nil {
		return Job{}, err
	}
	return Job{id: id, ref: ref, status: StatusQueued, createdAt: now}, nil
}

// Reconstruct creates a Job without validation (storage hydration).
func Reconstruct(
	id string, ref domain.DocumentRef, status Status, progress int,
	message, errorMessage string, createdAt, startedAt, completedAt time.Time,
) Job {
	return Job{
		id: id, ref: ref, status: status, progress: progress,
		message: message, errorMessage: errorMessage,
		createdAt: createdAt, startedAt: startedAt, completedAt: completedAt,
	}
}

// ID returns the job identifier.
func (j Job) ID() string { return j.id }

// Ref returns the document reference the job ingests.
func (j Job) Ref() domain.DocumentRef { return j.ref }

// Status returns the current lifecycle state.
func (j Job) Status() Status { return j.status }

// Progress returns pipeline progress, 0..100.
func (j Job) Progress() int { return j.progress }

// Message returns the latest human-readable stage message.
func (j Job) Message() string { return j.message }

// ErrorMessage returns the failure description, empty unless Failed.
func (j Job) ErrorMessage() string { return j.errorMessage }

// CreatedAt returns the submission time.
func (j Job) CreatedAt() time.Time { return j.createdAt }

// StartedAt returns when processing began, zero while queued.
func (j Job) StartedAt() time.Time { return j.startedAt }

// CompletedAt returns when the job reached a terminal state, zero before.
func (j Job) CompletedAt() time.Time { return j.completedAt }

// IsTerminal reports whether the job reached a final state.
func (j Job) IsTerminal() bool {
	return j.status == StatusCompleted || j.status == StatusFailed
}

// Started returns a copy transitioned to Processing. Terminal jobs are
// returned unchanged.
func (j Job) Started(now time.Time) Job {
	if j.IsTerminal() {
		return j
	}
	j.status = StatusProcessing
	j.startedAt = now
	return j
}

// WithProgress returns a copy with progress advanced. Progress never moves
// backward and terminal jobs never change.
func (j Job) WithProgress(progress int, message string) Job {
	if j.IsTerminal() {
		return j
	}
	if progress > j.progress {
		j.progress = progress
	}
	if message != "" {
		j.message = message
	}
	return j
}

// Completed returns a copy transitioned to Completed with full progress.
func (j Job) Completed(message string, now time.Time) Job {
	if j.IsTerminal() {
		return j
	}
	j.status = StatusCompleted
	j.progress = 100
	j.message = message
	j.completedAt = now
	return j
}

// Failed returns a copy transitioned to Failed. The error message is never
// left empty.
func (j Job) Failed(errorMessage string, now time.Time) Job {
	if j.IsTerminal() {
		return j
	}
	if errorMessage == "" {
		errorMessage = "unknown error"
	}
	j.status = StatusFailed
	j.errorMessage = errorMessage
	j.completedAt = now
	return j
}

package tracker

import (
	"context"
	"time"
)

// Kind identifies the category of research document a generation job produces.
// It is used to route completion notifications and to look up pending work for
// an asset.
type Kind string

const (
	OnePager Kind = "one_pager"
	Memo     Kind = "memo"
)

// Status is the remote state of a generation job as reported by the documents
// backend.
type Status string

const (
	Queued    Status = "queued"
	Running   Status = "running"
	Completed Status = "completed"
	Failed    Status = "failed"
	Cancelled Status = "cancelled"
)

// Terminal reports whether a job in this status will never change again.
func (s Status) Terminal() bool {
	return s == Completed || s == Failed || s == Cancelled
}

// PendingTask is the unit of tracking: one remote generation job that has been
// submitted but not yet resolved. The record is immutable; its disposition is
// carried by the polling loop, not by mutating these fields.
type PendingTask struct {
	// ID is the opaque identifier assigned by the remote job system.
	ID string `json:"task_id"`
	// AssetID is the asset the document is about.
	AssetID int64 `json:"asset_id"`
	// Kind is the document category being generated.
	Kind Kind `json:"kind"`
	// Label is a short human-readable handle (typically the asset symbol),
	// carried for logging only.
	Label string `json:"label"`
	// StartedAt is when the job was first registered. Entries older than the
	// expiry window are dropped on restore.
	StartedAt time.Time `json:"started_at"`
}

// StatusResult is the outcome of one status check against the backend.
// ArtifactRef is only meaningful when Status is Completed.
type StatusResult struct {
	Status      Status
	ArtifactRef string
}

// StatusResolver asks the remote system for the current status of a job.
// Any returned error is treated as transient: the tracker keeps polling.
type StatusResolver interface {
	CheckStatus(ctx context.Context, taskID string) (StatusResult, error)
}

// ResultCommitter persists a completed artifact into the system of record.
// The tracker invokes it at most once per task; the remote side is expected
// to be idempotent. A commit error is logged and the task is still resolved.
type ResultCommitter interface {
	CommitResult(ctx context.Context, task PendingTask, artifactRef string) error
}

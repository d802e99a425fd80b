package kafka

import (
	"time"

	"github.com/google/uuid"
)

// Job types handled by the async workers. Handlers are expected to be
// idempotent; the queue delivers at least once.
const (
	JobCreateActivities = "post.create_activities"
	JobNotifyExternal   = "post.notify_external"
)

type Job struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	PostID     uint64    `json:"post_id"`
	EnqueuedAt time.Time `json:"enqueued_at"`
}

func NewJob(jobType string, postID uint64) Job {
	return Job{
		ID:         uuid.NewString(),
		Type:       jobType,
		PostID:     postID,
		EnqueuedAt: time.Now().UTC(),
	}
}

// Package queue moves background jobs from the API to the workers
package queue

import (
	"context"
	"errors"
)

const (
	TypeThumbnail = "thumbnail:generate"
	TypeWelcome   = "user:welcome"
)

// ErrSkipRetry tells the queue that a job failed for good and must not be
// attempted again
var ErrSkipRetry = errors.New("skip retry")

// ErrFull is returned by the local queue when no more jobs can be buffered
var ErrFull = errors.New("job queue full")

// ThumbnailJob asks for the thumbnails of an image file
type ThumbnailJob struct {
	FileID string `json:"fileId"`
	UserID string `json:"userId"`
}

// WelcomeJob is sent once a user registers
type WelcomeJob struct {
	UserID string `json:"userId"`
}

type Enqueuer interface {
	EnqueueThumbnail(ctx context.Context, job ThumbnailJob) error
	EnqueueWelcome(ctx context.Context, job WelcomeJob) error
}

// Handlers process jobs. A nil handler drops jobs of its type.
type Handlers struct {
	Thumbnail func(ctx context.Context, job ThumbnailJob) error
	Welcome   func(ctx context.Context, job WelcomeJob) error
}

type Consumer interface {
	Start(h Handlers) error
	Shutdown()
}

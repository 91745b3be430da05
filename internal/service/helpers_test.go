package service

import (
	"context"
	"sync"
	"testing"

	"bitwise74/files-api/db"
	"bitwise74/files-api/internal/blob"
	"bitwise74/files-api/internal/queue"
	"bitwise74/files-api/internal/store"
	"bitwise74/files-api/pkg/security"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// recorder is an Enqueuer keeping every job in memory
type recorder struct {
	mu         sync.Mutex
	thumbnails []queue.ThumbnailJob
	welcomes   []queue.WelcomeJob
	err        error
}

func (r *recorder) EnqueueThumbnail(_ context.Context, job queue.ThumbnailJob) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.err != nil {
		return r.err
	}

	r.thumbnails = append(r.thumbnails, job)
	return nil
}

func (r *recorder) EnqueueWelcome(_ context.Context, job queue.WelcomeJob) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.err != nil {
		return r.err
	}

	r.welcomes = append(r.welcomes, job)
	return nil
}

type env struct {
	store store.Store
	blobs *blob.Local
	queue *recorder
	users *Users
	files *Files
	thumb *Thumbnails
}

func fastArgon() *security.ArgonHash {
	return &security.ArgonHash{
		Memory:      1024,
		Iterations:  1,
		Parallelism: 1,
		SaltLength:  16,
		KeyLength:   32,
	}
}

func newEnv(t *testing.T) *env {
	t.Helper()

	conn, err := db.New("sqlite", "file:"+uuid.NewString()+"?mode=memory&cache=shared")
	require.NoError(t, err)

	s := store.NewGorm(conn)
	t.Cleanup(func() { s.Close() })

	blobs, err := blob.NewLocal(t.TempDir())
	require.NoError(t, err)

	q := &recorder{}

	return &env{
		store: s,
		blobs: blobs,
		queue: q,
		users: NewUsers(s, fastArgon(), q),
		files: NewFiles(s, blobs, q),
		thumb: NewThumbnails(s, blobs),
	}
}

func strPtr(s string) *string {
	return &s
}

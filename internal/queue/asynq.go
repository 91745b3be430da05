package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// RedisOptions points the asynq client and server at Redis
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
}

func (o RedisOptions) clientOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     o.Addr,
		Password: o.Password,
		DB:       o.DB,
	}
}

// Client enqueues durable jobs in Redis
type Client struct {
	c        *asynq.Client
	maxRetry int
}

func NewClient(opts RedisOptions, maxRetry int) *Client {
	return &Client{
		c:        asynq.NewClient(opts.clientOpt()),
		maxRetry: maxRetry,
	}
}

func (c *Client) enqueue(ctx context.Context, kind string, payload any) error {
	b, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal %s payload, %w", kind, err)
	}

	info, err := c.c.EnqueueContext(ctx, asynq.NewTask(kind, b), asynq.MaxRetry(c.maxRetry))
	if err != nil {
		return fmt.Errorf("failed to enqueue %s job, %w", kind, err)
	}

	zap.L().Debug("New job enqueued", zap.String("type", kind), zap.String("task_id", info.ID))
	return nil
}

func (c *Client) EnqueueThumbnail(ctx context.Context, job ThumbnailJob) error {
	return c.enqueue(ctx, TypeThumbnail, job)
}

func (c *Client) EnqueueWelcome(ctx context.Context, job WelcomeJob) error {
	return c.enqueue(ctx, TypeWelcome, job)
}

func (c *Client) Close() error {
	return c.c.Close()
}

// Server runs the job handlers against Redis
type Server struct {
	srv *asynq.Server
}

func NewServer(opts RedisOptions, workers int) *Server {
	return &Server{
		srv: asynq.NewServer(opts.clientOpt(), asynq.Config{
			Concurrency: workers,
			Logger:      zap.S().Named("asynq"),
			ErrorHandler: asynq.ErrorHandlerFunc(func(_ context.Context, task *asynq.Task, err error) {
				zap.L().Error("Job finished with an error", zap.String("type", task.Type()), zap.Error(err))
			}),
		}),
	}
}

func (s *Server) Start(h Handlers) error {
	return s.srv.Start(NewMux(h))
}

func (s *Server) Shutdown() {
	s.srv.Shutdown()
}

// NewMux routes asynq tasks to h
func NewMux(h Handlers) *asynq.ServeMux {
	mux := asynq.NewServeMux()

	mux.HandleFunc(TypeThumbnail, func(ctx context.Context, t *asynq.Task) error {
		var job ThumbnailJob
		if err := json.Unmarshal(t.Payload(), &job); err != nil {
			return fmt.Errorf("malformed thumbnail payload, %v: %w", err, asynq.SkipRetry)
		}

		if h.Thumbnail == nil {
			return nil
		}

		return skipRetry(h.Thumbnail(ctx, job))
	})

	mux.HandleFunc(TypeWelcome, func(ctx context.Context, t *asynq.Task) error {
		var job WelcomeJob
		if err := json.Unmarshal(t.Payload(), &job); err != nil {
			return fmt.Errorf("malformed welcome payload, %v: %w", err, asynq.SkipRetry)
		}

		if h.Welcome == nil {
			return nil
		}

		return skipRetry(h.Welcome(ctx, job))
	})

	return mux
}

func skipRetry(err error) error {
	if errors.Is(err, ErrSkipRetry) {
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}

	return err
}

var (
	_ Enqueuer = (*Client)(nil)
	_ Enqueuer = (*Local)(nil)
	_ Consumer = (*Server)(nil)
	_ Consumer = (*Local)(nil)
)

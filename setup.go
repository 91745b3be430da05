package main

import (
	"context"
	"fmt"
	"time"

	"bitwise74/files-api/aws"
	"bitwise74/files-api/db"
	"bitwise74/files-api/internal"
	"bitwise74/files-api/internal/blob"
	"bitwise74/files-api/internal/kv"
	"bitwise74/files-api/internal/queue"
	"bitwise74/files-api/internal/service"
	"bitwise74/files-api/internal/store"
	"bitwise74/files-api/pkg/security"

	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type services struct {
	deps       *internal.Deps
	thumbnails *service.Thumbnails
	consumer   queue.Consumer
	closers    []func() error
}

func (s *services) close() {
	// Reverse order of creation
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			zap.L().Warn("Failed to close dependency", zap.Error(err))
		}
	}
}

func setup(ctx context.Context) (*services, error) {
	s := &services{}

	ok := false
	defer func() {
		if !ok {
			s.close()
		}
	}()

	metadata, err := newStore(ctx)
	if err != nil {
		return nil, err
	}
	s.closers = append(s.closers, metadata.Close)

	sessionsKV, err := newKV()
	if err != nil {
		return nil, err
	}
	s.closers = append(s.closers, sessionsKV.Close)

	blobs, err := newBlobStore(ctx)
	if err != nil {
		return nil, err
	}

	enqueuer, consumer := newQueue()
	s.consumer = consumer
	if c, isClient := enqueuer.(*queue.Client); isClient {
		s.closers = append(s.closers, c.Close)
	}

	s.deps = &internal.Deps{
		Store:    metadata,
		KV:       sessionsKV,
		Sessions: service.NewSessions(sessionsKV, time.Duration(viper.GetInt("session.ttl"))*time.Second),
		Users:    service.NewUsers(metadata, security.New(), enqueuer),
		Files:    service.NewFiles(metadata, blobs, enqueuer),
	}
	s.thumbnails = service.NewThumbnails(metadata, blobs)

	ok = true
	return s, nil
}

func newStore(ctx context.Context) (store.Store, error) {
	driver := viper.GetString("metadata.driver")

	if driver == "mongo" {
		uri := fmt.Sprintf("mongodb://%s:%d", viper.GetString("mongo.host"), viper.GetInt("mongo.port"))

		m, err := store.NewMongo(ctx, uri, viper.GetString("mongo.database"))
		if err != nil {
			return nil, fmt.Errorf("failed to initialize metadata store, %w", err)
		}

		return m, nil
	}

	conn, err := db.New(driver, viper.GetString("metadata.dsn"))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize metadata store, %w", err)
	}

	return store.NewGorm(conn), nil
}

func newKV() (kv.Store, error) {
	if viper.GetString("session.driver") == "memory" {
		zap.L().Warn("Sessions are kept in memory and won't survive a restart")
		return kv.NewMemory(), nil
	}

	r, err := kv.NewRedis(kv.RedisOptions{
		Addr:     viper.GetString("redis.addr"),
		Password: viper.GetString("redis.password"),
		DB:       viper.GetInt("redis.db"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize session store, %w", err)
	}

	return r, nil
}

func newBlobStore(ctx context.Context) (blob.Store, error) {
	if viper.GetString("storage.type") == "local" {
		return blob.NewLocal(viper.GetString("storage.folder_path"))
	}

	client, err := aws.NewS3(ctx, aws.S3Options{
		Bucket:          viper.GetString("s3.bucket"),
		Region:          viper.GetString("s3.region"),
		AccessKeyID:     viper.GetString("s3.access_key_id"),
		SecretAccessKey: viper.GetString("s3.secret_access_key"),
		Endpoint:        viper.GetString("s3.endpoint"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize S3 client, %w", err)
	}

	return blob.NewS3(client, ""), nil
}

func newQueue() (queue.Enqueuer, queue.Consumer) {
	workers := viper.GetInt("queue.workers")
	maxRetry := viper.GetInt("queue.max_retry")

	if viper.GetString("queue.driver") == "local" {
		q := queue.NewLocal(workers, viper.GetInt("queue.max_jobs"), maxRetry)
		return q, q
	}

	opts := queue.RedisOptions{
		Addr:     viper.GetString("redis.addr"),
		Password: viper.GetString("redis.password"),
		DB:       viper.GetInt("redis.db"),
	}

	return queue.NewClient(opts, maxRetry), queue.NewServer(opts, workers)
}

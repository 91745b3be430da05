package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"

	"bitwise74/files-api/internal/blob"
	"bitwise74/files-api/internal/model"
	"bitwise74/files-api/internal/queue"
	"bitwise74/files-api/internal/store"

	"github.com/disintegration/imaging"
	"go.uber.org/zap"
)

// Thumbnails derives resized variants of uploaded images
type Thumbnails struct {
	store store.Files
	blobs blob.Store
}

func NewThumbnails(s store.Files, b blob.Store) *Thumbnails {
	return &Thumbnails{
		store: s,
		blobs: b,
	}
}

// Handle generates every width of model.ThumbnailWidths for the job's file.
// Widths are independent, a failing one is logged and the others still run.
// Jobs that can never succeed wrap queue.ErrSkipRetry.
func (t *Thumbnails) Handle(ctx context.Context, job queue.ThumbnailJob) error {
	if job.FileID == "" {
		return fmt.Errorf("missing fileId, %w", queue.ErrSkipRetry)
	}

	if job.UserID == "" {
		return fmt.Errorf("missing userId, %w", queue.ErrSkipRetry)
	}

	file, err := t.store.FileByOwner(ctx, job.FileID, job.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("file not found, %w", queue.ErrSkipRetry)
		}

		return fmt.Errorf("failed to fetch file, %w", err)
	}

	if file.LocalPath == "" {
		return fmt.Errorf("file has no content, %w", queue.ErrSkipRetry)
	}

	data, err := t.blobs.Read(ctx, file.LocalPath)
	if err != nil {
		return fmt.Errorf("failed to read source image, %w", err)
	}

	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to detect image format, %v: %w", err, queue.ErrSkipRetry)
	}

	src, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return fmt.Errorf("failed to decode image, %v: %w", err, queue.ErrSkipRetry)
	}

	outFormat, err := imaging.FormatFromExtension(format)
	if err != nil {
		outFormat = imaging.JPEG
	}

	for _, width := range model.ThumbnailWidths {
		if err := t.generate(ctx, file, src, outFormat, width); err != nil {
			zap.L().Error("Failed to generate thumbnail",
				zap.String("file_id", file.ID),
				zap.String("user_id", file.UserID),
				zap.Int("width", width),
				zap.Error(err))
			continue
		}

		zap.L().Debug("Thumbnail generated", zap.String("file_id", file.ID), zap.Int("width", width))
	}

	return nil
}

func (t *Thumbnails) generate(ctx context.Context, file *model.File, src image.Image, format imaging.Format, width int) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic while resizing, %v", r)
		}
	}()

	dst := imaging.Resize(src, width, 0, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, dst, format); err != nil {
		return fmt.Errorf("failed to encode thumbnail, %w", err)
	}

	return t.blobs.WriteAt(ctx, file.VariantPath(width), buf.Bytes())
}

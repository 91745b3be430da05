package service

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"path/filepath"
	"time"

	"bitwise74/files-api/internal/blob"
	"bitwise74/files-api/internal/model"
	"bitwise74/files-api/internal/queue"
	"bitwise74/files-api/internal/store"
	"bitwise74/files-api/pkg/util"
	"bitwise74/files-api/pkg/validators"

	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"
)

var (
	errParentNotFound  = errors.New("Parent not found")
	errParentNotFolder = errors.New("Parent is not a folder")
	errInvalidSize     = errors.New("Invalid size")
)

// CreateFileInput is the body of a new file or folder. Data is the base64
// encoded content and is ignored for folders.
type CreateFileInput struct {
	Name     string         `json:"name"`
	Type     model.FileType `json:"type"`
	ParentID model.ParentID `json:"parentId"`
	IsPublic bool           `json:"isPublic"`
	Data     *string        `json:"data"`
}

// Content is the raw payload of a file and its inferred content type
type Content struct {
	Data        []byte
	ContentType string
}

type Files struct {
	store store.Files
	blobs blob.Store
	queue queue.Enqueuer
}

func NewFiles(s store.Files, b blob.Store, q queue.Enqueuer) *Files {
	return &Files{
		store: s,
		blobs: b,
		queue: q,
	}
}

// Create validates in and stores a new record owned by userID. Content is
// written before the record is inserted so a record never points to a
// missing blob.
func (f *Files) Create(ctx context.Context, userID string, in CreateFileInput) (*model.File, error) {
	if err := validators.FileValidator(in.Name, in.Type, in.Data); err != nil {
		return nil, invalid(err)
	}

	// Any user may target any existing folder as parent
	if !in.ParentID.IsRoot() {
		if !util.ValidID(in.ParentID.ID()) {
			return nil, invalid(errParentNotFound)
		}

		parent, err := f.store.FileByID(ctx, in.ParentID.ID())
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return nil, invalid(errParentNotFound)
			}

			return nil, fmt.Errorf("failed to fetch parent, %w", err)
		}

		if !parent.IsFolder() {
			return nil, invalid(errParentNotFolder)
		}
	}

	id, err := util.NewID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate file id, %w", err)
	}

	file := &model.File{
		ID:        id,
		UserID:    userID,
		Name:      in.Name,
		Type:      in.Type,
		ParentID:  in.ParentID,
		IsPublic:  in.IsPublic,
		CreatedAt: time.Now().UnixMilli(),
	}

	if file.IsFolder() {
		if err := f.store.InsertFile(ctx, file); err != nil {
			return nil, fmt.Errorf("failed to insert folder, %w", err)
		}

		return file, nil
	}

	data, err := validators.DecodeData(*in.Data)
	if err != nil {
		return nil, invalid(err)
	}

	file.LocalPath, err = f.blobs.Write(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("failed to write blob, %w", err)
	}

	if err := f.store.InsertFile(ctx, file); err != nil {
		if rmErr := f.blobs.Remove(context.WithoutCancel(ctx), file.LocalPath); rmErr != nil {
			zap.L().Error("Failed to cleanup blob after failed insert", zap.String("path", file.LocalPath), zap.Error(rmErr))
		}

		return nil, fmt.Errorf("failed to insert file, %w", err)
	}

	if file.Type == model.TypeImage {
		err := f.queue.EnqueueThumbnail(ctx, queue.ThumbnailJob{FileID: file.ID, UserID: userID})
		if err != nil {
			zap.L().Error("Failed to enqueue thumbnail job",
				zap.String("file_id", file.ID),
				zap.String("user_id", userID),
				zap.Error(err))
		}
	}

	return file, nil
}

// owned returns the record if userID owns it. Foreign and missing records
// are both ErrNotFound.
func (f *Files) owned(ctx context.Context, userID, id string) (*model.File, error) {
	if !util.ValidID(id) {
		return nil, ErrNotFound
	}

	file, err := f.store.FileByOwner(ctx, id, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("failed to fetch file, %w", err)
	}

	return file, nil
}

// Show returns a record owned by userID. Public records of other users are
// not shown.
func (f *Files) Show(ctx context.Context, userID, id string) (*model.File, error) {
	return f.owned(ctx, userID, id)
}

// Index lists one page of the records owned by userID under parent. Negative
// pages are treated as the first one.
func (f *Files) Index(ctx context.Context, userID string, parent model.ParentID, page int) ([]model.File, error) {
	if page < 0 {
		page = 0
	}

	entries, err := f.store.FilesByParent(ctx, userID, parent, page, store.PageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list files, %w", err)
	}

	if entries == nil {
		entries = []model.File{}
	}

	return entries, nil
}

// SetVisibility publishes or unpublishes a record owned by userID
func (f *Files) SetVisibility(ctx context.Context, userID, id string, public bool) (*model.File, error) {
	file, err := f.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if !CanWrite(userID, file) {
		return nil, ErrNotFound
	}

	if err := f.store.UpdateVisibility(ctx, file.ID, public); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("failed to update file, %w", err)
	}

	file.IsPublic = public
	return file, nil
}

// Content returns the payload of a record readable by requesterID, who may
// be empty for anonymous callers. A non-zero size selects a thumbnail.
// Private records of other users are reported as ErrNotFound.
func (f *Files) Content(ctx context.Context, requesterID, id string, size int) (*Content, error) {
	if size != 0 && !model.ValidThumbnailWidth(size) {
		return nil, invalid(errInvalidSize)
	}

	if !util.ValidID(id) {
		return nil, ErrNotFound
	}

	file, err := f.store.FileByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("failed to fetch file, %w", err)
	}

	if !CanRead(requesterID, file) {
		return nil, ErrNotFound
	}

	if file.IsFolder() {
		return nil, ErrFolderNoContent
	}

	p := file.LocalPath
	if size != 0 {
		p = file.VariantPath(size)
	}

	if p == "" {
		return nil, ErrNotFound
	}

	ok, err := f.blobs.Exists(ctx, p)
	if err != nil {
		zap.L().Error("Failed to check blob", zap.String("file_id", file.ID), zap.Error(err))
		return nil, ErrNotFound
	}

	if !ok {
		return nil, ErrNotFound
	}

	data, err := f.blobs.Read(ctx, p)
	if err != nil {
		if !errors.Is(err, blob.ErrNotFound) {
			zap.L().Error("Failed to read blob", zap.String("file_id", file.ID), zap.Error(err))
		}

		return nil, ErrNotFound
	}

	return &Content{
		Data:        data,
		ContentType: contentType(file.Name, data),
	}, nil
}

// contentType infers the type from the name's extension, falling back to
// sniffing the payload
func contentType(name string, data []byte) string {
	if ct := mime.TypeByExtension(filepath.Ext(name)); ct != "" {
		return ct
	}

	return mimetype.Detect(data).String()
}

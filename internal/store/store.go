// Package store persists users and file metadata
package store

import (
	"context"
	"errors"

	"bitwise74/files-api/internal/model"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("record already exists")
)

// PageSize is the number of records returned by one FilesByParent page
const PageSize = 20

type Users interface {
	// CreateUser inserts u. The store enforces email uniqueness and returns
	// ErrDuplicate when the email is taken.
	CreateUser(ctx context.Context, u *model.User) error
	UserByEmail(ctx context.Context, email string) (*model.User, error)
	UserByID(ctx context.Context, id string) (*model.User, error)
	CountUsers(ctx context.Context) (int64, error)
}

type Files interface {
	InsertFile(ctx context.Context, f *model.File) error
	// FileByID looks a record up regardless of its owner
	FileByID(ctx context.Context, id string) (*model.File, error)
	// FileByOwner only matches a record with both id and userID
	FileByOwner(ctx context.Context, id, userID string) (*model.File, error)
	// FilesByParent returns page p of the records owned by userID under
	// parent, in insertion order. The root parent matches literally.
	FilesByParent(ctx context.Context, userID string, parent model.ParentID, page, pageSize int) ([]model.File, error)
	UpdateVisibility(ctx context.Context, id string, isPublic bool) error
	CountFiles(ctx context.Context) (int64, error)
}

// Store is the metadata store used by the services
type Store interface {
	Users
	Files
	Ping(ctx context.Context) error
	Close() error
}

var (
	_ Store = (*Gorm)(nil)
	_ Store = (*Mongo)(nil)
)

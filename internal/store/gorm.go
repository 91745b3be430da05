package store

import (
	"context"
	"errors"
	"fmt"

	"bitwise74/files-api/internal/model"

	"gorm.io/gorm"
)

// Gorm is a Store on top of SQLite or Postgres
type Gorm struct {
	db *gorm.DB
}

// NewGorm wraps an opened database, see db.New
func NewGorm(db *gorm.DB) *Gorm {
	return &Gorm{db: db}
}

func (g *Gorm) CreateUser(ctx context.Context, u *model.User) error {
	err := g.db.WithContext(ctx).Create(u).Error
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicate
	}

	// Not every driver translates constraint errors, the unique index is
	// what rejected the insert if the email now exists
	if _, lookupErr := g.UserByEmail(ctx, u.Email); lookupErr == nil {
		return ErrDuplicate
	}

	return fmt.Errorf("failed to create user, %w", err)
}

func (g *Gorm) UserByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User

	err := g.db.WithContext(ctx).
		Where("email = ?", email).
		First(&u).
		Error
	if err != nil {
		return nil, translate(err)
	}

	return &u, nil
}

func (g *Gorm) UserByID(ctx context.Context, id string) (*model.User, error) {
	var u model.User

	err := g.db.WithContext(ctx).
		Where("id = ?", id).
		First(&u).
		Error
	if err != nil {
		return nil, translate(err)
	}

	return &u, nil
}

func (g *Gorm) CountUsers(ctx context.Context) (int64, error) {
	var n int64
	err := g.db.WithContext(ctx).Model(model.User{}).Count(&n).Error
	return n, err
}

func (g *Gorm) InsertFile(ctx context.Context, f *model.File) error {
	return g.db.WithContext(ctx).Create(f).Error
}

func (g *Gorm) FileByID(ctx context.Context, id string) (*model.File, error) {
	var f model.File

	err := g.db.WithContext(ctx).
		Where("id = ?", id).
		First(&f).
		Error
	if err != nil {
		return nil, translate(err)
	}

	return &f, nil
}

func (g *Gorm) FileByOwner(ctx context.Context, id, userID string) (*model.File, error) {
	var f model.File

	err := g.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&f).
		Error
	if err != nil {
		return nil, translate(err)
	}

	return &f, nil
}

func (g *Gorm) FilesByParent(ctx context.Context, userID string, parent model.ParentID, page, pageSize int) ([]model.File, error) {
	entries := []model.File{}

	err := g.db.WithContext(ctx).
		Where("user_id = ? AND parent_id = ?", userID, parent).
		Order("seq asc").
		Offset(page * pageSize).
		Limit(pageSize).
		Find(&entries).
		Error
	if err != nil {
		return nil, err
	}

	return entries, nil
}

func (g *Gorm) UpdateVisibility(ctx context.Context, id string, isPublic bool) error {
	r := g.db.WithContext(ctx).
		Model(model.File{}).
		Where("id = ?", id).
		Update("is_public", isPublic)
	if r.Error != nil {
		return r.Error
	}

	// Postgres reports 0 rows when the value didn't change, so only a
	// missing row is an error
	if r.RowsAffected == 0 {
		if _, err := g.FileByID(ctx, id); err != nil {
			return err
		}
	}

	return nil
}

func (g *Gorm) CountFiles(ctx context.Context) (int64, error) {
	var n int64
	err := g.db.WithContext(ctx).Model(model.File{}).Count(&n).Error
	return n, err
}

func (g *Gorm) Ping(ctx context.Context) error {
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}

	return sqlDB.PingContext(ctx)
}

func (g *Gorm) Close() error {
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}

	return sqlDB.Close()
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}

	return err
}

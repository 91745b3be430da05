// Package model defines database models
package model

// FileType is the kind of a file record
type FileType string

const (
	TypeFolder FileType = "folder"
	TypeFile   FileType = "file"
	TypeImage  FileType = "image"
)

// Valid reports whether t is one of the known file types
func (t FileType) Valid() bool {
	switch t {
	case TypeFolder, TypeFile, TypeImage:
		return true
	}

	return false
}

// File is the metadata of a folder, file or image owned by a user.
// Seq only exists to keep listings in insertion order.
type File struct {
	Seq       uint64   `gorm:"primaryKey;autoIncrement" json:"-"`
	ID        string   `gorm:"uniqueIndex;size:32;not null" json:"id"`
	UserID    string   `gorm:"index:idx_files_owner_parent;size:32;not null" json:"userId"`
	Name      string   `gorm:"not null" json:"name"`
	Type      FileType `gorm:"size:16;not null" json:"type"`
	ParentID  ParentID `gorm:"index:idx_files_owner_parent;size:32;not null" json:"parentId"`
	IsPublic  bool     `gorm:"not null;default:false" json:"isPublic"`
	LocalPath string   `json:"-"` // Empty for folders
	CreatedAt int64    `gorm:"not null" json:"-"`
}

// IsFolder reports whether the record is a folder
func (f *File) IsFolder() bool {
	return f.Type == TypeFolder
}

// VariantPath returns the blob path of a derived thumbnail of the given width
func (f *File) VariantPath(width int) string {
	return VariantPath(f.LocalPath, width)
}

package service

import "bitwise74/files-api/internal/model"

// CanRead reports whether requesterID may read f. An empty requesterID is an
// anonymous caller.
func CanRead(requesterID string, f *model.File) bool {
	if f.IsPublic {
		return true
	}

	return requesterID != "" && requesterID == f.UserID
}

// CanWrite reports whether requesterID may modify f. Only owners can.
func CanWrite(requesterID string, f *model.File) bool {
	return requesterID != "" && requesterID == f.UserID
}

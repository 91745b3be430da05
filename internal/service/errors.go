package service

import "errors"

var (
	ErrUnauthorized    = errors.New("Unauthorized")
	ErrNotFound        = errors.New("Not found")
	ErrConflict        = errors.New("Already exist")
	ErrFolderNoContent = errors.New("A folder doesn't have content")
)

// ValidationError is a client error whose message is returned as is
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func invalid(err error) error {
	return &ValidationError{Msg: err.Error()}
}

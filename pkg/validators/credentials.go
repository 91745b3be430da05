// Package validators contains validators found throughout the application
// that have been abstracted away from the main code. Error messages are
// returned to clients as is.
package validators

import (
	"errors"
	"net/mail"
)

var (
	ErrEmailEmpty    = errors.New("Missing email")
	ErrEmailInvalid  = errors.New("Invalid email")
	ErrPasswordEmpty = errors.New("Missing password")
)

func EmailValidator(e string) error {
	if e == "" {
		return ErrEmailEmpty
	}

	addr, err := mail.ParseAddress(e)
	if err != nil || addr.Address != e {
		return ErrEmailInvalid
	}

	return nil
}

func PasswordValidator(p string) error {
	if p == "" {
		return ErrPasswordEmpty
	}

	return nil
}

// Package util contains any functions used across the application that don't match
// any other package
package util

import (
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	idCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	IDLength  = 16
)

// NewID generates a random identifier for users and files
func NewID() (string, error) {
	return gonanoid.Generate(idCharset, IDLength)
}

// ValidID reports whether s could have been generated by NewID
func ValidID(s string) bool {
	if len(s) != IDLength {
		return false
	}

	for i := 0; i < len(s); i++ {
		c := s[i]
		if !(c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9') {
			return false
		}
	}

	return true
}

package utils

import (
	"github.com/google/uuid"
)

// NewID returns a random identifier used for users, projects and token ids.
func NewID() string {
	return uuid.NewString()
}

// IsID reports whether s has the shape produced by NewID.
func IsID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil && len(s) == 36
}

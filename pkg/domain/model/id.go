package model

import "github.com/google/uuid"

// NewID returns a random identifier for a stored record
func NewID() string {
	return uuid.New().String()
}

package logic

import "errors"

// Sentinel errors mapped onto HTTP statuses at the controller boundary.
var (
	// ErrEmptyMessage rejects a submit with neither text nor an image.
	ErrEmptyMessage = errors.New("message is required")
	// ErrAuthRequired marks operations that need a caller identity.
	ErrAuthRequired = errors.New("authentication required")
	// ErrForbidden marks an ownership mismatch on an owned conversation.
	ErrForbidden = errors.New("unauthorized access to conversation")
	// ErrNotFound marks a missing conversation.
	ErrNotFound = errors.New("conversation not found")
)

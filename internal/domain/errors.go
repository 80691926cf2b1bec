package domain

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrInvalidCoordinate = errors.New("invalid coordinate")

	// Device position failures. Each maps to a distinct user-facing message
	// in the near-me tracker.
	ErrPermissionDenied    = errors.New("position: permission denied")
	ErrPositionUnavailable = errors.New("position: unavailable")
	ErrPositionTimeout     = errors.New("position: timeout")
)

package notification

import "errors"

// Notification domain errors
var (
	ErrInvalidFactType = errors.New("invalid fact type")
	ErrQueueFull       = errors.New("fact queue is full")
)

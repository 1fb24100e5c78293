package utils

import "errors"

var (
	ErrSubscriberNotFound = errors.New("subscriber not found")
	ErrCompanyNotFound    = errors.New("company not found")
	ErrMessageNotFound    = errors.New("cadence message not found")
	ErrInvalidPayload     = errors.New("invalid webhook payload")
	ErrInvalidPhone       = errors.New("invalid phone number")
	ErrInvalidStatus      = errors.New("invalid status transition")
	ErrInvalidOrdering    = errors.New("reorder must list every active message exactly once")
	ErrUpstreamFailure    = errors.New("upstream provider request failed")
	ErrQueueFull          = errors.New("dispatch queue full")
	ErrDatabaseError      = errors.New("database error")
)

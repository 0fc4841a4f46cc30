package model

import "errors"

// Common errors used across the application
var (
	// Member errors
	ErrMemberNotFound    = errors.New("member not found")
	ErrDependentNotFound = errors.New("dependent not found")
	ErrNotHousehold      = errors.New("participant is not in the member's household")

	// Group errors
	ErrGroupNotFound = errors.New("group not found")
	ErrGroupInactive = errors.New("group is not active")
	ErrNotGroupOwner = errors.New("only the group's creator can do this")

	// Attendance errors
	ErrInvalidParticipant = errors.New("invalid participant identifier")
	ErrEmptyBatch         = errors.New("no participants given")

	// Transport errors
	ErrServiceUnavailable = errors.New("attendance service unavailable")
)

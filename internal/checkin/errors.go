package checkin

import "errors"

var (
	// ErrInvalidContext means the group is missing or not the active one; nothing was sent
	ErrInvalidContext = errors.New("invalid group context")
	// ErrFetchFailed means the authoritative roster could not be obtained
	ErrFetchFailed = errors.New("failed to fetch roster")
	// ErrMutationFailed wraps the cause of a failed check-in or check-out batch
	ErrMutationFailed = errors.New("check-in batch failed")
	// ErrCycleInProgress is returned when a commit for the same group is already running
	ErrCycleInProgress = errors.New("reconciliation already in progress for group")
	// ErrContextChanged means the active group changed mid-cycle and the results were dropped
	ErrContextChanged = errors.New("group context changed during reconciliation")
	// ErrUnknownParticipant is returned when toggling an id the session does not know
	ErrUnknownParticipant = errors.New("unknown participant")
)

package checkin

import (
	"context"

	"github.com/mcoot/assemblie-checkin/internal/model"
)

// AttendanceService is the remote source of truth for who is checked in today.
// Implementations return model.ErrServiceUnavailable or model.ErrGroupNotFound
// (possibly wrapped) on failure.
type AttendanceService interface {
	FetchRoster(ctx context.Context, group model.GroupCode) (*model.Roster, error)
	CheckIn(ctx context.Context, group model.GroupCode, members []model.MemberID, dependents []model.DependentID) error
	CheckOut(ctx context.Context, group model.GroupCode, members []model.MemberID, dependents []model.DependentID) error
}

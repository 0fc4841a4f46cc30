package attendance

import (
	"context"

	"github.com/mcoot/assemblie-checkin/internal/model"
)

// MemberView is the attendance service as seen by one signed-in member.
// It has the same shape as the HTTP client, so a check-in session can run in-process.
type MemberView struct {
	service *Service
	member  model.MemberID
}

// ForMember binds the service to member
func (s *Service) ForMember(member model.MemberID) *MemberView {
	return &MemberView{service: s, member: member}
}

func (v *MemberView) FetchRoster(ctx context.Context, group model.GroupCode) (*model.Roster, error) {
	return v.service.Roster(ctx, v.member, group)
}

func (v *MemberView) CheckIn(ctx context.Context, group model.GroupCode, members []model.MemberID, dependents []model.DependentID) error {
	return v.service.CheckIn(ctx, v.member, group, members, dependents)
}

func (v *MemberView) CheckOut(ctx context.Context, group model.GroupCode, members []model.MemberID, dependents []model.DependentID) error {
	return v.service.CheckOut(ctx, v.member, group, members, dependents)
}

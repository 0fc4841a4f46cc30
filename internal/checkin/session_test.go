package checkin

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/assemblie-checkin/internal/model"
	"github.com/mcoot/assemblie-checkin/internal/testutil"
)

type SessionSuite struct {
	suite.Suite
	service *fakeService
	session *Session
	ctx     context.Context
}

func TestSessionSuite(t *testing.T) {
	suite.Run(t, new(SessionSuite))
}

func (s *SessionSuite) SetupTest() {
	s.service = newFakeService()
	s.session = NewSession(s.service, "m_u1", []model.DependentID{"d_d1", "d_d2"}, testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *SessionSuite) TestSwitchGroupSeedsSelectionFromRoster() {
	s.service.seed([]model.MemberID{"m_u1"}, []model.DependentID{"d_d2"})

	r, err := s.session.SwitchGroup(s.ctx, testGroup)
	s.Require().NoError(err)

	s.Equal(testGroup, s.session.ActiveGroup())
	s.True(r.Members.Has("m_u1"))
	sel := s.session.Selection()
	s.True(sel.PrimarySelected)
	s.Equal([]model.DependentID{"d_d2"}, sel.Dependents)
}

func (s *SessionSuite) TestSwitchGroupRequiresGroup() {
	_, err := s.session.SwitchGroup(s.ctx, "")
	s.ErrorIs(err, ErrInvalidContext)
}

func (s *SessionSuite) TestCommitWithoutGroupIsInvalidContext() {
	_, err := s.session.Commit(s.ctx)
	s.ErrorIs(err, ErrInvalidContext)
	s.Empty(s.service.Calls())
}

func (s *SessionSuite) TestCommitReseedsSelectionOnSuccess() {
	_, err := s.session.SwitchGroup(s.ctx, testGroup)
	s.Require().NoError(err)
	s.Require().NoError(s.session.Toggle(model.MemberRef("m_u1")))
	s.Require().NoError(s.session.Toggle(model.DependentRef("d_d1")))

	result, err := s.session.Commit(s.ctx)
	s.Require().NoError(err)

	s.True(result.Success)
	s.True(s.session.IsCheckedIn(model.MemberRef("m_u1")))
	s.True(s.session.IsCheckedIn(model.DependentRef("d_d1")))
	s.False(s.session.IsCheckedIn(model.DependentRef("d_d2")))
	sel := s.session.Selection()
	s.True(sel.PrimarySelected)
	s.Equal([]model.DependentID{"d_d1"}, sel.Dependents)
}

func (s *SessionSuite) TestCommitKeepsSelectionOnPartialFailure() {
	_, err := s.session.SwitchGroup(s.ctx, testGroup)
	s.Require().NoError(err)
	s.Require().NoError(s.session.Toggle(model.MemberRef("m_u1")))
	s.Require().NoError(s.session.Toggle(model.DependentRef("d_d1")))
	s.service.memberCheckInErr = errUnavailable

	result, err := s.session.Commit(s.ctx)
	s.Require().NoError(err)

	s.False(result.Success)
	// status badges come from the server, the selection keeps the user's intent
	s.False(s.session.IsCheckedIn(model.MemberRef("m_u1")))
	s.True(s.session.IsCheckedIn(model.DependentRef("d_d1")))
	s.True(s.session.Selection().PrimarySelected)

	s.service.memberCheckInErr = nil
	result, err = s.session.Commit(s.ctx)
	s.Require().NoError(err)
	s.True(result.Success)
	s.True(s.session.IsCheckedIn(model.MemberRef("m_u1")))
}

func (s *SessionSuite) TestSwitchingGroupResetsSelection() {
	_, err := s.session.SwitchGroup(s.ctx, testGroup)
	s.Require().NoError(err)
	s.Require().NoError(s.session.Toggle(model.DependentRef("d_d1")))

	_, err = s.session.SwitchGroup(s.ctx, "TEENS2")
	s.Require().NoError(err)

	s.Empty(s.session.Selection().Dependents)
	s.Equal(model.GroupCode("TEENS2"), s.session.ActiveGroup())
}

func (s *SessionSuite) TestFailedLoadCanBeRefreshed() {
	s.service.seed(nil, []model.DependentID{"d_d1"})
	s.service.fetchErrs = []error{errUnavailable}

	_, err := s.session.SwitchGroup(s.ctx, testGroup)
	s.ErrorIs(err, ErrFetchFailed)
	_, ok := s.session.Roster()
	s.False(ok)

	_, err = s.session.Refresh(s.ctx)
	s.Require().NoError(err)
	s.Equal([]model.DependentID{"d_d1"}, s.session.Selection().Dependents)
}

func (s *SessionSuite) TestRefreshAfterFailedLoadKeepsToggles() {
	s.service.fetchErrs = []error{errUnavailable}

	_, err := s.session.SwitchGroup(s.ctx, testGroup)
	s.Require().ErrorIs(err, ErrFetchFailed)
	s.Require().NoError(s.session.Toggle(model.MemberRef("m_u1")))
	s.Require().NoError(s.session.Toggle(model.DependentRef("d_d1")))
	s.service.memberCheckInErr = errUnavailable

	result, err := s.session.Commit(s.ctx)
	s.Require().NoError(err)
	s.Require().False(result.Success)

	_, err = s.session.Refresh(s.ctx)
	s.Require().NoError(err)

	sel := s.session.Selection()
	s.True(sel.PrimarySelected)
	s.Equal([]model.DependentID{"d_d1"}, sel.Dependents)
	s.False(s.session.IsCheckedIn(model.MemberRef("m_u1")))
	s.True(s.session.IsCheckedIn(model.DependentRef("d_d1")))
}

func (s *SessionSuite) TestTogglesBeforeFirstLoadSurviveRefresh() {
	s.service.seed(nil, []model.DependentID{"d_d2"})
	s.service.fetchErrs = []error{errUnavailable}

	_, err := s.session.SwitchGroup(s.ctx, testGroup)
	s.Require().ErrorIs(err, ErrFetchFailed)
	s.Require().NoError(s.session.Toggle(model.DependentRef("d_d1")))

	_, err = s.session.Refresh(s.ctx)
	s.Require().NoError(err)

	s.Equal([]model.DependentID{"d_d1"}, s.session.Selection().Dependents)
	s.True(s.session.IsCheckedIn(model.DependentRef("d_d2")))
}

func (s *SessionSuite) TestCelebrationListener() {
	var events []Celebration
	s.session.OnCelebration(func(c Celebration) { events = append(events, c) })
	_, err := s.session.SwitchGroup(s.ctx, testGroup)
	s.Require().NoError(err)
	s.Require().NoError(s.session.Toggle(model.DependentRef("d_d2")))

	_, err = s.session.Commit(s.ctx)
	s.Require().NoError(err)

	s.Require().Len(events, 1)
	s.Equal([]model.DependentID{"d_d2"}, events[0].CheckedIn.Dependents)
}

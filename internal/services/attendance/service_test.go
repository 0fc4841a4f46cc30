package attendance

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/assemblie-checkin/internal/dependencies/mocks"
	"github.com/mcoot/assemblie-checkin/internal/metrics"
	"github.com/mcoot/assemblie-checkin/internal/model"
	"github.com/mcoot/assemblie-checkin/internal/services/household"
	"github.com/mcoot/assemblie-checkin/internal/storage/memory"
	logutil "github.com/mcoot/assemblie-checkin/internal/testutil"
)

const group = model.GroupCode("KIDS01")

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	clock   *mocks.MockClock
	metrics *metrics.Metrics
	service *Service
	ctx     context.Context

	bob   model.DependentID
	carol model.DependentID
	dave  model.DependentID // erin's
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC))
	s.metrics = metrics.New()
	s.ctx = context.Background()

	logger := logutil.NopLogger()
	households := household.New(s.storage, s.clock, mocks.NewMockIDGen(), logger)
	s.service = New(s.storage, households, s.clock, s.metrics, logger, DefaultConfig())

	_ = s.storage.SaveMember(s.ctx, &model.Member{ID: "m_alice", DisplayName: "Alice"})
	_ = s.storage.SaveMember(s.ctx, &model.Member{ID: "m_erin", DisplayName: "Erin"})
	_ = s.storage.SaveGroup(s.ctx, &model.Group{Code: group, Name: "Kids Church", Active: true})

	bob, _ := households.AddDependent(s.ctx, "m_alice", "Bob")
	carol, _ := households.AddDependent(s.ctx, "m_alice", "Carol")
	dave, _ := households.AddDependent(s.ctx, "m_erin", "Dave")
	s.bob, s.carol, s.dave = bob.ID, carol.ID, dave.ID
}

func (s *ServiceSuite) roster(actor model.MemberID) *model.Roster {
	roster, err := s.service.Roster(s.ctx, actor, group)
	s.Require().NoError(err)
	return roster
}

// Roster tests

func (s *ServiceSuite) TestRosterEmpty() {
	roster := s.roster("m_alice")
	s.Equal(group, roster.Group)
	s.Equal("2026-10-18", roster.Day)
	s.True(roster.Empty())
	s.Equal(1.0, testutil.ToFloat64(s.metrics.RosterReads))
}

func (s *ServiceSuite) TestRosterScopedToHousehold() {
	s.Require().NoError(s.service.CheckIn(s.ctx, "m_alice", group, []model.MemberID{"m_alice"}, []model.DependentID{s.bob}))
	s.Require().NoError(s.service.CheckIn(s.ctx, "m_erin", group, []model.MemberID{"m_erin"}, []model.DependentID{s.dave}))

	alice := s.roster("m_alice")
	s.Equal([]model.MemberID{"m_alice"}, alice.Members.Sorted())
	s.Equal([]model.DependentID{s.bob}, alice.Dependents.Sorted())

	erin := s.roster("m_erin")
	s.Equal([]model.MemberID{"m_erin"}, erin.Members.Sorted())
	s.Equal([]model.DependentID{s.dave}, erin.Dependents.Sorted())
}

func (s *ServiceSuite) TestRosterUnknownGroup() {
	_, err := s.service.Roster(s.ctx, "m_alice", "NOPE00")
	s.ErrorIs(err, model.ErrGroupNotFound)
}

func (s *ServiceSuite) TestRosterInactiveGroup() {
	_ = s.storage.SaveGroup(s.ctx, &model.Group{Code: group, Active: false})

	_, err := s.service.Roster(s.ctx, "m_alice", group)
	s.ErrorIs(err, model.ErrGroupInactive)
}

func (s *ServiceSuite) TestRosterIsSingleDay() {
	s.Require().NoError(s.service.CheckIn(s.ctx, "m_alice", group, []model.MemberID{"m_alice"}, nil))

	s.clock.Advance(24 * time.Hour)

	roster := s.roster("m_alice")
	s.Equal("2026-10-19", roster.Day)
	s.True(roster.Empty())
}

func (s *ServiceSuite) TestDayFollowsConfiguredTimezone() {
	loc := time.FixedZone("AEDT", 11*60*60)
	logger := logutil.NopLogger()
	households := household.New(s.storage, s.clock, mocks.NewMockIDGen(), logger)
	svc := New(s.storage, households, s.clock, s.metrics, logger, Config{Location: loc})

	// 2026-10-18 15:00 UTC is already the 19th in UTC+11
	s.clock.Set(time.Date(2026, 10, 18, 15, 0, 0, 0, time.UTC))
	s.Equal("2026-10-19", svc.Today())
	s.Equal("2026-10-18", s.service.Today())
}

// CheckIn tests

func (s *ServiceSuite) TestCheckInMemberAndDependents() {
	err := s.service.CheckIn(s.ctx, "m_alice", group, []model.MemberID{"m_alice"}, []model.DependentID{s.bob, s.carol})
	s.Require().NoError(err)

	roster := s.roster("m_alice")
	s.True(roster.Members.Has("m_alice"))
	s.Len(roster.Dependents, 2)

	s.Equal(1.0, testutil.ToFloat64(s.metrics.CheckIns.WithLabelValues("member")))
	s.Equal(2.0, testutil.ToFloat64(s.metrics.CheckIns.WithLabelValues("dependent")))
}

func (s *ServiceSuite) TestCheckInIsIdempotent() {
	members := []model.MemberID{"m_alice"}
	s.Require().NoError(s.service.CheckIn(s.ctx, "m_alice", group, members, nil))
	s.Require().NoError(s.service.CheckIn(s.ctx, "m_alice", group, members, nil))

	s.Len(s.roster("m_alice").Members, 1)
}

func (s *ServiceSuite) TestCheckInEmptyBatch() {
	err := s.service.CheckIn(s.ctx, "m_alice", group, nil, nil)
	s.ErrorIs(err, model.ErrEmptyBatch)
	s.Equal(1.0, testutil.ToFloat64(s.metrics.RejectedBatches.WithLabelValues("check_in")))
}

func (s *ServiceSuite) TestCheckInOtherMemberRejected() {
	err := s.service.CheckIn(s.ctx, "m_alice", group, []model.MemberID{"m_erin"}, nil)
	s.ErrorIs(err, model.ErrNotHousehold)
	s.True(s.roster("m_erin").Empty())
}

func (s *ServiceSuite) TestCheckInOtherHouseholdDependentRejectsWholeBatch() {
	err := s.service.CheckIn(s.ctx, "m_alice", group, nil, []model.DependentID{s.bob, s.dave})
	s.ErrorIs(err, model.ErrNotHousehold)
	s.True(s.roster("m_alice").Empty())
}

func (s *ServiceSuite) TestCheckInWrongNamespaceRejected() {
	err := s.service.CheckIn(s.ctx, "m_alice", group, []model.MemberID{model.MemberID(s.bob)}, nil)
	s.ErrorIs(err, model.ErrInvalidParticipant)

	err = s.service.CheckIn(s.ctx, "m_alice", group, nil, []model.DependentID{"m_alice"})
	s.ErrorIs(err, model.ErrInvalidParticipant)
}

func (s *ServiceSuite) TestCheckInInactiveGroup() {
	_ = s.storage.SaveGroup(s.ctx, &model.Group{Code: group, Active: false})

	err := s.service.CheckIn(s.ctx, "m_alice", group, []model.MemberID{"m_alice"}, nil)
	s.ErrorIs(err, model.ErrGroupInactive)
}

// CheckOut tests

func (s *ServiceSuite) TestCheckOut() {
	s.Require().NoError(s.service.CheckIn(s.ctx, "m_alice", group, []model.MemberID{"m_alice"}, []model.DependentID{s.bob, s.carol}))

	err := s.service.CheckOut(s.ctx, "m_alice", group, nil, []model.DependentID{s.carol})
	s.Require().NoError(err)

	roster := s.roster("m_alice")
	s.True(roster.Members.Has("m_alice"))
	s.Equal([]model.DependentID{s.bob}, roster.Dependents.Sorted())
	s.Equal(1.0, testutil.ToFloat64(s.metrics.CheckOuts.WithLabelValues("dependent")))
}

func (s *ServiceSuite) TestCheckOutAbsentIsNoOp() {
	err := s.service.CheckOut(s.ctx, "m_alice", group, []model.MemberID{"m_alice"}, nil)
	s.NoError(err)
}

func (s *ServiceSuite) TestCheckOutOtherHouseholdRejected() {
	s.Require().NoError(s.service.CheckIn(s.ctx, "m_erin", group, nil, []model.DependentID{s.dave}))

	err := s.service.CheckOut(s.ctx, "m_alice", group, nil, []model.DependentID{s.dave})
	s.ErrorIs(err, model.ErrNotHousehold)
	s.True(s.roster("m_erin").Dependents.Has(s.dave))
	s.Equal(1.0, testutil.ToFloat64(s.metrics.RejectedBatches.WithLabelValues("check_out")))
}

// MemberView tests

func (s *ServiceSuite) TestMemberViewActsAsMember() {
	view := s.service.ForMember("m_alice")

	s.Require().NoError(view.CheckIn(s.ctx, group, []model.MemberID{"m_alice"}, []model.DependentID{s.bob}))

	roster, err := view.FetchRoster(s.ctx, group)
	s.Require().NoError(err)
	s.True(roster.Members.Has("m_alice"))
	s.True(roster.Dependents.Has(s.bob))

	s.Require().NoError(view.CheckOut(s.ctx, group, nil, []model.DependentID{s.bob}))
	s.ErrorIs(view.CheckIn(s.ctx, group, nil, []model.DependentID{s.dave}), model.ErrNotHousehold)
}

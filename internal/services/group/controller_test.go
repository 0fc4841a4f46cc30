package group

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/assemblie-checkin/internal/dependencies/mocks"
	"github.com/mcoot/assemblie-checkin/internal/model"
	"github.com/mcoot/assemblie-checkin/internal/storage/memory"
	"github.com/mcoot/assemblie-checkin/internal/testutil"
)

type ControllerSuite struct {
	suite.Suite
	storage    *memory.Storage
	clock      *mocks.MockClock
	random     *mocks.MockRandom
	controller *Controller
	ctx        context.Context
}

func TestControllerSuite(t *testing.T) {
	suite.Run(t, new(ControllerSuite))
}

func (s *ControllerSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC))
	s.random = mocks.NewMockRandom()
	s.controller = NewController(s.storage, s.clock, s.random, testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *ControllerSuite) createGroup(code string) *model.Group {
	s.random.QueueString(code)
	group, err := s.controller.CreateGroup(s.ctx, "m_owner", "Kids Church")
	s.Require().NoError(err)
	return group
}

// CreateGroup tests

func (s *ControllerSuite) TestCreateGroupSucceeds() {
	s.random.QueueString("KIDS01")

	group, err := s.controller.CreateGroup(s.ctx, "m_owner", "Kids Church")
	s.Require().NoError(err)

	s.Equal(model.GroupCode("KIDS01"), group.Code)
	s.Equal("Kids Church", group.Name)
	s.True(group.Active)
	s.Equal(model.MemberID("m_owner"), group.CreatedBy)
	s.Equal(s.clock.Now(), group.CreatedAt)
}

func (s *ControllerSuite) TestCreateGroupIsPersisted() {
	group := s.createGroup("KIDS01")

	retrieved, err := s.storage.GetGroup(s.ctx, group.Code)
	s.Require().NoError(err)
	s.Equal("Kids Church", retrieved.Name)
}

func (s *ControllerSuite) TestCreateGroupRetriesOnCodeCollision() {
	s.createGroup("KIDS01")
	s.random.QueueString("KIDS01", "YOUTH1")

	group, err := s.controller.CreateGroup(s.ctx, "m_owner", "Youth")
	s.Require().NoError(err)
	s.Equal(model.GroupCode("YOUTH1"), group.Code)
}

// GetGroup tests

func (s *ControllerSuite) TestGetGroupNormalizesCode() {
	s.createGroup("KIDS01")

	group, err := s.controller.GetGroup(s.ctx, " kids01 ")
	s.Require().NoError(err)
	s.Equal(model.GroupCode("KIDS01"), group.Code)
}

func (s *ControllerSuite) TestGetGroupNotFound() {
	_, err := s.controller.GetGroup(s.ctx, "NOPE00")
	s.ErrorIs(err, model.ErrGroupNotFound)
}

func (s *ControllerSuite) TestListGroups() {
	s.createGroup("YOUTH1")
	s.createGroup("KIDS01")

	groups, err := s.controller.ListGroups(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(groups, 2)
	s.Equal(model.GroupCode("KIDS01"), groups[0].Code)
}

// Activate/Deactivate tests

func (s *ControllerSuite) TestDeactivateAndActivate() {
	s.createGroup("KIDS01")
	s.clock.Advance(time.Hour)

	group, err := s.controller.Deactivate(s.ctx, "KIDS01", "m_owner")
	s.Require().NoError(err)
	s.False(group.Active)
	s.Equal(s.clock.Now(), group.UpdatedAt)

	stored, _ := s.storage.GetGroup(s.ctx, "KIDS01")
	s.False(stored.Active)

	group, err = s.controller.Activate(s.ctx, "KIDS01", "m_owner")
	s.Require().NoError(err)
	s.True(group.Active)
}

func (s *ControllerSuite) TestActivateIsIdempotent() {
	created := s.createGroup("KIDS01")
	s.clock.Advance(time.Hour)

	group, err := s.controller.Activate(s.ctx, "KIDS01", "m_owner")
	s.Require().NoError(err)
	s.True(group.Active)
	s.Equal(created.UpdatedAt, group.UpdatedAt)
}

func (s *ControllerSuite) TestDeactivateRequiresOwner() {
	s.createGroup("KIDS01")

	_, err := s.controller.Deactivate(s.ctx, "KIDS01", "m_someone_else")
	s.ErrorIs(err, model.ErrNotGroupOwner)

	stored, _ := s.storage.GetGroup(s.ctx, "KIDS01")
	s.True(stored.Active)
}

func (s *ControllerSuite) TestDeactivateUnknownGroup() {
	_, err := s.controller.Deactivate(s.ctx, "NOPE00", "m_owner")
	s.ErrorIs(err, model.ErrGroupNotFound)
}

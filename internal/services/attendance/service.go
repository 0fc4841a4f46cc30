package attendance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mcoot/assemblie-checkin/internal/dependencies/clock"
	"github.com/mcoot/assemblie-checkin/internal/metrics"
	"github.com/mcoot/assemblie-checkin/internal/model"
	"github.com/mcoot/assemblie-checkin/internal/services/household"
	"github.com/mcoot/assemblie-checkin/internal/storage"
)

const (
	opCheckIn  = "check_in"
	opCheckOut = "check_out"
)

// Config holds configuration for the attendance service
type Config struct {
	// Location decides where the attendance day starts and ends
	Location *time.Location
}

// DefaultConfig returns default attendance configuration
func DefaultConfig() Config {
	return Config{Location: time.UTC}
}

// Service records single-day attendance for groups.
// Every call acts for one authenticated member and only ever sees or touches
// that member and their household.
type Service struct {
	storage    storage.Storage
	households *household.Service
	clock      clock.Clock
	metrics    *metrics.Metrics
	logger     *slog.Logger
	loc        *time.Location
}

// New creates a new attendance Service
func New(storage storage.Storage, households *household.Service, clock clock.Clock, metrics *metrics.Metrics, logger *slog.Logger, cfg Config) *Service {
	if cfg.Location == nil {
		cfg.Location = DefaultConfig().Location
	}
	return &Service{
		storage:    storage,
		households: households,
		clock:      clock,
		metrics:    metrics,
		logger:     logger,
		loc:        cfg.Location,
	}
}

// Today returns the current attendance day
func (s *Service) Today() string {
	return clock.Day(s.clock.Now(), s.loc)
}

// Roster returns today's check-ins for the group, limited to actor and actor's dependents
func (s *Service) Roster(ctx context.Context, actor model.MemberID, code model.GroupCode) (*model.Roster, error) {
	if _, err := s.activeGroup(ctx, code); err != nil {
		return nil, err
	}

	household, err := s.households.Household(ctx, actor)
	if err != nil {
		return nil, err
	}

	all, err := s.storage.GetCheckIns(ctx, code, s.Today())
	if err != nil {
		return nil, err
	}

	roster := model.NewRoster(code, all.Day)
	if all.Members.Has(actor) {
		roster.Members.Add(actor)
	}
	for id := range all.Dependents {
		if household.Has(id) {
			roster.Dependents.Add(id)
		}
	}

	s.metrics.IncrementRosterReads()
	return roster, nil
}

// CheckIn adds the participants to today's roster. Already present ids are ignored.
func (s *Service) CheckIn(ctx context.Context, actor model.MemberID, code model.GroupCode, members []model.MemberID, dependents []model.DependentID) error {
	if err := s.validate(ctx, actor, code, members, dependents); err != nil {
		s.metrics.IncrementRejected(opCheckIn)
		return err
	}

	if err := s.storage.AddCheckIns(ctx, code, s.Today(), members, dependents); err != nil {
		return err
	}

	s.metrics.AddCheckIns(string(model.KindMember), len(members))
	s.metrics.AddCheckIns(string(model.KindDependent), len(dependents))
	s.logger.Info("checked in",
		slog.String("group", string(code)),
		slog.String("member_id", string(actor)),
		slog.Int("members", len(members)),
		slog.Int("dependents", len(dependents)),
	)
	return nil
}

// CheckOut removes the participants from today's roster. Absent ids are ignored.
func (s *Service) CheckOut(ctx context.Context, actor model.MemberID, code model.GroupCode, members []model.MemberID, dependents []model.DependentID) error {
	if err := s.validate(ctx, actor, code, members, dependents); err != nil {
		s.metrics.IncrementRejected(opCheckOut)
		return err
	}

	if err := s.storage.RemoveCheckIns(ctx, code, s.Today(), members, dependents); err != nil {
		return err
	}

	s.metrics.AddCheckOuts(string(model.KindMember), len(members))
	s.metrics.AddCheckOuts(string(model.KindDependent), len(dependents))
	s.logger.Info("checked out",
		slog.String("group", string(code)),
		slog.String("member_id", string(actor)),
		slog.Int("members", len(members)),
		slog.Int("dependents", len(dependents)),
	)
	return nil
}

// validate rejects the whole batch if any id is malformed or outside actor's household
func (s *Service) validate(ctx context.Context, actor model.MemberID, code model.GroupCode, members []model.MemberID, dependents []model.DependentID) error {
	if len(members) == 0 && len(dependents) == 0 {
		return model.ErrEmptyBatch
	}

	if _, err := s.activeGroup(ctx, code); err != nil {
		return err
	}

	for _, id := range members {
		if !id.Valid() {
			return fmt.Errorf("%w: %q", model.ErrInvalidParticipant, id)
		}
		if id != actor {
			return fmt.Errorf("%w: member %s", model.ErrNotHousehold, id)
		}
	}

	if len(dependents) == 0 {
		return nil
	}

	household, err := s.households.Household(ctx, actor)
	if err != nil {
		return err
	}
	for _, id := range dependents {
		if !id.Valid() {
			return fmt.Errorf("%w: %q", model.ErrInvalidParticipant, id)
		}
		if !household.Has(id) {
			return fmt.Errorf("%w: dependent %s", model.ErrNotHousehold, id)
		}
	}
	return nil
}

func (s *Service) activeGroup(ctx context.Context, code model.GroupCode) (*model.Group, error) {
	group, err := s.storage.GetGroup(ctx, code)
	if err != nil {
		return nil, err
	}
	if !group.Active {
		return nil, model.ErrGroupInactive
	}
	return group, nil
}

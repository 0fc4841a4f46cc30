package household

import (
	"context"
	"log/slog"

	"github.com/mcoot/assemblie-checkin/internal/dependencies/clock"
	"github.com/mcoot/assemblie-checkin/internal/dependencies/idgen"
	"github.com/mcoot/assemblie-checkin/internal/model"
	"github.com/mcoot/assemblie-checkin/internal/storage"
)

// Service manages the dependents a member checks in on their behalf
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	ids     idgen.Generator
	logger  *slog.Logger
}

// New creates a new household Service
func New(storage storage.Storage, clock clock.Clock, ids idgen.Generator, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
		ids:     ids,
		logger:  logger,
	}
}

// AddDependent registers a dependent under guardian
func (s *Service) AddDependent(ctx context.Context, guardian model.MemberID, displayName string) (*model.Dependent, error) {
	if _, err := s.storage.GetMember(ctx, guardian); err != nil {
		return nil, err
	}

	dependent := &model.Dependent{
		ID:          s.ids.DependentID(),
		GuardianID:  guardian,
		DisplayName: displayName,
		CreatedAt:   s.clock.Now(),
	}

	if err := s.storage.SaveDependent(ctx, dependent); err != nil {
		return nil, err
	}

	s.logger.Info("dependent added",
		slog.String("member_id", string(guardian)),
		slog.String("dependent_id", string(dependent.ID)),
	)
	return dependent, nil
}

// ListDependents returns guardian's dependents in the order they were added
func (s *Service) ListDependents(ctx context.Context, guardian model.MemberID) ([]*model.Dependent, error) {
	return s.storage.ListDependents(ctx, guardian)
}

// Household returns the set of dependent ids guardian may act for
func (s *Service) Household(ctx context.Context, guardian model.MemberID) (model.Set[model.DependentID], error) {
	deps, err := s.storage.ListDependents(ctx, guardian)
	if err != nil {
		return nil, err
	}
	ids := model.NewSet[model.DependentID]()
	for _, d := range deps {
		ids.Add(d.ID)
	}
	return ids, nil
}

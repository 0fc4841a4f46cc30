package checkin

import (
	"context"
	"log/slog"
	"sync"

	"github.com/mcoot/assemblie-checkin/internal/model"
)

// Session is the UI-facing check-in state for one primary member.
// It owns the selection and roster cache for the active group and is the
// only writer of the selection besides user toggles.
type Session struct {
	store      *SelectionStore
	cache      *RosterCache
	reconciler *Reconciler
	logger     *slog.Logger

	mu     sync.Mutex
	seeded bool
}

// NewSession creates a session for primary and the dependents they can check in
func NewSession(service AttendanceService, primary model.MemberID, household []model.DependentID, logger *slog.Logger) *Session {
	cache := NewRosterCache()
	return &Session{
		store:      NewSelectionStore(primary, household),
		cache:      cache,
		reconciler: NewReconciler(service, cache, logger),
		logger:     logger,
	}
}

// SwitchGroup makes group active, drops the previous group's roster and
// selection, then loads the new roster and seeds the selection from it.
// On a fetch error the group stays active with an empty selection; Refresh retries.
func (s *Session) SwitchGroup(ctx context.Context, group model.GroupCode) (*model.Roster, error) {
	if group == "" {
		return nil, ErrInvalidContext
	}

	s.mu.Lock()
	s.cache.SwitchGroup(group)
	s.store.Reset()
	s.seeded = false
	s.mu.Unlock()

	s.logger.Debug("switched group", slog.String("group", string(group)))
	return s.Refresh(ctx)
}

// Refresh re-fetches the active group's roster.
// The first successful load after a switch seeds the selection, unless the
// user has already toggled; pending toggles are never discarded by a load.
func (s *Session) Refresh(ctx context.Context) (*model.Roster, error) {
	group, _ := s.cache.ActiveGroup()
	roster, err := s.reconciler.Refresh(ctx, group)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.seeded {
		if active, _ := s.cache.ActiveGroup(); active == group {
			s.seeded = s.store.SeedIfUnedited(roster)
		}
	}
	return roster, nil
}

// ActiveGroup returns the group check-ins are recorded for
func (s *Session) ActiveGroup() model.GroupCode {
	group, _ := s.cache.ActiveGroup()
	return group
}

// Selection returns the current desired state
func (s *Session) Selection() model.Selection {
	return s.store.Get()
}

// Household returns the dependents the session can toggle, in render order
func (s *Session) Household() []model.DependentID {
	return s.store.Household()
}

// Toggle flips a participant in or out of the selection
func (s *Session) Toggle(ref model.ParticipantRef) error {
	return s.store.Toggle(ref)
}

// Roster returns the last confirmed roster for the active group
func (s *Session) Roster() (*model.Roster, bool) {
	return s.cache.Get(s.ActiveGroup())
}

// IsCheckedIn reports confirmed status for badges; it never reflects the selection
func (s *Session) IsCheckedIn(ref model.ParticipantRef) bool {
	roster, ok := s.Roster()
	return ok && roster.IsCheckedIn(ref)
}

// Commit reconciles the selection with the server for the active group.
// After a fully successful cycle the selection is reseeded from RosterAfter;
// on any failure it is kept so the user can retry without re-toggling.
func (s *Session) Commit(ctx context.Context) (*Result, error) {
	group := s.ActiveGroup()
	result, err := s.reconciler.Reconcile(ctx, group, s.store.Get())
	if err != nil {
		return result, err
	}

	if result.Success {
		s.mu.Lock()
		if active, _ := s.cache.ActiveGroup(); active == group {
			s.store.Seed(result.RosterAfter)
			s.seeded = true
		}
		s.mu.Unlock()
	}
	return result, nil
}

// OnCelebration registers a listener for the post-commit celebration
func (s *Session) OnCelebration(fn func(Celebration)) {
	s.reconciler.OnCelebration(fn)
}

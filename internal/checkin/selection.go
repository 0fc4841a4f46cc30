package checkin

import (
	"fmt"
	"slices"
	"sync"

	"github.com/mcoot/assemblie-checkin/internal/model"
)

// SelectionStore holds the participants the user wants checked in.
// It only changes through toggles and seeding; the Reconciler reads snapshots.
type SelectionStore struct {
	mu              sync.Mutex
	primary         model.MemberID
	primarySelected bool
	household       []model.DependentID // render order
	selected        model.Set[model.DependentID]
	edited          bool // toggled since the last seed or reset
}

// NewSelectionStore creates an empty selection for primary and their household
func NewSelectionStore(primary model.MemberID, household []model.DependentID) *SelectionStore {
	return &SelectionStore{
		primary:   primary,
		household: slices.Clone(household),
		selected:  model.NewSet[model.DependentID](),
	}
}

// Get returns a snapshot of the selection with dependents in household order
func (s *SelectionStore) Get() model.Selection {
	s.mu.Lock()
	defer s.mu.Unlock()

	deps := make([]model.DependentID, 0, len(s.selected))
	for _, id := range s.household {
		if s.selected.Has(id) {
			deps = append(deps, id)
		}
	}
	return model.Selection{
		Primary:         s.primary,
		PrimarySelected: s.primarySelected,
		Dependents:      deps,
	}
}

// Household returns the known dependents in render order
func (s *SelectionStore) Household() []model.DependentID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.household)
}

// Toggle flips the referenced participant in or out of the selection
func (s *SelectionStore) Toggle(ref model.ParticipantRef) error {
	switch ref.Kind {
	case model.KindMember:
		return s.TogglePrimary(model.MemberID(ref.ID))
	case model.KindDependent:
		return s.ToggleDependent(model.DependentID(ref.ID))
	default:
		return fmt.Errorf("%w: kind %q", ErrUnknownParticipant, ref.Kind)
	}
}

// TogglePrimary flips the primary member slot; id must be the primary member
func (s *SelectionStore) TogglePrimary(id model.MemberID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id != s.primary {
		return fmt.Errorf("%w: member %s", ErrUnknownParticipant, id)
	}
	s.primarySelected = !s.primarySelected
	s.edited = true
	return nil
}

// ToggleDependent flips a dependent of the household
func (s *SelectionStore) ToggleDependent(id model.DependentID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !slices.Contains(s.household, id) {
		return fmt.Errorf("%w: dependent %s", ErrUnknownParticipant, id)
	}
	if s.selected.Has(id) {
		s.selected.Remove(id)
	} else {
		s.selected.Add(id)
	}
	s.edited = true
	return nil
}

// Seed replaces the selection with exactly the roster's participants.
// Dependents on the roster that the household list does not know yet are
// appended so they stay selected rather than being checked out.
func (s *SelectionStore) Seed(roster *model.Roster) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seed(roster)
}

// SeedIfUnedited seeds from roster unless the user has toggled anything
// since the last seed or reset. It reports whether the selection was seeded.
func (s *SelectionStore) SeedIfUnedited(roster *model.Roster) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.edited {
		return false
	}
	s.seed(roster)
	return true
}

func (s *SelectionStore) seed(roster *model.Roster) {
	s.primarySelected = roster.Members.Has(s.primary)
	s.selected = model.NewSet[model.DependentID]()
	for _, id := range roster.Dependents.Sorted() {
		if !slices.Contains(s.household, id) {
			s.household = append(s.household, id)
		}
		s.selected.Add(id)
	}
	s.edited = false
}

// Reset clears the selection
func (s *SelectionStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.primarySelected = false
	s.selected = model.NewSet[model.DependentID]()
	s.edited = false
}

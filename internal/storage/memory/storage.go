package memory

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/mcoot/assemblie-checkin/internal/model"
	"github.com/mcoot/assemblie-checkin/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	members           map[model.MemberID]*model.Member
	registeredMembers map[model.MemberID]*model.RegisteredMember
	usernameIndex     map[string]model.MemberID
	dependents        map[model.DependentID]*model.Dependent
	groups            map[model.GroupCode]*model.Group
	attendance        map[attendanceKey]*model.Roster
}

type attendanceKey struct {
	code model.GroupCode
	day  string
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		members:           make(map[model.MemberID]*model.Member),
		registeredMembers: make(map[model.MemberID]*model.RegisteredMember),
		usernameIndex:     make(map[string]model.MemberID),
		dependents:        make(map[model.DependentID]*model.Dependent),
		groups:            make(map[model.GroupCode]*model.Group),
		attendance:        make(map[attendanceKey]*model.Roster),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Member operations

func (s *Storage) SaveMember(ctx context.Context, member *model.Member) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m := *member
	s.members[member.ID] = &m
	return nil
}

func (s *Storage) GetMember(ctx context.Context, id model.MemberID) (*model.Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	member, ok := s.members[id]
	if !ok {
		return nil, model.ErrMemberNotFound
	}
	m := *member
	return &m, nil
}

// Registered member operations

func (s *Storage) SaveRegisteredMember(ctx context.Context, rm *model.RegisteredMember) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := *rm
	s.registeredMembers[rm.MemberID] = &r
	s.usernameIndex[rm.Username] = rm.MemberID
	return nil
}

func (s *Storage) GetRegisteredMemberByUsername(ctx context.Context, username string) (*model.RegisteredMember, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	memberID, ok := s.usernameIndex[username]
	if !ok {
		return nil, model.ErrMemberNotFound
	}
	rm, ok := s.registeredMembers[memberID]
	if !ok {
		return nil, model.ErrMemberNotFound
	}
	r := *rm
	return &r, nil
}

// Dependent operations

func (s *Storage) SaveDependent(ctx context.Context, dependent *model.Dependent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := *dependent
	s.dependents[dependent.ID] = &d
	return nil
}

func (s *Storage) GetDependent(ctx context.Context, id model.DependentID) (*model.Dependent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	dependent, ok := s.dependents[id]
	if !ok {
		return nil, model.ErrDependentNotFound
	}
	d := *dependent
	return &d, nil
}

func (s *Storage) ListDependents(ctx context.Context, guardian model.MemberID) ([]*model.Dependent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*model.Dependent
	for _, dependent := range s.dependents {
		if dependent.GuardianID == guardian {
			d := *dependent
			out = append(out, &d)
		}
	}
	sortDependents(out)
	return out, nil
}

// Group operations

func (s *Storage) SaveGroup(ctx context.Context, group *model.Group) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	g := *group
	s.groups[group.Code] = &g
	return nil
}

func (s *Storage) GetGroup(ctx context.Context, code model.GroupCode) (*model.Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	group, ok := s.groups[code]
	if !ok {
		return nil, model.ErrGroupNotFound
	}
	g := *group
	return &g, nil
}

func (s *Storage) GroupExists(ctx context.Context, code model.GroupCode) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.groups[code]
	return ok, nil
}

func (s *Storage) ListGroups(ctx context.Context) ([]*model.Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*model.Group, 0, len(s.groups))
	for _, group := range s.groups {
		g := *group
		out = append(out, &g)
	}
	slices.SortFunc(out, func(a, b *model.Group) int {
		return strings.Compare(string(a.Code), string(b.Code))
	})
	return out, nil
}

// Attendance operations

func (s *Storage) AddCheckIns(ctx context.Context, code model.GroupCode, day string, members []model.MemberID, dependents []model.DependentID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := attendanceKey{code: code, day: day}
	roster, ok := s.attendance[key]
	if !ok {
		roster = model.NewRoster(code, day)
		s.attendance[key] = roster
	}
	roster.Members.Add(members...)
	roster.Dependents.Add(dependents...)
	return nil
}

func (s *Storage) RemoveCheckIns(ctx context.Context, code model.GroupCode, day string, members []model.MemberID, dependents []model.DependentID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	roster, ok := s.attendance[attendanceKey{code: code, day: day}]
	if !ok {
		return nil
	}
	roster.Members.Remove(members...)
	roster.Dependents.Remove(dependents...)
	return nil
}

func (s *Storage) GetCheckIns(ctx context.Context, code model.GroupCode, day string) (*model.Roster, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	roster, ok := s.attendance[attendanceKey{code: code, day: day}]
	if !ok {
		return model.NewRoster(code, day), nil
	}
	return roster.Clone(), nil
}

func sortDependents(deps []*model.Dependent) {
	slices.SortFunc(deps, func(a, b *model.Dependent) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(string(a.ID), string(b.ID))
	})
}

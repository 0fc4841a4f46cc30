package storage

import (
	"context"

	"github.com/mcoot/assemblie-checkin/internal/model"
)

// Storage defines the interface for data persistence
type Storage interface {
	// Member operations
	SaveMember(ctx context.Context, member *model.Member) error
	GetMember(ctx context.Context, id model.MemberID) (*model.Member, error)

	// Registered member operations
	SaveRegisteredMember(ctx context.Context, rm *model.RegisteredMember) error
	GetRegisteredMemberByUsername(ctx context.Context, username string) (*model.RegisteredMember, error)

	// Dependent operations
	SaveDependent(ctx context.Context, dependent *model.Dependent) error
	GetDependent(ctx context.Context, id model.DependentID) (*model.Dependent, error)
	ListDependents(ctx context.Context, guardian model.MemberID) ([]*model.Dependent, error)

	// Group operations
	SaveGroup(ctx context.Context, group *model.Group) error
	GetGroup(ctx context.Context, code model.GroupCode) (*model.Group, error)
	GroupExists(ctx context.Context, code model.GroupCode) (bool, error)
	ListGroups(ctx context.Context) ([]*model.Group, error)

	// Attendance operations, keyed by group and day.
	// Adding an id that is already present and removing one that is absent are no-ops.
	AddCheckIns(ctx context.Context, code model.GroupCode, day string, members []model.MemberID, dependents []model.DependentID) error
	RemoveCheckIns(ctx context.Context, code model.GroupCode, day string, members []model.MemberID, dependents []model.DependentID) error
	GetCheckIns(ctx context.Context, code model.GroupCode, day string) (*model.Roster, error)
}

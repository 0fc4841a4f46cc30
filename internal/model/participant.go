package model

import (
	"strings"
	"time"
)

// ID prefixes keep the member and dependent namespaces disjoint
const (
	MemberIDPrefix    = "m_"
	DependentIDPrefix = "d_"
)

// MemberID identifies a primary member, a person who can authenticate
type MemberID string

// Valid reports whether the id is in the member namespace
func (id MemberID) Valid() bool {
	return strings.HasPrefix(string(id), MemberIDPrefix) && len(id) > len(MemberIDPrefix)
}

// DependentID identifies a household member who is checked in by a primary member
type DependentID string

// Valid reports whether the id is in the dependent namespace
func (id DependentID) Valid() bool {
	return strings.HasPrefix(string(id), DependentIDPrefix) && len(id) > len(DependentIDPrefix)
}

// ParticipantKind distinguishes the primary member slot from dependents
type ParticipantKind string

const (
	KindMember    ParticipantKind = "member"
	KindDependent ParticipantKind = "dependent"
)

// ParticipantRef names either a member or a dependent
type ParticipantRef struct {
	Kind ParticipantKind
	ID   string
}

// MemberRef returns a reference to a primary member
func MemberRef(id MemberID) ParticipantRef {
	return ParticipantRef{Kind: KindMember, ID: string(id)}
}

// DependentRef returns a reference to a dependent
func DependentRef(id DependentID) ParticipantRef {
	return ParticipantRef{Kind: KindDependent, ID: string(id)}
}

// Member is a primary member of the organization
type Member struct {
	ID          MemberID
	DisplayName string
	CreatedAt   time.Time
}

// RegisteredMember holds the login credentials for a member
// Stored separately so the password hash never travels with the member
type RegisteredMember struct {
	MemberID     MemberID
	Username     string // login username (immutable)
	PasswordHash string // bcrypt hash
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Dependent is a household member who cannot authenticate independently
type Dependent struct {
	ID          DependentID
	GuardianID  MemberID
	DisplayName string
	CreatedAt   time.Time
}

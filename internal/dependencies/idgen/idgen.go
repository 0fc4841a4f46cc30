package idgen

import (
	"github.com/google/uuid"

	"github.com/mcoot/assemblie-checkin/internal/model"
)

// Generator mints identifiers for members, dependents and sessions
type Generator interface {
	MemberID() model.MemberID
	DependentID() model.DependentID
	Token() string
}

// UUIDGenerator derives identifiers from random UUIDs
type UUIDGenerator struct{}

// New creates a UUIDGenerator
func New() *UUIDGenerator {
	return &UUIDGenerator{}
}

func (g *UUIDGenerator) MemberID() model.MemberID {
	return model.MemberID(model.MemberIDPrefix + uuid.NewString())
}

func (g *UUIDGenerator) DependentID() model.DependentID {
	return model.DependentID(model.DependentIDPrefix + uuid.NewString())
}

// Token returns an opaque session token
func (g *UUIDGenerator) Token() string {
	return uuid.NewString() + uuid.NewString()
}

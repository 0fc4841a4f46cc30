package mocks

import (
	"fmt"

	"github.com/mcoot/assemblie-checkin/internal/dependencies/idgen"
	"github.com/mcoot/assemblie-checkin/internal/model"
)

// MockIDGen hands out predictable sequential identifiers
type MockIDGen struct {
	members    int
	dependents int
	tokens     int
}

var _ idgen.Generator = (*MockIDGen)(nil)

// NewMockIDGen creates a MockIDGen starting at 1
func NewMockIDGen() *MockIDGen {
	return &MockIDGen{}
}

func (g *MockIDGen) MemberID() model.MemberID {
	g.members++
	return model.MemberID(fmt.Sprintf("%s%d", model.MemberIDPrefix, g.members))
}

func (g *MockIDGen) DependentID() model.DependentID {
	g.dependents++
	return model.DependentID(fmt.Sprintf("%s%d", model.DependentIDPrefix, g.dependents))
}

func (g *MockIDGen) Token() string {
	g.tokens++
	return fmt.Sprintf("token-%d", g.tokens)
}

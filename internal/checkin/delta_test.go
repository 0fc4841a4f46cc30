package checkin

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mcoot/assemblie-checkin/internal/model"
)

func roster(members []model.MemberID, dependents []model.DependentID) *model.Roster {
	r := model.NewRoster("KIDS01", "2024-01-01")
	r.Members.Add(members...)
	r.Dependents.Add(dependents...)
	return r
}

func TestComputeDeltaFullCheckInAgainstEmptyRoster(t *testing.T) {
	sel := model.Selection{Primary: "m_u1", PrimarySelected: true, Dependents: []model.DependentID{"d_d1", "d_d2"}}

	delta := ComputeDelta(sel, roster(nil, nil))

	assert.Equal(t, []model.MemberID{"m_u1"}, delta.CheckIn.Members)
	assert.Equal(t, []model.DependentID{"d_d1", "d_d2"}, delta.CheckIn.Dependents)
	assert.True(t, delta.CheckOut.Empty())
}

func TestComputeDeltaChecksOutDeselectedDependent(t *testing.T) {
	sel := model.Selection{Primary: "m_u1", PrimarySelected: true, Dependents: []model.DependentID{"d_d1"}}

	delta := ComputeDelta(sel, roster([]model.MemberID{"m_u1"}, []model.DependentID{"d_d1", "d_d2"}))

	assert.True(t, delta.CheckIn.Empty())
	assert.Empty(t, delta.CheckOut.Members)
	assert.Equal(t, []model.DependentID{"d_d2"}, delta.CheckOut.Dependents)
}

func TestComputeDeltaEmptyWhenSelectionMatchesRoster(t *testing.T) {
	sel := model.Selection{Primary: "m_u1", PrimarySelected: true, Dependents: []model.DependentID{"d_d2", "d_d1"}}

	delta := ComputeDelta(sel, roster([]model.MemberID{"m_u1"}, []model.DependentID{"d_d1", "d_d2"}))

	assert.True(t, delta.Empty())
}

func TestComputeDeltaEmptySelectionChecksEveryoneOut(t *testing.T) {
	sel := model.Selection{Primary: "m_u1"}

	delta := ComputeDelta(sel, roster([]model.MemberID{"m_u1"}, []model.DependentID{"d_d2", "d_d1"}))

	assert.True(t, delta.CheckIn.Empty())
	assert.Equal(t, []model.MemberID{"m_u1"}, delta.CheckOut.Members)
	assert.Equal(t, []model.DependentID{"d_d1", "d_d2"}, delta.CheckOut.Dependents)
}

func TestComputeDeltaUnselectedPrimaryIsNotCheckedIn(t *testing.T) {
	sel := model.Selection{Primary: "m_u1", Dependents: []model.DependentID{"d_d1"}}

	delta := ComputeDelta(sel, roster(nil, nil))

	assert.Empty(t, delta.CheckIn.Members)
	assert.Equal(t, []model.DependentID{"d_d1"}, delta.CheckIn.Dependents)
}

func TestComputeDeltaNilRosterTreatedAsEmpty(t *testing.T) {
	sel := model.Selection{Primary: "m_u1", PrimarySelected: true}

	delta := ComputeDelta(sel, nil)

	assert.Equal(t, []model.MemberID{"m_u1"}, delta.CheckIn.Members)
	assert.True(t, delta.CheckOut.Empty())
}

func TestComputeDeltaIsDeterministic(t *testing.T) {
	sel := model.Selection{Primary: "m_u1", PrimarySelected: true, Dependents: []model.DependentID{"d_c", "d_a", "d_b"}}
	r := roster([]model.MemberID{"m_other"}, []model.DependentID{"d_z", "d_y", "d_a"})

	first := ComputeDelta(sel, r)
	second := ComputeDelta(sel, r)

	assert.Equal(t, first, second)
	assert.Equal(t, []model.DependentID{"d_b", "d_c"}, first.CheckIn.Dependents)
	assert.Equal(t, []model.DependentID{"d_y", "d_z"}, first.CheckOut.Dependents)
	assert.Equal(t, []model.MemberID{"m_other"}, first.CheckOut.Members)
}

func TestComputeDeltaDoesNotMutateInputs(t *testing.T) {
	sel := model.Selection{Primary: "m_u1", PrimarySelected: true, Dependents: []model.DependentID{"d_d1"}}
	r := roster(nil, []model.DependentID{"d_d2"})

	_ = ComputeDelta(sel, r)

	assert.Equal(t, []model.DependentID{"d_d1"}, sel.Dependents)
	assert.Empty(t, r.Members)
	assert.Equal(t, []model.DependentID{"d_d2"}, r.Dependents.Sorted())
}

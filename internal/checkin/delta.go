package checkin

import "github.com/mcoot/assemblie-checkin/internal/model"

// ComputeDelta returns the check-ins and check-outs needed to move roster to selection.
// It has no side effects and the id lists are sorted, so equal inputs give equal deltas.
func ComputeDelta(selection model.Selection, roster *model.Roster) model.Delta {
	checkedInMembers := model.NewSet[model.MemberID]()
	checkedInDependents := model.NewSet[model.DependentID]()
	if roster != nil {
		checkedInMembers = roster.Members
		checkedInDependents = roster.Dependents
	}

	selectedMembers := selection.MemberIDs()
	selectedDependents := selection.DependentIDs()

	return model.Delta{
		CheckIn: model.Change{
			Members:    selectedMembers.Minus(checkedInMembers),
			Dependents: selectedDependents.Minus(checkedInDependents),
		},
		CheckOut: model.Change{
			Members:    checkedInMembers.Minus(selectedMembers),
			Dependents: checkedInDependents.Minus(selectedDependents),
		},
	}
}

package model

// Change is one side of a delta, split by namespace
type Change struct {
	Members    []MemberID
	Dependents []DependentID
}

// Empty reports whether the change touches nobody
func (c Change) Empty() bool {
	return len(c.Members) == 0 && len(c.Dependents) == 0
}

// Delta is the derived difference between a selection and a roster
type Delta struct {
	CheckIn  Change
	CheckOut Change
}

// Empty reports whether both sides are empty
func (d Delta) Empty() bool {
	return d.CheckIn.Empty() && d.CheckOut.Empty()
}

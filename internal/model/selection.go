package model

import "slices"

// Selection is the set of participants the user wants checked in
// The primary member always occupies its own slot, rendered first
type Selection struct {
	Primary         MemberID
	PrimarySelected bool
	Dependents      []DependentID
}

// MemberIDs returns the selected member ids (zero or one entries)
func (s Selection) MemberIDs() Set[MemberID] {
	if s.PrimarySelected && s.Primary != "" {
		return NewSet(s.Primary)
	}
	return NewSet[MemberID]()
}

// DependentIDs returns the selected dependents as a set
func (s Selection) DependentIDs() Set[DependentID] {
	return NewSet(s.Dependents...)
}

// IsSelected reports whether the referenced participant is selected
func (s Selection) IsSelected(ref ParticipantRef) bool {
	switch ref.Kind {
	case KindMember:
		return s.PrimarySelected && string(s.Primary) == ref.ID
	case KindDependent:
		return slices.Contains(s.Dependents, DependentID(ref.ID))
	default:
		return false
	}
}

// Empty reports whether nobody is selected
func (s Selection) Empty() bool {
	return !s.PrimarySelected && len(s.Dependents) == 0
}

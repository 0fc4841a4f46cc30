package model

// Roster is the server-confirmed set of checked-in participants for a group on one day
type Roster struct {
	Group      GroupCode
	Day        string // YYYY-MM-DD in the service's timezone
	Members    Set[MemberID]
	Dependents Set[DependentID]
}

// NewRoster creates an empty roster
func NewRoster(group GroupCode, day string) *Roster {
	return &Roster{
		Group:      group,
		Day:        day,
		Members:    NewSet[MemberID](),
		Dependents: NewSet[DependentID](),
	}
}

// Clone returns a deep copy
func (r *Roster) Clone() *Roster {
	return &Roster{
		Group:      r.Group,
		Day:        r.Day,
		Members:    r.Members.Clone(),
		Dependents: r.Dependents.Clone(),
	}
}

// IsCheckedIn reports whether the referenced participant is on the roster
func (r *Roster) IsCheckedIn(ref ParticipantRef) bool {
	switch ref.Kind {
	case KindMember:
		return r.Members.Has(MemberID(ref.ID))
	case KindDependent:
		return r.Dependents.Has(DependentID(ref.ID))
	default:
		return false
	}
}

// Empty reports whether nobody is checked in
func (r *Roster) Empty() bool {
	return len(r.Members) == 0 && len(r.Dependents) == 0
}

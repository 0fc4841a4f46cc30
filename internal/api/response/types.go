package response

import (
	"time"

	"github.com/mcoot/assemblie-checkin/internal/model"
	"github.com/mcoot/assemblie-checkin/internal/services/auth"
)

// Member represents a primary member in API responses
type Member struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

// MemberFromModel converts a model.Member to a response Member
func MemberFromModel(m *model.Member) Member {
	return Member{
		ID:          string(m.ID),
		DisplayName: m.DisplayName,
	}
}

// AuthResponse is the response for authentication endpoints
type AuthResponse struct {
	Member       Member `json:"member"`
	SessionToken string `json:"session_token"`
}

// AuthResponseFromSession creates an AuthResponse from a session
func AuthResponseFromSession(s *auth.Session) AuthResponse {
	return AuthResponse{
		Member:       MemberFromModel(&s.Member),
		SessionToken: s.Token,
	}
}

// Dependent represents a household dependent
type Dependent struct {
	ID          string `json:"id"`
	GuardianID  string `json:"guardian_id"`
	DisplayName string `json:"display_name"`
}

// DependentFromModel converts model.Dependent
func DependentFromModel(d *model.Dependent) Dependent {
	return Dependent{
		ID:          string(d.ID),
		GuardianID:  string(d.GuardianID),
		DisplayName: d.DisplayName,
	}
}

// DependentsResponse lists a member's household
type DependentsResponse struct {
	Dependents []Dependent `json:"dependents"`
}

// DependentsFromModel converts a list of dependents
func DependentsFromModel(deps []*model.Dependent) DependentsResponse {
	out := make([]Dependent, len(deps))
	for i, d := range deps {
		out[i] = DependentFromModel(d)
	}
	return DependentsResponse{Dependents: out}
}

// Group represents a group in API responses
type Group struct {
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Active    bool      `json:"active"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

// GroupFromModel converts model.Group
func GroupFromModel(g *model.Group) Group {
	return Group{
		Code:      string(g.Code),
		Name:      g.Name,
		Active:    g.Active,
		CreatedBy: string(g.CreatedBy),
		CreatedAt: g.CreatedAt,
	}
}

// GroupsResponse lists groups
type GroupsResponse struct {
	Groups []Group `json:"groups"`
}

// GroupsFromModel converts a list of groups
func GroupsFromModel(groups []*model.Group) GroupsResponse {
	out := make([]Group, len(groups))
	for i, g := range groups {
		out[i] = GroupFromModel(g)
	}
	return GroupsResponse{Groups: out}
}

// Roster is the set of checked-in participants for a group on one day.
// Ids are sorted so responses are stable.
type Roster struct {
	Group      string   `json:"group"`
	Day        string   `json:"day"`
	Members    []string `json:"members"`
	Dependents []string `json:"dependents"`
}

// RosterFromModel converts model.Roster
func RosterFromModel(r *model.Roster) Roster {
	members := make([]string, 0, len(r.Members))
	for _, id := range r.Members.Sorted() {
		members = append(members, string(id))
	}
	dependents := make([]string, 0, len(r.Dependents))
	for _, id := range r.Dependents.Sorted() {
		dependents = append(dependents, string(id))
	}
	return Roster{
		Group:      string(r.Group),
		Day:        r.Day,
		Members:    members,
		Dependents: dependents,
	}
}

// ToModel converts the wire roster back to model.Roster
func (r Roster) ToModel() *model.Roster {
	roster := model.NewRoster(model.GroupCode(r.Group), r.Day)
	for _, id := range r.Members {
		roster.Members.Add(model.MemberID(id))
	}
	for _, id := range r.Dependents {
		roster.Dependents.Add(model.DependentID(id))
	}
	return roster
}

// HealthResponse is the response for the health endpoint
type HealthResponse struct {
	Status string `json:"status"`
}

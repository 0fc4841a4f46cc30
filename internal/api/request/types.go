package request

// RegisterRequest is the request body for registering a member
type RegisterRequest struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
}

// LoginRequest is the request body for logging in
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AddDependentRequest is the request body for adding a dependent
type AddDependentRequest struct {
	DisplayName string `json:"display_name"`
}

// CreateGroupRequest is the request body for creating a group
type CreateGroupRequest struct {
	Name string `json:"name"`
}

// AttendanceRequest is the request body for check-in and check-out.
// Members and dependents are separate namespaces and must not be mixed.
type AttendanceRequest struct {
	Members    []string `json:"members,omitempty"`
	Dependents []string `json:"dependents,omitempty"`
}

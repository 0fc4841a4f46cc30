package handler

import (
	"net/http"
	"strings"

	"github.com/mcoot/assemblie-checkin/internal/api/middleware"
	"github.com/mcoot/assemblie-checkin/internal/api/request"
	"github.com/mcoot/assemblie-checkin/internal/api/response"
	"github.com/mcoot/assemblie-checkin/internal/services/auth"
	"github.com/mcoot/assemblie-checkin/internal/services/household"
)

// MemberHandler handles member and household endpoints
type MemberHandler struct {
	authService      *auth.Service
	householdService *household.Service
}

// NewMemberHandler creates a new member handler
func NewMemberHandler(authService *auth.Service, householdService *household.Service) *MemberHandler {
	return &MemberHandler{
		authService:      authService,
		householdService: householdService,
	}
}

// Register handles POST /api/v1/members/register
func (h *MemberHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if req.Username == "" {
		WriteError(w, NewInvalidRequestError("username is required"))
		return
	}
	if req.Password == "" {
		WriteError(w, NewInvalidRequestError("password is required"))
		return
	}
	if strings.TrimSpace(req.DisplayName) == "" {
		WriteError(w, NewInvalidRequestError("display_name is required"))
		return
	}

	session, err := h.authService.RegisterMember(r.Context(), req.Username, req.Password, strings.TrimSpace(req.DisplayName))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.AuthResponseFromSession(session))
}

// Login handles POST /api/v1/members/login
func (h *MemberHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if req.Username == "" {
		WriteError(w, NewInvalidRequestError("username is required"))
		return
	}
	if req.Password == "" {
		WriteError(w, NewInvalidRequestError("password is required"))
		return
	}

	session, err := h.authService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.AuthResponseFromSession(session))
}

// GetMe handles GET /api/v1/members/me
func (h *MemberHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	member := middleware.MustGetMember(r.Context())
	response.JSON(w, http.StatusOK, response.MemberFromModel(member))
}

// AddDependent handles POST /api/v1/members/me/dependents
func (h *MemberHandler) AddDependent(w http.ResponseWriter, r *http.Request) {
	member := middleware.MustGetMember(r.Context())

	var req request.AddDependentRequest
	if !decodeBody(w, r, &req) {
		return
	}

	name := strings.TrimSpace(req.DisplayName)
	if name == "" {
		WriteError(w, NewInvalidRequestError("display_name is required"))
		return
	}

	dependent, err := h.householdService.AddDependent(r.Context(), member.ID, name)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.DependentFromModel(dependent))
}

// ListDependents handles GET /api/v1/members/me/dependents
func (h *MemberHandler) ListDependents(w http.ResponseWriter, r *http.Request) {
	member := middleware.MustGetMember(r.Context())

	deps, err := h.householdService.ListDependents(r.Context(), member.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.DependentsFromModel(deps))
}

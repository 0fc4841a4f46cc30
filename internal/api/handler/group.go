package handler

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/mcoot/assemblie-checkin/internal/api/middleware"
	"github.com/mcoot/assemblie-checkin/internal/api/request"
	"github.com/mcoot/assemblie-checkin/internal/api/response"
	"github.com/mcoot/assemblie-checkin/internal/model"
	"github.com/mcoot/assemblie-checkin/internal/services/group"
)

// GroupHandler handles group endpoints
type GroupHandler struct {
	groupController *group.Controller
}

// NewGroupHandler creates a new group handler
func NewGroupHandler(groupController *group.Controller) *GroupHandler {
	return &GroupHandler{
		groupController: groupController,
	}
}

// Create handles POST /api/v1/groups
func (h *GroupHandler) Create(w http.ResponseWriter, r *http.Request) {
	member := middleware.MustGetMember(r.Context())

	var req request.CreateGroupRequest
	if !decodeBody(w, r, &req) {
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		WriteError(w, NewInvalidRequestError("name is required"))
		return
	}

	g, err := h.groupController.CreateGroup(r.Context(), member.ID, name)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.GroupFromModel(g))
}

// List handles GET /api/v1/groups
func (h *GroupHandler) List(w http.ResponseWriter, r *http.Request) {
	groups, err := h.groupController.ListGroups(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GroupsFromModel(groups))
}

// Get handles GET /api/v1/groups/{code}
func (h *GroupHandler) Get(w http.ResponseWriter, r *http.Request) {
	g, err := h.groupController.GetGroup(r.Context(), groupCode(r))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GroupFromModel(g))
}

// Activate handles POST /api/v1/groups/{code}/activate
func (h *GroupHandler) Activate(w http.ResponseWriter, r *http.Request) {
	member := middleware.MustGetMember(r.Context())

	g, err := h.groupController.Activate(r.Context(), groupCode(r), member.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GroupFromModel(g))
}

// Deactivate handles POST /api/v1/groups/{code}/deactivate
func (h *GroupHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	member := middleware.MustGetMember(r.Context())

	g, err := h.groupController.Deactivate(r.Context(), groupCode(r), member.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GroupFromModel(g))
}

// groupCode reads the {code} path variable in canonical form
func groupCode(r *http.Request) model.GroupCode {
	return group.NormalizeCode(model.GroupCode(mux.Vars(r)["code"]))
}

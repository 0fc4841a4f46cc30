package handler

import (
	"net/http"

	"github.com/mcoot/assemblie-checkin/internal/api/middleware"
	"github.com/mcoot/assemblie-checkin/internal/api/request"
	"github.com/mcoot/assemblie-checkin/internal/api/response"
	"github.com/mcoot/assemblie-checkin/internal/model"
	"github.com/mcoot/assemblie-checkin/internal/services/attendance"
)

// AttendanceHandler handles roster and check-in endpoints
type AttendanceHandler struct {
	attendanceService *attendance.Service
}

// NewAttendanceHandler creates a new attendance handler
func NewAttendanceHandler(attendanceService *attendance.Service) *AttendanceHandler {
	return &AttendanceHandler{
		attendanceService: attendanceService,
	}
}

// Roster handles GET /api/v1/groups/{code}/roster
func (h *AttendanceHandler) Roster(w http.ResponseWriter, r *http.Request) {
	member := middleware.MustGetMember(r.Context())

	roster, err := h.attendanceService.Roster(r.Context(), member.ID, groupCode(r))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.RosterFromModel(roster))
}

// CheckIn handles POST /api/v1/groups/{code}/check-in
func (h *AttendanceHandler) CheckIn(w http.ResponseWriter, r *http.Request) {
	member := middleware.MustGetMember(r.Context())

	var req request.AttendanceRequest
	if !decodeBody(w, r, &req) {
		return
	}

	members, dependents := participantIDs(req)
	if err := h.attendanceService.CheckIn(r.Context(), member.ID, groupCode(r), members, dependents); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// CheckOut handles POST /api/v1/groups/{code}/check-out
func (h *AttendanceHandler) CheckOut(w http.ResponseWriter, r *http.Request) {
	member := middleware.MustGetMember(r.Context())

	var req request.AttendanceRequest
	if !decodeBody(w, r, &req) {
		return
	}

	members, dependents := participantIDs(req)
	if err := h.attendanceService.CheckOut(r.Context(), member.ID, groupCode(r), members, dependents); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

func participantIDs(req request.AttendanceRequest) ([]model.MemberID, []model.DependentID) {
	members := make([]model.MemberID, len(req.Members))
	for i, id := range req.Members {
		members[i] = model.MemberID(id)
	}
	dependents := make([]model.DependentID, len(req.Dependents))
	for i, id := range req.Dependents {
		dependents[i] = model.DependentID(id)
	}
	return members, dependents
}

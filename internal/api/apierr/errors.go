package apierr

import (
	"errors"
	"net/http"

	"github.com/mcoot/assemblie-checkin/internal/api/response"
	"github.com/mcoot/assemblie-checkin/internal/model"
	"github.com/mcoot/assemblie-checkin/internal/services/auth"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest     = "INVALID_REQUEST"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeMemberNotFound     = "MEMBER_NOT_FOUND"
	CodeDependentNotFound  = "DEPENDENT_NOT_FOUND"
	CodeNotHousehold       = "NOT_HOUSEHOLD"
	CodeGroupNotFound      = "GROUP_NOT_FOUND"
	CodeGroupInactive      = "GROUP_INACTIVE"
	CodeNotGroupOwner      = "NOT_GROUP_OWNER"
	CodeInvalidParticipant = "INVALID_PARTICIPANT"
	CodeEmptyBatch         = "EMPTY_BATCH"
	CodeUsernameExists     = "USERNAME_EXISTS"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeInternalError      = "INTERNAL_ERROR"
)

// codeErrors maps codes back to the errors that produce them, for clients
var codeErrors = map[string]error{
	CodeMemberNotFound:     model.ErrMemberNotFound,
	CodeDependentNotFound:  model.ErrDependentNotFound,
	CodeNotHousehold:       model.ErrNotHousehold,
	CodeGroupNotFound:      model.ErrGroupNotFound,
	CodeGroupInactive:      model.ErrGroupInactive,
	CodeNotGroupOwner:      model.ErrNotGroupOwner,
	CodeInvalidParticipant: model.ErrInvalidParticipant,
	CodeEmptyBatch:         model.ErrEmptyBatch,
	CodeUsernameExists:     auth.ErrUsernameExists,
	CodeInvalidCredentials: auth.ErrInvalidCredentials,
	CodeUnauthorized:       auth.ErrInvalidSession,
}

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	response.JSON(w, he.status, ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	// Check for specific error types
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	// Map model errors
	switch {
	case errors.Is(err, model.ErrMemberNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeMemberNotFound, "Member not found"}}
	case errors.Is(err, model.ErrDependentNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeDependentNotFound, "Dependent not found"}}
	case errors.Is(err, model.ErrNotHousehold):
		return &httpError{http.StatusForbidden, APIError{CodeNotHousehold, err.Error()}}
	case errors.Is(err, model.ErrGroupNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeGroupNotFound, "Group not found"}}
	case errors.Is(err, model.ErrGroupInactive):
		return &httpError{http.StatusConflict, APIError{CodeGroupInactive, "Group is not accepting check-ins"}}
	case errors.Is(err, model.ErrNotGroupOwner):
		return &httpError{http.StatusForbidden, APIError{CodeNotGroupOwner, "Only the group's creator can do this"}}
	case errors.Is(err, model.ErrInvalidParticipant):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidParticipant, err.Error()}}
	case errors.Is(err, model.ErrEmptyBatch):
		return &httpError{http.StatusBadRequest, APIError{CodeEmptyBatch, "No participants given"}}

	// Map auth errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		return &httpError{http.StatusUnauthorized, APIError{CodeInvalidCredentials, "Invalid username or password"}}
	case errors.Is(err, auth.ErrInvalidSession):
		return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Invalid or expired session"}}
	case errors.Is(err, auth.ErrUsernameExists):
		return &httpError{http.StatusConflict, APIError{CodeUsernameExists, "Username already exists"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// ErrorForCode returns the error a response code stands for, or nil if the
// code has no matching error
func ErrorForCode(code string) error {
	return codeErrors[code]
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Authentication required"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}

// NewInternalErrorForRequest creates an internal server error that quotes
// the request id so a report can be matched to the server log
func NewInternalErrorForRequest(requestID string) error {
	if requestID == "" {
		return NewInternalError()
	}
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error (request " + requestID + ")"}}
}

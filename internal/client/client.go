package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mcoot/assemblie-checkin/internal/api/apierr"
	"github.com/mcoot/assemblie-checkin/internal/api/request"
	"github.com/mcoot/assemblie-checkin/internal/api/response"
	"github.com/mcoot/assemblie-checkin/internal/checkin"
	"github.com/mcoot/assemblie-checkin/internal/model"
)

const apiPrefix = "/api/v1"

// Client is an HTTP client for the attendance API.
// It implements checkin.AttendanceService for the signed-in member.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

var _ checkin.AttendanceService = (*Client)(nil)

// New creates a new API client
func New(baseURL, token string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		token:   token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// SetToken updates the client's token
func (c *Client) SetToken(token string) {
	c.token = token
}

// Error is an error response from the API.
// It unwraps to the matching model or auth error when the code has one,
// and to model.ErrServiceUnavailable for server-side failures.
type Error struct {
	Status  int
	Code    string
	Message string
}

func (e *Error) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("HTTP %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("%s (%s)", e.Message, e.Code)
}

func (e *Error) Unwrap() error {
	if err := apierr.ErrorForCode(e.Code); err != nil {
		return err
	}
	if e.Status >= http.StatusInternalServerError {
		return model.ErrServiceUnavailable
	}
	return nil
}

// Do performs an HTTP request against the versioned API
func (c *Client) Do(ctx context.Context, method, path string, body, result any) error {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+apiPrefix+path, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", model.ErrServiceUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: failed to read response: %w", model.ErrServiceUnavailable, err)
	}

	// Check for error responses
	if resp.StatusCode >= 400 {
		var errResp apierr.ErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Error.Code != "" {
			return &Error{Status: resp.StatusCode, Code: errResp.Error.Code, Message: errResp.Error.Message}
		}
		return &Error{Status: resp.StatusCode, Message: strings.TrimSpace(string(respBody))}
	}

	// Parse successful response
	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
	}

	return nil
}

// Members

// Register creates a member account and adopts its session token
func (c *Client) Register(ctx context.Context, username, password, displayName string) (*response.AuthResponse, error) {
	var resp response.AuthResponse
	err := c.Do(ctx, http.MethodPost, "/members/register", request.RegisterRequest{
		Username:    username,
		Password:    password,
		DisplayName: displayName,
	}, &resp)
	if err != nil {
		return nil, err
	}
	c.token = resp.SessionToken
	return &resp, nil
}

// Login signs in and adopts the session token
func (c *Client) Login(ctx context.Context, username, password string) (*response.AuthResponse, error) {
	var resp response.AuthResponse
	err := c.Do(ctx, http.MethodPost, "/members/login", request.LoginRequest{
		Username: username,
		Password: password,
	}, &resp)
	if err != nil {
		return nil, err
	}
	c.token = resp.SessionToken
	return &resp, nil
}

// Me returns the signed-in member
func (c *Client) Me(ctx context.Context) (*response.Member, error) {
	var resp response.Member
	if err := c.Do(ctx, http.MethodGet, "/members/me", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// AddDependent adds a dependent to the signed-in member's household
func (c *Client) AddDependent(ctx context.Context, displayName string) (*response.Dependent, error) {
	var resp response.Dependent
	err := c.Do(ctx, http.MethodPost, "/members/me/dependents", request.AddDependentRequest{DisplayName: displayName}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListDependents returns the signed-in member's household in insertion order
func (c *Client) ListDependents(ctx context.Context) ([]response.Dependent, error) {
	var resp response.DependentsResponse
	if err := c.Do(ctx, http.MethodGet, "/members/me/dependents", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Dependents, nil
}

// Groups

// CreateGroup creates a group owned by the signed-in member
func (c *Client) CreateGroup(ctx context.Context, name string) (*response.Group, error) {
	var resp response.Group
	if err := c.Do(ctx, http.MethodPost, "/groups", request.CreateGroupRequest{Name: name}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListGroups returns all groups
func (c *Client) ListGroups(ctx context.Context) ([]response.Group, error) {
	var resp response.GroupsResponse
	if err := c.Do(ctx, http.MethodGet, "/groups", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Groups, nil
}

// GetGroup returns one group
func (c *Client) GetGroup(ctx context.Context, code model.GroupCode) (*response.Group, error) {
	var resp response.Group
	if err := c.Do(ctx, http.MethodGet, groupPath(code, ""), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ActivateGroup reopens a group to attendance
func (c *Client) ActivateGroup(ctx context.Context, code model.GroupCode) (*response.Group, error) {
	var resp response.Group
	if err := c.Do(ctx, http.MethodPost, groupPath(code, "/activate"), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DeactivateGroup closes a group to attendance
func (c *Client) DeactivateGroup(ctx context.Context, code model.GroupCode) (*response.Group, error) {
	var resp response.Group
	if err := c.Do(ctx, http.MethodPost, groupPath(code, "/deactivate"), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Attendance

// FetchRoster returns today's roster for the group, as visible to the signed-in member
func (c *Client) FetchRoster(ctx context.Context, group model.GroupCode) (*model.Roster, error) {
	var resp response.Roster
	if err := c.Do(ctx, http.MethodGet, groupPath(group, "/roster"), nil, &resp); err != nil {
		return nil, err
	}

	roster := resp.ToModel()
	for id := range roster.Members {
		if !id.Valid() {
			return nil, fmt.Errorf("%w: roster member %q", model.ErrInvalidParticipant, id)
		}
	}
	for id := range roster.Dependents {
		if !id.Valid() {
			return nil, fmt.Errorf("%w: roster dependent %q", model.ErrInvalidParticipant, id)
		}
	}
	return roster, nil
}

// CheckIn adds the participants to today's roster in one request
func (c *Client) CheckIn(ctx context.Context, group model.GroupCode, members []model.MemberID, dependents []model.DependentID) error {
	return c.Do(ctx, http.MethodPost, groupPath(group, "/check-in"), attendanceRequest(members, dependents), nil)
}

// CheckOut removes the participants from today's roster in one request
func (c *Client) CheckOut(ctx context.Context, group model.GroupCode, members []model.MemberID, dependents []model.DependentID) error {
	return c.Do(ctx, http.MethodPost, groupPath(group, "/check-out"), attendanceRequest(members, dependents), nil)
}

// Health checks that the server is up
func (c *Client) Health(ctx context.Context) (*response.HealthResponse, error) {
	var resp response.HealthResponse
	if err := c.Do(ctx, http.MethodGet, "/health", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// IsUnavailable reports whether err means the server could not be reached or failed
func IsUnavailable(err error) bool {
	return errors.Is(err, model.ErrServiceUnavailable)
}

func groupPath(code model.GroupCode, suffix string) string {
	return "/groups/" + url.PathEscape(string(code)) + suffix
}

func attendanceRequest(members []model.MemberID, dependents []model.DependentID) request.AttendanceRequest {
	req := request.AttendanceRequest{}
	for _, id := range members {
		req.Members = append(req.Members, string(id))
	}
	for _, id := range dependents {
		req.Dependents = append(req.Dependents, string(id))
	}
	return req
}

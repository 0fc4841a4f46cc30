package group

import (
	"context"
	"log/slog"
	"strings"

	"github.com/mcoot/assemblie-checkin/internal/dependencies/clock"
	"github.com/mcoot/assemblie-checkin/internal/dependencies/random"
	"github.com/mcoot/assemblie-checkin/internal/model"
	"github.com/mcoot/assemblie-checkin/internal/storage"
)

const (
	// CodeLength is the length of generated group codes
	CodeLength = 6
	// CodeAlphabet is the characters used in group codes (avoid confusing chars)
	CodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
)

// Controller manages groups and whether they accept attendance
type Controller struct {
	storage storage.Storage
	clock   clock.Clock
	random  random.Random
	logger  *slog.Logger
}

// NewController creates a new group Controller
func NewController(storage storage.Storage, clock clock.Clock, random random.Random, logger *slog.Logger) *Controller {
	return &Controller{
		storage: storage,
		clock:   clock,
		random:  random,
		logger:  logger,
	}
}

// CreateGroup creates an active group owned by creator
func (c *Controller) CreateGroup(ctx context.Context, creator model.MemberID, name string) (*model.Group, error) {
	now := c.clock.Now()

	// Generate unique group code
	var code model.GroupCode
	for {
		code = model.GroupCode(c.random.String(CodeLength, CodeAlphabet))
		exists, err := c.storage.GroupExists(ctx, code)
		if err != nil {
			return nil, err
		}
		if !exists {
			break
		}
	}

	group := &model.Group{
		Code:      code,
		Name:      name,
		Active:    true,
		CreatedBy: creator,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := c.storage.SaveGroup(ctx, group); err != nil {
		return nil, err
	}

	c.logger.Info("group created",
		slog.String("group", string(code)),
		slog.String("created_by", string(creator)),
	)
	return group, nil
}

// GetGroup retrieves a group by code. Codes are case-insensitive.
func (c *Controller) GetGroup(ctx context.Context, code model.GroupCode) (*model.Group, error) {
	return c.storage.GetGroup(ctx, NormalizeCode(code))
}

// ListGroups returns all groups ordered by code
func (c *Controller) ListGroups(ctx context.Context) ([]*model.Group, error) {
	return c.storage.ListGroups(ctx)
}

// Activate lets the group accept roster reads and check-ins again
func (c *Controller) Activate(ctx context.Context, code model.GroupCode, actor model.MemberID) (*model.Group, error) {
	return c.setActive(ctx, code, actor, true)
}

// Deactivate closes the group to attendance; existing check-ins are kept
func (c *Controller) Deactivate(ctx context.Context, code model.GroupCode, actor model.MemberID) (*model.Group, error) {
	return c.setActive(ctx, code, actor, false)
}

func (c *Controller) setActive(ctx context.Context, code model.GroupCode, actor model.MemberID, active bool) (*model.Group, error) {
	group, err := c.storage.GetGroup(ctx, NormalizeCode(code))
	if err != nil {
		return nil, err
	}

	if group.CreatedBy != actor {
		return nil, model.ErrNotGroupOwner
	}

	if group.Active == active {
		return group, nil
	}

	group.Active = active
	group.UpdatedAt = c.clock.Now()
	if err := c.storage.SaveGroup(ctx, group); err != nil {
		return nil, err
	}

	c.logger.Info("group active state changed",
		slog.String("group", string(group.Code)),
		slog.Bool("active", active),
	)
	return group, nil
}

// NormalizeCode canonicalizes a user-entered group code
func NormalizeCode(code model.GroupCode) model.GroupCode {
	return model.GroupCode(strings.ToUpper(strings.TrimSpace(string(code))))
}

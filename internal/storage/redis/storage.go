package redis

import (
	"context"
	"encoding/json"
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mcoot/assemblie-checkin/internal/model"
	"github.com/mcoot/assemblie-checkin/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Member operations

func (s *Storage) SaveMember(ctx context.Context, member *model.Member) error {
	return s.setJSON(ctx, memberKey(member.ID), member)
}

func (s *Storage) GetMember(ctx context.Context, id model.MemberID) (*model.Member, error) {
	var member model.Member
	if err := s.getJSON(ctx, memberKey(id), &member, model.ErrMemberNotFound); err != nil {
		return nil, err
	}
	return &member, nil
}

// Registered member operations

func (s *Storage) SaveRegisteredMember(ctx context.Context, rm *model.RegisteredMember) error {
	data, err := json.Marshal(rm)
	if err != nil {
		return err
	}

	// Use pipeline for atomic save + index update
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, registeredMemberKey(rm.MemberID), data, 0)
	pipe.Set(ctx, usernameIndexKey(rm.Username), string(rm.MemberID), 0)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetRegisteredMemberByUsername(ctx context.Context, username string) (*model.RegisteredMember, error) {
	memberID, err := s.client.Get(ctx, usernameIndexKey(username)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrMemberNotFound
		}
		return nil, err
	}

	var rm model.RegisteredMember
	if err := s.getJSON(ctx, registeredMemberKey(model.MemberID(memberID)), &rm, model.ErrMemberNotFound); err != nil {
		return nil, err
	}
	return &rm, nil
}

// Dependent operations

func (s *Storage) SaveDependent(ctx context.Context, dependent *model.Dependent) error {
	data, err := json.Marshal(dependent)
	if err != nil {
		return err
	}

	key := dependentKey(dependent.ID)
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, key, data, 0)
	pipe.SAdd(ctx, householdIndexKey(dependent.GuardianID), key)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetDependent(ctx context.Context, id model.DependentID) (*model.Dependent, error) {
	var dependent model.Dependent
	if err := s.getJSON(ctx, dependentKey(id), &dependent, model.ErrDependentNotFound); err != nil {
		return nil, err
	}
	return &dependent, nil
}

func (s *Storage) ListDependents(ctx context.Context, guardian model.MemberID) ([]*model.Dependent, error) {
	values, err := s.loadIndexed(ctx, householdIndexKey(guardian))
	if err != nil {
		return nil, err
	}

	deps := make([]*model.Dependent, 0, len(values))
	for _, data := range values {
		var d model.Dependent
		if err := json.Unmarshal(data, &d); err != nil {
			continue // Skip invalid data
		}
		deps = append(deps, &d)
	}
	slices.SortFunc(deps, func(a, b *model.Dependent) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(string(a.ID), string(b.ID))
	})
	return deps, nil
}

// Group operations

func (s *Storage) SaveGroup(ctx context.Context, group *model.Group) error {
	data, err := json.Marshal(group)
	if err != nil {
		return err
	}

	key := groupKey(group.Code)
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, key, data, 0)
	pipe.SAdd(ctx, groupsIndexKey(), key)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetGroup(ctx context.Context, code model.GroupCode) (*model.Group, error) {
	var group model.Group
	if err := s.getJSON(ctx, groupKey(code), &group, model.ErrGroupNotFound); err != nil {
		return nil, err
	}
	return &group, nil
}

func (s *Storage) GroupExists(ctx context.Context, code model.GroupCode) (bool, error) {
	exists, err := s.client.Exists(ctx, groupKey(code)).Result()
	if err != nil {
		return false, err
	}
	return exists > 0, nil
}

func (s *Storage) ListGroups(ctx context.Context) ([]*model.Group, error) {
	values, err := s.loadIndexed(ctx, groupsIndexKey())
	if err != nil {
		return nil, err
	}

	groups := make([]*model.Group, 0, len(values))
	for _, data := range values {
		var g model.Group
		if err := json.Unmarshal(data, &g); err != nil {
			continue // Skip invalid data
		}
		groups = append(groups, &g)
	}
	slices.SortFunc(groups, func(a, b *model.Group) int {
		return strings.Compare(string(a.Code), string(b.Code))
	})
	return groups, nil
}

// Attendance operations

func (s *Storage) AddCheckIns(ctx context.Context, code model.GroupCode, day string, members []model.MemberID, dependents []model.DependentID) error {
	if len(members) == 0 && len(dependents) == 0 {
		return nil
	}

	membersKey := checkedInMembersKey(code, day)
	dependentsKey := checkedInDependentsKey(code, day)

	pipe := s.client.TxPipeline()
	if len(members) > 0 {
		pipe.SAdd(ctx, membersKey, toMembers(members)...)
		pipe.Expire(ctx, membersKey, s.cfg.AttendanceTTL)
	}
	if len(dependents) > 0 {
		pipe.SAdd(ctx, dependentsKey, toMembers(dependents)...)
		pipe.Expire(ctx, dependentsKey, s.cfg.AttendanceTTL)
	}
	_, err := pipe.Exec(ctx)
	return err
}

func (s *Storage) RemoveCheckIns(ctx context.Context, code model.GroupCode, day string, members []model.MemberID, dependents []model.DependentID) error {
	if len(members) == 0 && len(dependents) == 0 {
		return nil
	}

	pipe := s.client.TxPipeline()
	if len(members) > 0 {
		pipe.SRem(ctx, checkedInMembersKey(code, day), toMembers(members)...)
	}
	if len(dependents) > 0 {
		pipe.SRem(ctx, checkedInDependentsKey(code, day), toMembers(dependents)...)
	}
	_, err := pipe.Exec(ctx)
	return err
}

func (s *Storage) GetCheckIns(ctx context.Context, code model.GroupCode, day string) (*model.Roster, error) {
	pipe := s.client.Pipeline()
	membersCmd := pipe.SMembers(ctx, checkedInMembersKey(code, day))
	dependentsCmd := pipe.SMembers(ctx, checkedInDependentsKey(code, day))
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, err
	}

	roster := model.NewRoster(code, day)
	for _, id := range membersCmd.Val() {
		roster.Members.Add(model.MemberID(id))
	}
	for _, id := range dependentsCmd.Val() {
		roster.Dependents.Add(model.DependentID(id))
	}
	return roster, nil
}

// Helpers

func (s *Storage) setJSON(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, data, 0).Err()
}

func (s *Storage) getJSON(ctx context.Context, key string, v any, notFound error) error {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return notFound
		}
		return err
	}
	return json.Unmarshal(data, v)
}

// loadIndexed fetches every value whose key is listed in the index SET
func (s *Storage) loadIndexed(ctx context.Context, indexKey string) ([][]byte, error) {
	keys, err := s.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return nil, err
	}
	if len(keys) == 0 {
		return nil, nil
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	out := make([][]byte, 0, len(values))
	for _, val := range values {
		str, ok := val.(string)
		if !ok {
			continue // Entry was deleted after the index was read
		}
		out = append(out, []byte(str))
	}
	return out, nil
}

// toMembers converts ids to the []interface{} form SAdd/SRem expect
func toMembers[T ~string](ids []T) []interface{} {
	members := make([]interface{}, len(ids))
	for i, id := range ids {
		members[i] = string(id)
	}
	return members
}

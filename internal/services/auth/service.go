package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/mcoot/assemblie-checkin/internal/dependencies/clock"
	"github.com/mcoot/assemblie-checkin/internal/dependencies/idgen"
	"github.com/mcoot/assemblie-checkin/internal/model"
	"github.com/mcoot/assemblie-checkin/internal/storage"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidSession     = errors.New("invalid or expired session")
	ErrUsernameExists     = errors.New("username already exists")
)

// Session is a signed-in primary member. The member's household is looked
// up per request, so a session never goes stale when dependents change.
type Session struct {
	Token     string
	MemberID  model.MemberID
	Member    model.Member
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Expired reports whether the session is no longer usable at now
func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

// Config tunes session lifetime and password hashing
type Config struct {
	SessionDuration time.Duration
	// PasswordCost is the bcrypt work factor for new passwords
	PasswordCost int
}

// DefaultConfig returns a one-day session and bcrypt's default cost
func DefaultConfig() Config {
	return Config{
		SessionDuration: 24 * time.Hour,
		PasswordCost:    bcrypt.DefaultCost,
	}
}

// Service registers primary members and tracks their sign-in sessions.
// Credentials live in storage; sessions are process-local.
type Service struct {
	storage  storage.Storage
	clock    clock.Clock
	ids      idgen.Generator
	logger   *slog.Logger
	cfg      Config
	sessions *sessionTable
}

// New creates a Service; zero Config fields take their defaults
func New(storage storage.Storage, clock clock.Clock, ids idgen.Generator, logger *slog.Logger, cfg Config) *Service {
	defaults := DefaultConfig()
	if cfg.SessionDuration <= 0 {
		cfg.SessionDuration = defaults.SessionDuration
	}
	if cfg.PasswordCost == 0 {
		cfg.PasswordCost = defaults.PasswordCost
	}
	return &Service{
		storage:  storage,
		clock:    clock,
		ids:      ids,
		logger:   logger,
		cfg:      cfg,
		sessions: newSessionTable(),
	}
}

// RegisterMember creates a primary member with login credentials and signs them in
func (s *Service) RegisterMember(ctx context.Context, username, password, displayName string) (*Session, error) {
	switch _, err := s.storage.GetRegisteredMemberByUsername(ctx, username); {
	case err == nil:
		return nil, ErrUsernameExists
	case !errors.Is(err, model.ErrMemberNotFound):
		return nil, fmt.Errorf("looking up username: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cfg.PasswordCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	now := s.clock.Now()
	member := &model.Member{ID: s.ids.MemberID(), DisplayName: displayName, CreatedAt: now}
	if err := s.storage.SaveMember(ctx, member); err != nil {
		return nil, fmt.Errorf("saving member: %w", err)
	}
	if err := s.storage.SaveRegisteredMember(ctx, &model.RegisteredMember{
		MemberID:     member.ID,
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}); err != nil {
		return nil, fmt.Errorf("saving credentials: %w", err)
	}

	s.logger.Info("member registered", slog.String("member_id", string(member.ID)))
	return s.startSession(member), nil
}

// Login checks a member's credentials and opens a new session
func (s *Service) Login(ctx context.Context, username, password string) (*Session, error) {
	member, err := s.authenticate(ctx, username, password)
	if errors.Is(err, ErrInvalidCredentials) {
		s.logger.Debug("login rejected", slog.String("username", username))
	}
	if err != nil {
		return nil, err
	}
	return s.startSession(member), nil
}

// authenticate resolves username to its member if password matches.
// Unknown users and wrong passwords are indistinguishable to the caller.
func (s *Service) authenticate(ctx context.Context, username, password string) (*model.Member, error) {
	rm, err := s.storage.GetRegisteredMemberByUsername(ctx, username)
	if errors.Is(err, model.ErrMemberNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(rm.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return s.storage.GetMember(ctx, rm.MemberID)
}

// ValidateSession returns the live session for token
func (s *Service) ValidateSession(token string) (*Session, error) {
	session, ok := s.sessions.lookup(token, s.clock.Now())
	if !ok {
		return nil, ErrInvalidSession
	}
	return session, nil
}

// InvalidateSession signs a session out; unknown tokens are ignored
func (s *Service) InvalidateSession(token string) {
	s.sessions.drop(token)
}

// CleanExpiredSessions drops expired sessions and returns how many were removed.
// The server calls it on a ticker.
func (s *Service) CleanExpiredSessions() int {
	return s.sessions.sweep(s.clock.Now())
}

func (s *Service) startSession(member *model.Member) *Session {
	now := s.clock.Now()
	session := &Session{
		Token:     s.ids.Token(),
		MemberID:  member.ID,
		Member:    *member,
		CreatedAt: now,
		ExpiresAt: now.Add(s.cfg.SessionDuration),
	}
	s.sessions.put(session)
	s.logger.Debug("session started", slog.String("member_id", string(member.ID)))
	return session
}

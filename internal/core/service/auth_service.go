package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/VenkateshW22/teamflow-api/internal/core/domain"
	"github.com/VenkateshW22/teamflow-api/internal/core/identity"
	"github.com/VenkateshW22/teamflow-api/internal/core/ports"
	"github.com/VenkateshW22/teamflow-api/internal/core/token"
)

// SignInThrottle limits failed sign-in attempts per username (Redis).
type SignInThrottle interface {
	Blocked(ctx context.Context, username string) (bool, error)
	RecordFailure(ctx context.Context, username string) error
	Reset(ctx context.Context, username string) error
}

// AuthService implements sign-in, sign-up, and current-user resolution.
// ErrUserNotFound and ErrInvalidCredentials stay distinct here for logging
// and tests; the HTTP error handler collapses them into one generic response.
type AuthService struct {
	users    ports.UserRepository
	codec    *token.Codec
	throttle SignInThrottle
	audit    ports.AuditRecorder
	log      zerolog.Logger
}

// NewAuthService wires the service. throttle and audit may be nil; both are
// best-effort collaborators and never fail an otherwise valid sign-in.
func NewAuthService(users ports.UserRepository, codec *token.Codec, throttle SignInThrottle, audit ports.AuditRecorder, log zerolog.Logger) *AuthService {
	return &AuthService{users: users, codec: codec, throttle: throttle, audit: audit, log: log}
}

func (s *AuthService) SignIn(ctx context.Context, username, password string) (*ports.AuthResult, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	if s.throttle != nil {
		blocked, err := s.throttle.Blocked(ctx, username)
		if err != nil {
			s.log.Warn().Err(err).Str("username", username).Msg("throttle check failed, allowing attempt")
		} else if blocked {
			return nil, domain.ErrTooManyAttempts
		}
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.failed(ctx, username, "unknown user")
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.failed(ctx, username, "bad password")
		return nil, domain.ErrInvalidCredentials
	}

	tok, err := s.codec.Mint(identity.Identity{
		Subject: user.Username,
		UserID:  user.ID,
		Email:   user.Email,
		Roles:   user.Roles,
	})
	if err != nil {
		return nil, fmt.Errorf("mint token: %w", err)
	}

	if s.throttle != nil {
		if err := s.throttle.Reset(ctx, username); err != nil {
			s.log.Warn().Err(err).Str("username", username).Msg("throttle reset failed")
		}
	}
	s.record(domain.AuthEvent{Subject: username, Action: domain.AuditSignIn, Timestamp: time.Now().UTC()})

	return &ports.AuthResult{Token: tok, User: user}, nil
}

// SignUp creates the account with the default member role and then behaves
// as a sign-in with the supplied credentials.
func (s *AuthService) SignUp(ctx context.Context, username, email, password string) (*ports.AuthResult, error) {
	if username == "" || email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Roles:        []string{domain.RoleMember},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if _, err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	s.record(domain.AuthEvent{Subject: username, Action: domain.AuditSignUp, Timestamp: time.Now().UTC()})

	return s.SignIn(ctx, username, password)
}

// CurrentUser resolves the caller from the request's identity context and
// returns the stored account. An empty context is a client error
// (ErrNotAuthenticated), never a server fault.
func (s *AuthService) CurrentUser(ctx context.Context) (*domain.User, error) {
	id, ok := identity.FromContext(ctx)
	if !ok || id.Subject == "" {
		return nil, domain.ErrNotAuthenticated
	}
	return s.users.FindByUsername(ctx, id.Subject)
}

func (s *AuthService) failed(ctx context.Context, username, reason string) {
	if s.throttle != nil {
		if err := s.throttle.RecordFailure(ctx, username); err != nil {
			s.log.Warn().Err(err).Str("username", username).Msg("throttle record failed")
		}
	}
	s.record(domain.AuthEvent{Subject: username, Action: domain.AuditSignInFailed, Reason: reason, Timestamp: time.Now().UTC()})
}

func (s *AuthService) record(event domain.AuthEvent) {
	if s.audit != nil {
		s.audit.Record(event)
	}
}

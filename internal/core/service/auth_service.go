package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/storepulse/store-rating/internal/core/domain"
	"github.com/storepulse/store-rating/internal/core/ports"
)

// PasswordCost is the bcrypt work factor for stored passwords.
const PasswordCost = 10

// AuthService implements registration, login, password change and logout.
type AuthService struct {
	users    ports.UserRepository
	tokens   ports.TokenIssuer
	denylist ports.TokenDenylist // nil disables server-side revocation
	activity ports.ActivityLog
	log      zerolog.Logger
	cost     int

	dummyOnce sync.Once
	dummyHash []byte
}

// AuthOption customises an AuthService.
type AuthOption func(*AuthService)

// WithPasswordCost overrides the bcrypt cost. Tests use bcrypt.MinCost.
func WithPasswordCost(cost int) AuthOption {
	return func(s *AuthService) { s.cost = cost }
}

// WithDenylist enables token revocation on logout.
func WithDenylist(d ports.TokenDenylist) AuthOption {
	return func(s *AuthService) { s.denylist = d }
}

func NewAuthService(users ports.UserRepository, tokens ports.TokenIssuer, activity ports.ActivityLog, log zerolog.Logger, opts ...AuthOption) *AuthService {
	s := &AuthService{
		users:    users,
		tokens:   tokens,
		activity: activity,
		log:      log,
		cost:     PasswordCost,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register creates an account and returns it with a session token.
// Anonymous callers always get USER; ADMIN requires an ADMIN caller.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error) {
	name := strings.TrimSpace(in.Name)
	email := domain.NormalizeEmail(in.Email)
	address := strings.TrimSpace(in.Address)

	if err := domain.ValidateRegistration(name, email, in.Password, address); err != nil {
		return nil, err
	}

	role := in.Role
	switch role {
	case "":
		role = domain.RoleUser
	case domain.RoleUser:
	case domain.RoleAdmin:
		if in.CallerRole != domain.RoleAdmin {
			return nil, domain.ErrForbidden
		}
	default:
		return nil, domain.NewValidationError("role must be USER or ADMIN")
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, domain.ErrEmailTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("register: lookup email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("register: hash password: %w", err)
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Address:      address,
		Role:         role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			return nil, err
		}
		return nil, fmt.Errorf("register: %w", err)
	}

	token, exp, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("register: issue token: %w", err)
	}

	s.record(ctx, domain.Activity{
		Action:      domain.ActionUserRegistered,
		ActorID:     user.ID,
		SubjectType: "user",
		SubjectID:   user.ID,
		Detail:      string(user.Role),
	})
	s.log.Info().Uint("user_id", user.ID).Str("role", string(user.Role)).Msg("user registered")

	return &ports.AuthResult{User: user, Token: token, ExpiresAt: exp}, nil
}

// Login verifies credentials. An unknown email and a wrong password produce
// the same error and take comparable time.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	email = domain.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			_ = bcrypt.CompareHashAndPassword(s.dummy(), []byte(password))
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	token, exp, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("login: issue token: %w", err)
	}
	return &ports.AuthResult{User: user, Token: token, ExpiresAt: exp}, nil
}

// UpdatePassword replaces the stored hash after checking currentPassword.
func (s *AuthService) UpdatePassword(ctx context.Context, userID uint, currentPassword, newPassword string) error {
	if currentPassword == "" || newPassword == "" {
		return domain.NewValidationError("both currentPassword and newPassword are required")
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)) != nil {
		return domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), s.cost)
	if err != nil {
		return fmt.Errorf("update password: hash: %w", err)
	}
	if err := s.users.UpdatePasswordHash(ctx, userID, string(hash)); err != nil {
		return err
	}

	s.record(ctx, domain.Activity{
		Action:      domain.ActionPasswordChanged,
		ActorID:     userID,
		SubjectType: "user",
		SubjectID:   userID,
	})
	return nil
}

// Logout revokes the presented token until it would have expired anyway.
// Without a denylist this is a no-op and the client simply discards the token.
func (s *AuthService) Logout(ctx context.Context, claims *domain.Claims) error {
	if s.denylist == nil || claims == nil || claims.TokenID == "" {
		return nil
	}
	if err := s.denylist.Revoke(ctx, claims.TokenID, claims.ExpiresAt); err != nil {
		return fmt.Errorf("logout: revoke token: %w", err)
	}
	s.log.Debug().Uint("user_id", claims.UserID).Str("jti", claims.TokenID).Msg("token revoked")
	return nil
}

func (s *AuthService) dummy() []byte {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = bcrypt.GenerateFromPassword([]byte("not-a-real-password"), s.cost)
	})
	return s.dummyHash
}

func (s *AuthService) record(ctx context.Context, entry domain.Activity) {
	recordActivity(ctx, s.activity, s.log, entry)
}

// recordActivity writes to the audit trail; failures are logged, never returned.
func recordActivity(ctx context.Context, log ports.ActivityLog, logger zerolog.Logger, entry domain.Activity) {
	if log == nil {
		return
	}
	if entry.At.IsZero() {
		entry.At = time.Now().UTC()
	}
	if err := log.Record(ctx, entry); err != nil {
		logger.Warn().Err(err).Str("action", string(entry.Action)).Msg("failed to record activity")
	}
}

package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/storepulse/store-rating/internal/core/domain"
)

// DefaultTokenTTL is the fixed lifetime of a session token.
const DefaultTokenTTL = 24 * time.Hour

// sessionClaims is the JWT payload: {id, role} plus registered claims.
type sessionClaims struct {
	UserID uint   `json:"id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies HS256 session tokens. The secret is read
// once at construction and never mutated; rotating it invalidates every
// outstanding token.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenService{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue signs a token for the user that expires ttl from now.
func (s *TokenService) Issue(userID uint, role domain.Role) (string, time.Time, error) {
	now := s.now().UTC()
	exp := now.Add(s.ttl)

	claims := sessionClaims{
		UserID: userID,
		Role:   string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

// Verify checks signature, algorithm and expiry. Every failure collapses to
// domain.ErrInvalidToken.
func (s *TokenService) Verify(token string) (*domain.Claims, error) {
	if token == "" {
		return nil, domain.ErrInvalidToken
	}

	var claims sessionClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !parsed.Valid {
		return nil, errors.Join(domain.ErrInvalidToken, err)
	}

	role, ok := domain.ParseRole(claims.Role)
	if !ok || claims.UserID == 0 {
		return nil, domain.ErrInvalidToken
	}

	out := &domain.Claims{
		UserID:    claims.UserID,
		Role:      role,
		TokenID:   claims.ID,
		ExpiresAt: claims.ExpiresAt.Time,
	}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time
	}
	return out, nil
}

package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/storepulse/store-rating/internal/api/metrics"
	"github.com/storepulse/store-rating/internal/core/domain"
	"github.com/storepulse/store-rating/internal/core/ports"
)

const claimsKey = "auth.claims"

// Auth validates the bearer token, rejects revoked tokens and stores the
// verified claims on the context. denylist may be nil.
func Auth(verifier ports.TokenVerifier, denylist ports.TokenDenylist, log zerolog.Logger) echo.MiddlewareFunc {
	return guard(verifier, denylist, log, true)
}

// OptionalAuth behaves like Auth when an Authorization header is present and
// lets anonymous requests through untouched.
func OptionalAuth(verifier ports.TokenVerifier, denylist ports.TokenDenylist, log zerolog.Logger) echo.MiddlewareFunc {
	return guard(verifier, denylist, log, false)
}

func guard(verifier ports.TokenVerifier, denylist ports.TokenDenylist, log zerolog.Logger, required bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				if !required {
					return next(c)
				}
				metrics.TokensRejectedTotal.WithLabelValues("missing").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "no token provided").SetInternal(domain.ErrMissingToken)
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
				metrics.TokensRejectedTotal.WithLabelValues("malformed").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header").SetInternal(domain.ErrInvalidToken)
			}

			claims, err := verifier.Verify(strings.TrimSpace(parts[1]))
			if err != nil {
				metrics.TokensRejectedTotal.WithLabelValues("invalid").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token").SetInternal(err)
			}

			if denylist != nil && claims.TokenID != "" {
				revoked, err := denylist.IsRevoked(c.Request().Context(), claims.TokenID)
				switch {
				case err != nil:
					// Fail open when the denylist is unreachable.
					log.Warn().Err(err).Str("jti", claims.TokenID).Msg("denylist check failed")
				case revoked:
					metrics.TokensRejectedTotal.WithLabelValues("revoked").Inc()
					return echo.NewHTTPError(http.StatusUnauthorized, "token has been revoked").SetInternal(domain.ErrInvalidToken)
				}
			}

			c.Set(claimsKey, claims)
			return next(c)
		}
	}
}

// ClaimsFrom returns the claims stored by Auth or OptionalAuth.
func ClaimsFrom(c echo.Context) (*domain.Claims, bool) {
	claims, ok := c.Get(claimsKey).(*domain.Claims)
	return claims, ok && claims != nil
}

// WithClaims stores claims on c. Handler tests use it in place of Auth.
func WithClaims(c echo.Context, claims *domain.Claims) {
	c.Set(claimsKey, claims)
}

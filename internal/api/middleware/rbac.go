package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/storepulse/store-rating/internal/core/domain"
)

// RBAC enforces role-based access control. It must run after Auth; a
// request without claims is treated as forbidden.
func RBAC(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := ClaimsFrom(c)
			if !ok {
				return echo.NewHTTPError(http.StatusForbidden, "access denied").SetInternal(domain.ErrForbidden)
			}
			if _, ok := allowed[claims.Role]; !ok {
				return echo.NewHTTPError(http.StatusForbidden, "access denied").SetInternal(domain.ErrForbidden)
			}
			return next(c)
		}
	}
}

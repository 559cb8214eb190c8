package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/storepulse/store-rating/internal/api/middleware"
	"github.com/storepulse/store-rating/internal/core/domain"
)

// callerClaims returns the claims injected by the Auth middleware. Their
// absence means the route was mounted without Auth, which is reported as 401.
func callerClaims(c echo.Context) (*domain.Claims, error) {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims").
			SetInternal(domain.ErrMissingToken)
	}
	return claims, nil
}

// pathID reads a positive integer path parameter.
func pathID(c echo.Context, name, label string) (uint, error) {
	var id uint
	if err := echo.PathParamsBinder(c).MustUint(name, &id).BindError(); err != nil || id == 0 {
		return 0, domain.NewValidationError("invalid " + label + " id")
	}
	return id, nil
}

// bindAndValidate decodes the request body into req and runs struct validation.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return domain.NewValidationError("invalid payload")
	}
	return c.Validate(req)
}

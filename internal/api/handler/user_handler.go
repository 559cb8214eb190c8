package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/storepulse/store-rating/internal/core/domain"
	"github.com/storepulse/store-rating/internal/core/ports"
)

// UserHandler serves the admin user directory.
type UserHandler struct {
	userService ports.UserService
}

func NewUserHandler(userService ports.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// List returns all users, optionally filtered.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        search  query     string  false  "Substring of name or email"
// @Param        role    query     string  false  "ADMIN, OWNER or USER"
// @Success      200     {object}  usersEnvelope
// @Failure      400     {object}  errorResponse
// @Failure      401     {object}  errorResponse
// @Failure      403     {object}  errorResponse
// @Router       /auth/users [get]
func (h *UserHandler) List(c echo.Context) error {
	filter := ports.UserFilter{
		Search: c.QueryParam("search"),
		Role:   domain.Role(strings.ToUpper(strings.TrimSpace(c.QueryParam("role")))),
	}
	users, err := h.userService.ListUsers(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, usersEnvelope{Users: toUserResponses(users)})
}

// Get returns one user by ID.
//
// @Summary      Get user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "User ID"
// @Success      200  {object}  userEnvelope
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /auth/users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id", "user")
	if err != nil {
		return err
	}
	user, err := h.userService.GetUser(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userEnvelope{User: toUserResponse(user)})
}

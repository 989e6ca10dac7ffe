package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/credilinea/intake-system/internal/api/metrics"
	"github.com/credilinea/intake-system/internal/core/domain"
	"github.com/credilinea/intake-system/internal/core/ports"
)

// UserHandler handles the administrator's user-management endpoints.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

type listUsersResponse struct {
	Users []domain.User `json:"users"`
	Count int           `json:"count"`
}

// List handles GET /users — every registrant, pending accounts included.
//
// @Summary      List all users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  listUsersResponse
// @Failure      403  {object}  errorResponse
// @Router       /users [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listUsersResponse{Users: users, Count: len(users)})
}

// SetRole handles PUT /users/:id/role.
//
// @Summary      Change a user's role
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string          true  "User id"
// @Param        body  body      setRoleRequest  true  "New role"
// @Success      200   {object}  domain.User
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /users/{id}/role [put]
func (h *UserHandler) SetRole(c echo.Context) error {
	var req setRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	actorEmail, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	user, err := h.service.SetRole(c.Request().Context(), c.Param("id"), req.Role, actorEmail)
	if err != nil {
		return err
	}

	metrics.RoleChangesTotal.WithLabelValues(req.Role).Inc()
	return c.JSON(http.StatusOK, user)
}

package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/homehub/household-api/internal/api/metrics"
	"github.com/homehub/household-api/internal/core/ports"
)

// UserHandler handles HTTP requests for household account management.
type UserHandler struct {
	userService ports.UserService
}

func NewUserHandler(userService ports.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// List returns all household users.
//
// @Summary      List household users
// @Tags         household-users
// @Produce      json
// @Security     BearerAuth
// @Success      200   {object}  userListResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /api/household-users [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.userService.HouseholdUsers(c.Request().Context())
	if err != nil {
		return err
	}

	resp := userListResponse{HouseholdUsers: make([]userResponse, 0, len(users))}
	for _, u := range users {
		resp.HouseholdUsers = append(resp.HouseholdUsers, toUserResponse(u))
	}
	return c.JSON(http.StatusOK, resp)
}

// Create adds a new household user.
//
// @Summary      Create a household user
// @Tags         household-users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createUserRequest  true  "New user credentials"
// @Success      201   {object}  userResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/household-users [post]
func (h *UserHandler) Create(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.userService.CreateHouseholdUser(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return err
	}

	metrics.UsersCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, toUserResponse(user))
}

// Get returns a single user by id.
//
// @Summary      Get a user by id
// @Tags         household-users
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string  true  "User id"
// @Success      200   {object}  userResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/household-users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	user, err := h.userService.User(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// UpdateUsername renames a household user.
//
// @Summary      Rename a household user
// @Tags         household-users
// @Accept       json
// @Security     BearerAuth
// @Param        id    path      string                 true  "User id"
// @Param        body  body      updateUsernameRequest  true  "New username"
// @Success      204
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/household-users/{id}/username [put]
func (h *UserHandler) UpdateUsername(c echo.Context) error {
	var req updateUsernameRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if _, err := h.userService.UpdateHouseholdUsername(c.Request().Context(), c.Param("id"), req.NewUsername); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// UpdatePassword sets a new password for a user.
//
// @Summary      Change a user's password
// @Tags         household-users
// @Accept       json
// @Security     BearerAuth
// @Param        id    path      string                 true  "User id"
// @Param        body  body      updatePasswordRequest  true  "New password"
// @Success      204
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/household-users/{id}/password [put]
func (h *UserHandler) UpdatePassword(c echo.Context) error {
	var req updatePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if _, err := h.userService.UpdatePassword(c.Request().Context(), c.Param("id"), req.NewPassword); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Delete removes a household user.
//
// @Summary      Delete a household user
// @Tags         household-users
// @Security     BearerAuth
// @Param        id    path      string  true  "User id"
// @Success      204
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/household-users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	if err := h.userService.DeleteHouseholdUser(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}

	metrics.UsersDeletedTotal.Inc()
	return c.NoContent(http.StatusNoContent)
}

// ResetAdminPassword sets a new admin password, guarded by the one-time
// reset code instead of a token.
//
// @Summary      Reset the admin password with the reset code
// @Tags         admin
// @Accept       json
// @Param        body  body      resetPasswordRequest  true  "Reset code and new password"
// @Success      204
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/admin/reset-password [post]
func (h *UserHandler) ResetAdminPassword(c echo.Context) error {
	var req resetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.userService.ResetAdminPassword(c.Request().Context(), req.ResetCode, req.NewPassword); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

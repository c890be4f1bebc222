package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/smartlicense/license-api/internal/core/ports"
)

// UserHandler exposes account management. Password hashes never leave the
// service: domain.User omits them from JSON.
type UserHandler struct {
	identity ports.IdentityService
}

func NewUserHandler(identity ports.IdentityService) *UserHandler {
	return &UserHandler{identity: identity}
}

// Create handles POST /users.
//
// @Summary      Create a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BasicAuth
// @Param        body  body      createUserRequest  true  "Account details"
// @Success      201   {object}  domain.User
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /users [post]
func (h *UserHandler) Create(c echo.Context) error {
	var req createUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.identity.CreateUser(c.Request().Context(), ports.CreateUserInput{
		Username: req.Username,
		Password: req.Password,
		Email:    req.Email,
		Role:     req.Role,
		IsActive: req.IsActive,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, user)
}

// GetByID handles GET /users/id/:user_id.
//
// @Summary      Get a user by id
// @Tags         users
// @Produce      json
// @Security     BasicAuth
// @Param        user_id  path      int  true  "User id"
// @Success      200      {object}  domain.User
// @Failure      404      {object}  errorResponse
// @Router       /users/id/{user_id} [get]
func (h *UserHandler) GetByID(c echo.Context) error {
	id, err := pathID(c, "user_id")
	if err != nil {
		return err
	}
	user, err := h.identity.GetUser(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// GetByUsername handles GET /users/:username.
//
// @Summary      Get a user by username
// @Tags         users
// @Produce      json
// @Security     BasicAuth
// @Param        username  path      string  true  "Username"
// @Success      200       {object}  domain.User
// @Failure      404       {object}  errorResponse
// @Router       /users/{username} [get]
func (h *UserHandler) GetByUsername(c echo.Context) error {
	user, err := h.identity.GetUserByUsername(c.Request().Context(), c.Param("username"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Update handles PUT /users/id/:user_id.
//
// @Summary      Replace a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BasicAuth
// @Param        user_id  path      int                true  "User id"
// @Param        body     body      updateUserRequest  true  "Account details"
// @Success      200      {object}  domain.User
// @Failure      404      {object}  errorResponse
// @Failure      409      {object}  errorResponse
// @Router       /users/id/{user_id} [put]
func (h *UserHandler) Update(c echo.Context) error {
	id, err := pathID(c, "user_id")
	if err != nil {
		return err
	}
	var req updateUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	user, err := h.identity.UpdateUser(c.Request().Context(), id, ports.UpdateUserInput{
		Username: req.Username,
		Password: req.Password,
		Email:    req.Email,
		Role:     req.Role,
		IsActive: active,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// GetActive handles GET /users/:user_id/is_active.
//
// @Summary      Get the active flag of a user
// @Tags         users
// @Produce      json
// @Security     BasicAuth
// @Param        user_id  path      int  true  "User id"
// @Success      200      {object}  ports.ActiveStatus
// @Failure      404      {object}  errorResponse
// @Router       /users/{user_id}/is_active [get]
func (h *UserHandler) GetActive(c echo.Context) error {
	id, err := pathID(c, "user_id")
	if err != nil {
		return err
	}
	status, err := h.identity.GetActive(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, status)
}

// SetActive handles PUT /users/:user_id/is_active. Setting the current value
// again is a no-op that still succeeds.
//
// @Summary      Activate or deactivate a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BasicAuth
// @Param        user_id  path      int               true  "User id"
// @Param        body     body      setActiveRequest  true  "New flag"
// @Success      200      {object}  ports.ActiveStatus
// @Failure      404      {object}  errorResponse
// @Router       /users/{user_id}/is_active [put]
func (h *UserHandler) SetActive(c echo.Context) error {
	id, err := pathID(c, "user_id")
	if err != nil {
		return err
	}
	var req setActiveRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	status, err := h.identity.SetActive(c.Request().Context(), id, *req.IsActive)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, status)
}

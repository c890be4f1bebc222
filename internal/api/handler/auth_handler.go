package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/smartlicense/license-api/internal/api/metrics"
	"github.com/smartlicense/license-api/internal/core/domain"
	"github.com/smartlicense/license-api/internal/core/ports"
)

type AuthHandler struct {
	identity ports.IdentityService
}

func NewAuthHandler(identity ports.IdentityService) *AuthHandler {
	return &AuthHandler{identity: identity}
}

// Root answers GET / so operators can see the process is serving.
//
// @Summary      Service banner
// @Tags         system
// @Produce      json
// @Success      200  {object}  messageResponse
// @Router       / [get]
func (h *AuthHandler) Root(c echo.Context) error {
	return c.JSON(http.StatusOK, messageResponse{Message: "License API is running"})
}

// Login checks staff credentials and returns the caller's identity. No token
// is issued; protected endpoints expect the same credentials via HTTP Basic.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bindAndValidate(c, &req); err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues("invalid_request").Inc()
		return err
	}

	id, err := h.identity.Login(c.Request().Context(), req.Username, req.Password, req.Role)
	if err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues(loginOutcome(err)).Inc()
		return err
	}
	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()

	return c.JSON(http.StatusOK, loginResponse{
		UserID:   id.UserID,
		Username: id.Username,
		Role:     id.Role,
		Email:    id.Email,
	})
}

func loginOutcome(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "invalid_credentials"
	case errors.Is(err, domain.ErrForbidden):
		return "forbidden"
	default:
		return "error"
	}
}

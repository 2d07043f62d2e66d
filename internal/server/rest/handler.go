// Package rest is the thin HTTP surface over the authentication
// services. It translates transport shapes and maps domain errors to
// status codes; it adds no semantics of its own.
package rest

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/authkit/internal/common"
	"github.com/dmitrijs2005/authkit/internal/logging"
	"github.com/dmitrijs2005/authkit/internal/server/models"
	"github.com/dmitrijs2005/authkit/internal/server/services"
	"github.com/labstack/echo/v4"
)

type AuthHandler struct {
	registration *services.RegistrationService
	login        *services.LoginService
	refresh      *services.RefreshService
	federation   *services.FederationService
	logger       logging.Logger
}

func NewAuthHandler(
	registration *services.RegistrationService,
	login *services.LoginService,
	refresh *services.RefreshService,
	federation *services.FederationService,
	logger logging.Logger,
) *AuthHandler {
	return &AuthHandler{
		registration: registration,
		login:        login,
		refresh:      refresh,
		federation:   federation,
		logger:       logger,
	}
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type accountResponse struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Provider string `json:"provider,omitempty"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	SessionID    string `json:"session_id"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type refreshResponse struct {
	AccessToken string `json:"access_token"`
}

type logoutRequest struct {
	SessionID string `json:"session_id"`
}

type federatedRequest struct {
	Provider string `json:"provider"`
	Subject  string `json:"subject"`
	Email    string `json:"email"`
}

func (h *AuthHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"status": "healthy"})
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	account, err := h.registration.Register(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(http.StatusCreated, accountResponse{ID: account.ID, Email: account.Email})
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	result, err := h.login.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(http.StatusOK, loginResponse{
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
		SessionID:    result.SessionID,
	})
}

func (h *AuthHandler) Refresh(c echo.Context) error {
	var req refreshRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	access, err := h.refresh.Refresh(c.Request().Context(), req.RefreshToken)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(http.StatusOK, refreshResponse{AccessToken: access})
}

func (h *AuthHandler) Logout(c echo.Context) error {
	var req logoutRequest
	if err := c.Bind(&req); err != nil || req.SessionID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	if err := h.login.Logout(c.Request().Context(), req.SessionID); err != nil {
		return h.writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Federated consumes a provider identity that the OAuth callback layer
// has already verified and reconciles it with a local account.
func (h *AuthHandler) Federated(c echo.Context) error {
	var req federatedRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	identity := models.ProviderIdentity{Provider: req.Provider, Subject: req.Subject, Email: req.Email}
	account, err := h.federation.Authenticate(c.Request().Context(), identity)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(http.StatusOK, accountResponse{ID: account.ID, Email: account.Email, Provider: account.Provider})
}

func (h *AuthHandler) Me(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"id":    c.Get(ContextKeyUserID),
		"email": c.Get(ContextKeyEmail),
	})
}

// writeError maps domain errors to HTTP status codes. Anything outside
// the closed error set is a storage or internal failure and surfaces as
// an opaque 500.
func (h *AuthHandler) writeError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, common.ErrorValidation):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid input"})
	case errors.Is(err, common.ErrorEmailExists):
		return c.JSON(http.StatusConflict, echo.Map{"error": "email already registered"})
	case errors.Is(err, common.ErrorInvalidCredentials):
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid email/password"})
	case errors.Is(err, common.ErrTokenExpired):
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "token expired"})
	case errors.Is(err, common.ErrInvalidToken):
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
	default:
		h.logger.Error(c.Request().Context(), "request failed", "path", c.Path(), "error", err.Error())
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
}

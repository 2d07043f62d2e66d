package rest

import (
	"errors"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/authkit/internal/common"
	"github.com/dmitrijs2005/authkit/internal/server/auth"
	"github.com/dmitrijs2005/authkit/internal/server/sessions"
	"github.com/labstack/echo/v4"
)

// Context keys under which the middleware stores the authenticated
// identity for downstream handlers.
const (
	ContextKeyUserID = "user_id"
	ContextKeyEmail  = "email"

	sessionHeader = "X-Session-Id"
)

// AccessAuth returns a middleware that requires a Bearer access token
// and a live session. The token must verify and be of access kind; the
// session named by the X-Session-Id header must exist in the store and
// belong to the same account.
func AccessAuth(issuer *auth.Issuer, store sessions.Store) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			raw := strings.TrimPrefix(header, "Bearer ")

			claims, err := issuer.Verify(raw)
			if err != nil {
				if errors.Is(err, common.ErrTokenExpired) {
					return c.JSON(http.StatusUnauthorized, echo.Map{"error": "token expired"})
				}
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}
			if claims.Kind != auth.TokenKindAccess {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}

			sessionID := c.Request().Header.Get(sessionHeader)
			if sessionID == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing session"})
			}
			session, err := store.Get(c.Request().Context(), sessionID)
			if err != nil {
				if errors.Is(err, common.ErrorNotFound) {
					return c.JSON(http.StatusUnauthorized, echo.Map{"error": "session expired"})
				}
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
			}
			if session["uid"] != claims.UserID {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "session mismatch"})
			}

			c.Set(ContextKeyUserID, claims.UserID)
			c.Set(ContextKeyEmail, claims.Email)
			return next(c)
		}
	}
}

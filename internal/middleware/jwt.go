package middleware // middleware provides shared request processing for handlers

import (
	"net/http" // HTTP status codes for responses
	"strings"  // string utilities for prefix checking and trimming

	"github.com/labstack/echo/v4" // Echo framework used for defining middleware and handlers

	"github.com/iliyamo/secure-admin/internal/token"
)

// Context keys under which authenticated claims are stored. Handlers
// and downstream middleware read these via c.Get().
const (
	CtxUserID   = "user_id"
	CtxUsername = "username"
	CtxRoleID   = "role_id"
)

// JWTAuth returns an Echo middleware that validates a Bearer session
// token and injects the subject identity and role claim into the
// request context. Expired, forged and malformed tokens all produce
// the same 401 body; the internal distinction stays in the token
// package for tests and logs. This middleware is the first stage of
// the guard pipeline on every protected route.
func JWTAuth(issuer *token.Issuer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// A valid header starts with "Bearer " followed by the JWT.
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			claims, err := issuer.ParseSession(raw)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}

			c.Set(CtxUserID, claims.UserID)
			c.Set(CtxUsername, claims.Subject)
			c.Set(CtxRoleID, claims.RoleID)
			return next(c)
		}
	}
}

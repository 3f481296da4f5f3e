package middleware

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/secure-admin/internal/policy"
)

// Authorize returns a middleware enforcing the policy table for one
// action. It assumes JWTAuth already stored the role claim in context;
// a missing claim is treated as an unauthenticated request. Denials
// carry the offending role id in the response body so a rejected
// client can see which role it presented.
func Authorize(p *policy.Policy, action policy.Action) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			roleID, ok := c.Get(CtxRoleID).(uint64)
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing role claim"})
			}
			if !p.Allow(roleID, action) {
				return c.JSON(http.StatusForbidden, echo.Map{
					"error": fmt.Sprintf("you do not have permission to perform this action. Your roleId is: %d", roleID),
				})
			}
			return next(c)
		}
	}
}

// SelfGuard returns a middleware that denies an operation when the
// acting subject targets itself. The target id comes from the :id
// route parameter. It runs after Authorize: both stages must pass, so
// even a privileged role cannot modify its own record through a
// guarded route.
func SelfGuard() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			actingID, ok := c.Get(CtxUserID).(uint64)
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing subject claim"})
			}
			targetID, err := strconv.ParseUint(c.Param("id"), 10, 64)
			if err != nil {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
			}
			if !policy.SelfAllowed(actingID, targetID) {
				return c.JSON(http.StatusForbidden, echo.Map{
					"error": fmt.Sprintf("you cannot modify your own record (subject id %d)", actingID),
				})
			}
			return next(c)
		}
	}
}

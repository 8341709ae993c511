package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

const forbiddenMessage = "Access forbidden: Admin privileges required"

// RBAC enforces role-based access control on the role injected by Auth.
func RBAC(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get(ContextRole).(string)
			if _, ok := allowed[role]; !ok {
				return echo.NewHTTPError(http.StatusForbidden, forbiddenMessage)
			}
			return next(c)
		}
	}
}

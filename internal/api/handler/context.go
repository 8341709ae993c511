package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/smarttodo/tasks-api/internal/api/middleware"
)

// ctxUserID extracts the caller id injected by the Auth middleware. An empty
// id means the route was mounted without Auth; reject with 401 instead of
// running an unscoped query.
func ctxUserID(c echo.Context) (string, error) {
	userID, _ := c.Get(middleware.ContextUserID).(string)
	if userID == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "No token provided")
	}
	return userID, nil
}

package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/smarttodo/tasks-api/internal/core/ports"
)

// AdminHandler serves the administrator reports. Routes are mounted behind
// RBAC(admin).
type AdminHandler struct {
	analytics ports.AnalyticsService
}

func NewAdminHandler(analytics ports.AnalyticsService) *AdminHandler {
	return &AdminHandler{analytics: analytics}
}

// Users lists every user with task counts.
//
// @Summary      List users with task counts
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.UserStats
// @Failure      401  {object}  messageResponse
// @Failure      403  {object}  messageResponse
// @Failure      500  {object}  messageResponse
// @Router       /api/admin/users [get]
func (h *AdminHandler) Users(c echo.Context) error {
	users, err := h.analytics.UsersWithStats(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// UserActivity reports one user's task breakdown and recent activity.
//
// @Summary      Per-user activity report
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  domain.UserActivity
// @Failure      401  {object}  messageResponse
// @Failure      403  {object}  messageResponse
// @Failure      404  {object}  messageResponse
// @Failure      500  {object}  messageResponse
// @Router       /api/admin/users/{id}/activity [get]
func (h *AdminHandler) UserActivity(c echo.Context) error {
	report, err := h.analytics.UserActivity(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, report)
}

// Analytics reports system-wide aggregates.
//
// @Summary      System analytics
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.SystemAnalytics
// @Failure      401  {object}  messageResponse
// @Failure      403  {object}  messageResponse
// @Failure      500  {object}  messageResponse
// @Router       /api/admin/analytics [get]
func (h *AdminHandler) Analytics(c echo.Context) error {
	report, err := h.analytics.System(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, report)
}

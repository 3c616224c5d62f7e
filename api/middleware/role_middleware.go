package middleware

import (
	"net/http"

	"hubtrack/internal/entity"

	"github.com/labstack/echo/v4"
)

// RequireAdmin gates the admin surface: user management, cross-owner
// listings and global statistics.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := RoleFromContext(c)
			if !ok || entity.UserRole(role) != entity.UserRoleAdmin {
				return echo.NewHTTPError(http.StatusForbidden, "forbidden")
			}
			return next(c)
		}
	}
}

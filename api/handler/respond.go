package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"hubtrack/api/middleware"
	"hubtrack/internal/entity"
	"hubtrack/internal/service"

	"github.com/labstack/echo/v4"
)

func decodeJSON(c echo.Context, target any) error {
	decoder := json.NewDecoder(c.Request().Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(target)
}

// decodeJSONDropUnknown tolerates keys the target does not declare. Record
// payloads may echo back server-assigned fields (id, user_id, created_at);
// those must be stripped, not rejected.
func decodeJSONDropUnknown(c echo.Context, target any) error {
	return json.NewDecoder(c.Request().Body).Decode(target)
}

func writeError(c echo.Context, status int, err error) error {
	return c.JSON(status, map[string]string{"message": err.Error()})
}

func writeServiceError(c echo.Context, err error) error {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrInvalidCredentials):
		status = http.StatusUnauthorized
	case errors.Is(err, service.ErrEmailAlreadyRegistered):
		status = http.StatusConflict
	case errors.Is(err, service.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, service.ErrNotFound), errors.Is(err, service.ErrUserNotFound):
		status = http.StatusNotFound
	}
	return writeError(c, status, err)
}

// callerIdentity rebuilds the service-level identity from what the auth
// middleware put on the request context.
func callerIdentity(c echo.Context) (service.Identity, bool) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return service.Identity{}, false
	}
	role, ok := middleware.RoleFromContext(c)
	if !ok {
		return service.Identity{}, false
	}
	return service.Identity{UserID: userID, Role: entity.UserRole(role)}, true
}

func parseLimitOffset(c echo.Context) (int, int) {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	return limit, offset
}

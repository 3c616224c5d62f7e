package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hubtrack/api/handler"
	"hubtrack/api/middleware"
	"hubtrack/api/routes"
	"hubtrack/internal/codec"
	"hubtrack/internal/dto"
	"hubtrack/internal/entity"
	"hubtrack/internal/service"
	"hubtrack/internal/testutil"
	"hubtrack/internal/utils"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testApp struct {
	echo  *echo.Echo
	users *testutil.MemoryUserRepository
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	fields, err := codec.New("test-field-secret", logger)
	require.NoError(t, err)

	manager := utils.JWTManager{Secret: []byte("test-secret"), AccessTokenTTL: time.Hour}
	issuer := service.JWTAccessIssuer{Manager: &manager}

	users := testutil.NewMemoryUserRepository()
	records := testutil.NewMemoryRecordRepository()

	authService := service.NewAuthService(users, service.BcryptPasswordHasher{Cost: 4}, issuer)
	recordService := service.NewRecordService(records, fields, service.RealClock{})
	adminService := service.NewAdminService(users, records)

	validate := validator.New()
	app := echo.New()
	router := routes.NewRouter(
		app,
		handler.NewAuthHandler(authService, validate),
		handler.NewRecordHandler(recordService, validate),
		handler.NewAdminHandler(adminService, validate),
		middleware.AuthMiddleware{JWT: &manager},
	)
	router.RegisterRoutes()

	return &testApp{echo: app, users: users}
}

func (a *testApp) request(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.echo.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func (a *testApp) registerAndLogin(t *testing.T, email, password string) (string, string) {
	t.Helper()
	rec := a.request(t, http.MethodPost, "/auth/register", dto.RegisterRequest{
		Email:    email,
		Password: password,
	}, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = a.request(t, http.MethodPost, "/auth/login", dto.LoginRequest{
		Email:    email,
		Password: password,
	}, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	auth := decodeBody[dto.AuthResponse](t, rec)
	require.NotEmpty(t, auth.Token)
	return auth.Token, auth.User.ID
}

func TestRecordLifecycleEndToEnd(t *testing.T) {
	app := newTestApp(t)

	token, userID := app.registerAndLogin(t, "a@x.com", "password1")

	// Duplicate registration conflicts.
	rec := app.request(t, http.MethodPost, "/auth/register", dto.RegisterRequest{
		Email:    "a@x.com",
		Password: "password1",
	}, "")
	assert.Equal(t, http.StatusConflict, rec.Code)

	// Wrong password and unknown email fail the same way.
	rec = app.request(t, http.MethodPost, "/auth/login", dto.LoginRequest{Email: "a@x.com", Password: "wrong-password"}, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	rec = app.request(t, http.MethodPost, "/auth/login", dto.LoginRequest{Email: "nobody@x.com", Password: "password1"}, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Create a record.
	rec = app.request(t, http.MethodPost, "/records", map[string]any{
		"entity_name":     "Jane",
		"entity_phone":    "555-1",
		"processing_fee":  100,
		"additional_cost": 20,
		"amount_paid":     50,
	}, token)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decodeBody[dto.RecordResponse](t, rec)
	assert.Equal(t, userID, created.UserID)
	assert.Equal(t, "Pending", created.Status)
	assert.Equal(t, 120.0, created.TotalValue)
	assert.Equal(t, 70.0, created.Balance)
	assert.Equal(t, "555-1", created.EntityPhone)

	// Search is case-insensitive and returns exactly the record.
	rec = app.request(t, http.MethodGet, "/records/search?q=jane", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	found := decodeBody[[]dto.RecordResponse](t, rec)
	require.Len(t, found, 1)
	assert.Equal(t, created.ID, found[0].ID)
	assert.Equal(t, "555-1", found[0].EntityPhone)

	// Stats for the owner.
	rec = app.request(t, http.MethodGet, "/records/stats/"+userID, nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	stats := decodeBody[dto.OwnerStatsResponse](t, rec)
	assert.Equal(t, 1, stats.Total)
	assert.Equal(t, 1, stats.Pending)
	assert.Equal(t, 50.0, stats.TotalRevenue)
	assert.Equal(t, 70.0, stats.OutstandingBalance)

	// Delete, then the record is gone.
	rec = app.request(t, http.MethodDelete, "/records/"+created.ID, nil, token)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = app.request(t, http.MethodGet, "/records/"+created.ID, nil, token)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestOwnershipEnforcedOverHTTP(t *testing.T) {
	app := newTestApp(t)

	aliceToken, _ := app.registerAndLogin(t, "alice@x.com", "password1")
	bobToken, _ := app.registerAndLogin(t, "bob@x.com", "password1")

	rec := app.request(t, http.MethodPost, "/records", map[string]any{
		"entity_name":  "Jane",
		"entity_phone": "555-1",
	}, aliceToken)
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decodeBody[dto.RecordResponse](t, rec)

	rec = app.request(t, http.MethodGet, "/records/"+created.ID, nil, bobToken)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = app.request(t, http.MethodPut, "/records/"+created.ID, map[string]any{"entity_name": "X"}, bobToken)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = app.request(t, http.MethodDelete, "/records/"+created.ID, nil, bobToken)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// No token at all.
	rec = app.request(t, http.MethodGet, "/records/"+created.ID, nil, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestServerAssignedFieldsAreStripped(t *testing.T) {
	app := newTestApp(t)

	aliceToken, aliceID := app.registerAndLogin(t, "alice@x.com", "password1")
	_, bobID := app.registerAndLogin(t, "bob@x.com", "password1")

	// Server-assigned keys in the payload are dropped, not rejected.
	rec := app.request(t, http.MethodPost, "/records", map[string]any{
		"entity_name":  "Jane",
		"entity_phone": "555-1",
		"id":           "11111111-1111-1111-1111-111111111111",
		"user_id":      bobID,
		"created_at":   "2001-01-01T00:00:00Z",
	}, aliceToken)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decodeBody[dto.RecordResponse](t, rec)
	assert.Equal(t, aliceID, created.UserID)
	assert.NotEqual(t, "11111111-1111-1111-1111-111111111111", created.ID)

	rec = app.request(t, http.MethodPut, "/records/"+created.ID, map[string]any{
		"entity_name": "Janet",
		"user_id":     bobID,
	}, aliceToken)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decodeBody[dto.RecordResponse](t, rec)
	assert.Equal(t, "Janet", updated.EntityName)
	assert.Equal(t, aliceID, updated.UserID, "ownership cannot be reassigned through the payload")
}

func TestAdminEndpointsRequireAdminRole(t *testing.T) {
	app := newTestApp(t)
	ctx := context.Background()

	userToken, userID := app.registerAndLogin(t, "user@x.com", "password1")

	rec := app.request(t, http.MethodGet, "/admin/stats", nil, userToken)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// Promote a second account to admin directly in the store, then log in
	// again so the token carries the admin role.
	app.registerAndLogin(t, "admin@x.com", "password1")
	adminUser, err := app.users.FindByEmail(ctx, "admin@x.com")
	require.NoError(t, err)
	adminUser.Role = entity.UserRoleAdmin
	require.NoError(t, app.users.Update(ctx, adminUser))

	rec = app.request(t, http.MethodPost, "/auth/login", dto.LoginRequest{Email: "admin@x.com", Password: "password1"}, "")
	require.Equal(t, http.StatusOK, rec.Code)
	adminToken := decodeBody[dto.AuthResponse](t, rec).Token

	rec = app.request(t, http.MethodPost, "/records", map[string]any{
		"entity_name":  "Jane",
		"entity_phone": "555-1",
		"amount_paid":  25,
	}, userToken)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = app.request(t, http.MethodGet, "/admin/stats", nil, adminToken)
	require.Equal(t, http.StatusOK, rec.Code)
	stats := decodeBody[dto.GlobalStatsResponse](t, rec)
	assert.Equal(t, int64(2), stats.TotalUsers)
	assert.Equal(t, int64(1), stats.TotalRecords)
	assert.Equal(t, int64(1), stats.Pending)
	assert.Equal(t, 25.0, stats.TotalRevenue)

	rec = app.request(t, http.MethodGet, "/admin/users", nil, adminToken)
	require.Equal(t, http.StatusOK, rec.Code)
	users := decodeBody[[]dto.AdminUserResponse](t, rec)
	require.Len(t, users, 2)

	rec = app.request(t, http.MethodGet, "/admin/records", nil, adminToken)
	require.Equal(t, http.StatusOK, rec.Code)
	records := decodeBody[dto.AdminRecordsResponse](t, rec)
	assert.Equal(t, int64(1), records.Total)

	// Admin can deactivate and re-role the plain user.
	rec = app.request(t, http.MethodPatch, "/admin/users/"+userID+"/active", map[string]any{"is_active": false}, adminToken)
	require.Equal(t, http.StatusOK, rec.Code)
	deactivated := decodeBody[dto.UserResponse](t, rec)
	assert.False(t, deactivated.IsActive)

	rec = app.request(t, http.MethodPatch, "/admin/users/"+userID+"/role", map[string]any{"role": "admin"}, adminToken)
	require.Equal(t, http.StatusOK, rec.Code)
	promoted := decodeBody[dto.UserResponse](t, rec)
	assert.Equal(t, "admin", promoted.Role)
}

package service_test

import (
	"context"
	"testing"
	"time"

	"hubtrack/internal/dto"
	"hubtrack/internal/entity"
	"hubtrack/internal/service"
	"hubtrack/internal/testutil"
	"hubtrack/internal/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService() (*service.AuthService, *testutil.MemoryUserRepository) {
	users := testutil.NewMemoryUserRepository()
	manager := utils.JWTManager{Secret: []byte("test-secret"), AccessTokenTTL: time.Hour}
	issuer := service.JWTAccessIssuer{Manager: &manager}
	svc := service.NewAuthService(users, service.BcryptPasswordHasher{Cost: 4}, issuer)
	return svc, users
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := newAuthService()
	ctx := context.Background()

	result, err := svc.Register(ctx, dto.RegisterRequest{
		Email:    "A@X.com",
		Password: "password1",
		Name:     "Alice",
	})
	require.NoError(t, err)
	require.NotNil(t, result.User)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, "a@x.com", result.User.Email, "email is case-normalized")
	assert.Equal(t, entity.UserRoleUser, result.User.Role)
	assert.True(t, result.User.IsActive)

	login, err := svc.Login(ctx, dto.LoginRequest{Email: "a@x.com", Password: "password1"})
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, login.User.ID)
	assert.NotEmpty(t, login.Token)
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	svc, _ := newAuthService()
	ctx := context.Background()

	_, err := svc.Register(ctx, dto.RegisterRequest{Email: "a@x.com", Password: "password1"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, dto.RegisterRequest{Email: "A@x.COM", Password: "password2"})
	assert.ErrorIs(t, err, service.ErrEmailAlreadyRegistered)
}

func TestLoginFailureIsIndistinguishable(t *testing.T) {
	svc, _ := newAuthService()
	ctx := context.Background()

	_, err := svc.Register(ctx, dto.RegisterRequest{Email: "a@x.com", Password: "password1"})
	require.NoError(t, err)

	_, wrongPassword := svc.Login(ctx, dto.LoginRequest{Email: "a@x.com", Password: "wrong-password"})
	_, unknownEmail := svc.Login(ctx, dto.LoginRequest{Email: "nobody@x.com", Password: "password1"})

	assert.ErrorIs(t, wrongPassword, service.ErrInvalidCredentials)
	assert.ErrorIs(t, unknownEmail, service.ErrInvalidCredentials)
	assert.Equal(t, wrongPassword, unknownEmail, "wrong password and unknown email must be the same error")
}

func TestRegisterOverDeactivatedAccountConflicts(t *testing.T) {
	svc, users := newAuthService()
	ctx := context.Background()

	result, err := svc.Register(ctx, dto.RegisterRequest{Email: "a@x.com", Password: "password1"})
	require.NoError(t, err)

	// Deactivation keeps the row; the email stays taken.
	deactivated, err := users.FindByID(ctx, result.User.ID)
	require.NoError(t, err)
	deactivated.IsActive = false
	require.NoError(t, users.Update(ctx, deactivated))

	_, err = svc.Register(ctx, dto.RegisterRequest{Email: "a@x.com", Password: "password2"})
	assert.ErrorIs(t, err, service.ErrEmailAlreadyRegistered)

	_, err = svc.Login(ctx, dto.LoginRequest{Email: "a@x.com", Password: "password1"})
	assert.ErrorIs(t, err, service.ErrInvalidCredentials, "deactivated accounts cannot log in")
}

func TestPlaintextIsNeverStored(t *testing.T) {
	svc, users := newAuthService()
	ctx := context.Background()

	result, err := svc.Register(ctx, dto.RegisterRequest{Email: "a@x.com", Password: "password1"})
	require.NoError(t, err)

	stored, err := users.FindByID(ctx, result.User.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.PasswordHash)
	assert.NotEqual(t, "password1", *stored.PasswordHash)
}

func TestGetCurrentUser(t *testing.T) {
	svc, _ := newAuthService()
	ctx := context.Background()

	result, err := svc.Register(ctx, dto.RegisterRequest{Email: "a@x.com", Password: "password1"})
	require.NoError(t, err)

	user, err := svc.GetCurrentUser(ctx, result.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", user.Email)

	_, err = svc.GetCurrentUser(ctx, uuid.New())
	assert.ErrorIs(t, err, service.ErrUserNotFound)
}

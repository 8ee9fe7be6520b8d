package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Isabellaariza/Nudo-Studio-sub001/internal/domain"
	"github.com/Isabellaariza/Nudo-Studio-sub001/internal/service"
	"github.com/Isabellaariza/Nudo-Studio-sub001/internal/store/memory"
)

func newAuthFixture(t *testing.T) (*service.AuthService, *memory.Stores) {
	t.Helper()
	stores := memory.NewStores()
	svc := service.NewAuthService(stores.Users, stores.Tokens, "test-secret", 15*time.Minute, 7*24*time.Hour, zap.NewNop())
	return svc, stores
}

func register(t *testing.T, svc *service.AuthService) *domain.AuthResponse {
	t.Helper()
	resp, err := svc.Register(context.Background(), domain.RegisterRequest{
		Name:     "Ana García",
		Email:    "ana@example.com",
		Password: "contraseña-segura",
	})
	require.NoError(t, err)
	return resp
}

func TestAuthRegisterIssuesTokensAndClientRole(t *testing.T) {
	svc, _ := newAuthFixture(t)
	resp := register(t, svc)

	assert.Equal(t, domain.RoleClient, resp.User.Role)
	assert.NotEmpty(t, resp.Tokens.AccessToken)
	assert.NotEmpty(t, resp.Tokens.RefreshToken)

	claims, err := svc.ValidateAccessToken(resp.Tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)
	assert.Equal(t, domain.RoleClient, claims.Role)
}

func TestAuthRegisterRejectsDuplicateEmail(t *testing.T) {
	svc, _ := newAuthFixture(t)
	register(t, svc)

	_, err := svc.Register(context.Background(), domain.RegisterRequest{
		Name:     "Otra Ana",
		Email:    "ANA@example.com",
		Password: "contraseña-segura",
	})
	var conflict *domain.ErrConflict
	assert.ErrorAs(t, err, &conflict)
}

func TestAuthLoginWrongPassword(t *testing.T) {
	svc, _ := newAuthFixture(t)
	register(t, svc)

	_, err := svc.Login(context.Background(), domain.LoginRequest{
		Email:    "ana@example.com",
		Password: "incorrecta",
	})
	var unauth *domain.ErrUnauthorized
	assert.ErrorAs(t, err, &unauth)
}

func TestAuthLockoutAfterRepeatedFailures(t *testing.T) {
	ctx := context.Background()
	svc, stores := newAuthFixture(t)
	resp := register(t, svc)

	for i := 0; i < 5; i++ {
		_, err := svc.Login(ctx, domain.LoginRequest{Email: "ana@example.com", Password: "incorrecta"})
		require.Error(t, err)
	}

	user, err := stores.Users.Get(ctx, resp.User.ID)
	require.NoError(t, err)
	require.NotNil(t, user.LockedUntil)
	assert.True(t, user.LockedUntil.After(time.Now()))

	// The right password does not help while locked.
	_, err = svc.Login(ctx, domain.LoginRequest{Email: "ana@example.com", Password: "contraseña-segura"})
	var unauth *domain.ErrUnauthorized
	assert.ErrorAs(t, err, &unauth)
}

func TestAuthLoginClearsFailureCount(t *testing.T) {
	ctx := context.Background()
	svc, stores := newAuthFixture(t)
	resp := register(t, svc)

	for i := 0; i < 3; i++ {
		_, err := svc.Login(ctx, domain.LoginRequest{Email: "ana@example.com", Password: "incorrecta"})
		require.Error(t, err)
	}

	_, err := svc.Login(ctx, domain.LoginRequest{Email: "ana@example.com", Password: "contraseña-segura"})
	require.NoError(t, err)

	user, err := stores.Users.Get(ctx, resp.User.ID)
	require.NoError(t, err)
	assert.Zero(t, user.FailedAttempts)
	assert.Nil(t, user.LockedUntil)
}

func TestAuthRefreshRotatesToken(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAuthFixture(t)
	resp := register(t, svc)

	rotated, err := svc.Refresh(ctx, resp.Tokens.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, resp.Tokens.RefreshToken, rotated.Tokens.RefreshToken)

	// The old token is spent.
	_, err = svc.Refresh(ctx, resp.Tokens.RefreshToken)
	var unauth *domain.ErrUnauthorized
	assert.ErrorAs(t, err, &unauth)
}

func TestAuthRefreshReuseRevokesFamily(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAuthFixture(t)
	resp := register(t, svc)

	rotated, err := svc.Refresh(ctx, resp.Tokens.RefreshToken)
	require.NoError(t, err)

	// Replaying the revoked token burns the rotated one too.
	_, err = svc.Refresh(ctx, resp.Tokens.RefreshToken)
	require.Error(t, err)

	_, err = svc.Refresh(ctx, rotated.Tokens.RefreshToken)
	var unauth *domain.ErrUnauthorized
	assert.ErrorAs(t, err, &unauth)
}

func TestAuthLogoutRevokesSessions(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAuthFixture(t)
	resp := register(t, svc)

	require.NoError(t, svc.Logout(ctx, resp.User.ID))

	_, err := svc.Refresh(ctx, resp.Tokens.RefreshToken)
	var unauth *domain.ErrUnauthorized
	assert.ErrorAs(t, err, &unauth)
}

func TestAuthValidateRejectsTamperedToken(t *testing.T) {
	svc, _ := newAuthFixture(t)
	resp := register(t, svc)

	_, err := svc.ValidateAccessToken(resp.Tokens.AccessToken + "x")
	var unauth *domain.ErrUnauthorized
	assert.ErrorAs(t, err, &unauth)
}

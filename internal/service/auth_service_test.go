package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trip_logger/internal/model"
	"trip_logger/internal/utils"
)

func newAuthService(t *testing.T) (AuthService, UserService) {
	t.Helper()
	st := newTestStore(t)
	jwtUtil := utils.NewJWTUtil("test-secret", 1)
	return NewAuthService(st, jwtUtil), NewUserService(st)
}

func TestEnsureAdminExists_SeedsOnce(t *testing.T) {
	auth, users := newAuthService(t)
	ctx := context.Background()

	require.NoError(t, auth.EnsureAdminExists(ctx))
	require.NoError(t, auth.EnsureAdminExists(ctx))

	all, err := users.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "admin", all[0].Username)
	assert.Equal(t, model.RoleHeadDriver, all[0].Role)
}

func TestEnsureAdminExists_SkipsWhenHeadDriverPresent(t *testing.T) {
	auth, users := newAuthService(t)
	ctx := context.Background()

	_, err := users.AddUser(ctx, model.CreateUserRequest{
		Name: "Boss", Username: "boss", Password: "pw", Role: model.RoleHeadDriver,
	})
	require.NoError(t, err)

	require.NoError(t, auth.EnsureAdminExists(ctx))

	all, err := users.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestLogin(t *testing.T) {
	auth, _ := newAuthService(t)
	ctx := context.Background()
	require.NoError(t, auth.EnsureAdminExists(ctx))

	user, token, err := auth.Login(ctx, "admin", "password123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, model.RoleHeadDriver, user.Role)

	// Username matching is case-insensitive
	_, _, err = auth.Login(ctx, "ADMIN", "password123")
	assert.NoError(t, err)

	// Passwords are compared verbatim
	_, _, err = auth.Login(ctx, "admin", "PASSWORD123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = auth.Login(ctx, "nobody", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

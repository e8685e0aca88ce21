package services

import (
	"context"
	"testing"
	"time"

	"pollsite/config"
	"pollsite/models"
	"pollsite/repositories"
	"pollsite/testutil"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAuthService(t *testing.T) AuthService {
	t.Helper()

	db := testutil.SetupTestDB(t)
	logger := testutil.DiscardLogger()
	return NewAuthService(
		repositories.NewUserRepository(db, logger),
		config.JWTConfig{Secret: []byte("test-secret"), Expiration: time.Hour},
		logger,
	)
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()

	registered, err := svc.Register(ctx, models.RegisterRequest{
		Username: "ada",
		Email:    "Ada@Example.com",
		Password: "password123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, registered.Token)
	assert.Equal(t, models.RoleMember, registered.User.Role)
	assert.Equal(t, "ada@example.com", registered.User.Email)
	assert.NotEqual(t, "password123", registered.User.Password)

	loggedIn, err := svc.Login(ctx, models.LoginRequest{Email: "ada@example.com", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, loggedIn.User.ID)

	claims := jwt.MapClaims{}
	_, err = jwt.ParseWithClaims(loggedIn.Token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	assert.Equal(t, float64(registered.User.ID), claims["user_id"])
	assert.Equal(t, "member", claims["role"])

	user, err := svc.GetUserByID(ctx, registered.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "ada", user.Username)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()

	req := models.RegisterRequest{Username: "ada", Email: "ada@example.com", Password: "password123"}
	_, err := svc.Register(ctx, req)
	require.NoError(t, err)

	req.Username = "ada2"
	_, err = svc.Register(ctx, req)
	assert.ErrorIs(t, err, models.ErrUserExists)
}

func TestLoginInvalidCredentials(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, models.RegisterRequest{Username: "ada", Email: "ada@example.com", Password: "password123"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, models.LoginRequest{Email: "ada@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, models.ErrInvalidCredentials)

	_, err = svc.Login(ctx, models.LoginRequest{Email: "nobody@example.com", Password: "password123"})
	assert.ErrorIs(t, err, models.ErrInvalidCredentials)
}

func TestEnsureAdminAndSetRole(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()

	assert.ErrorIs(t, svc.EnsureAdmin(ctx, "root@example.com"), models.ErrUserNotFound)

	registered, err := svc.Register(ctx, models.RegisterRequest{Username: "root", Email: "root@example.com", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleMember, registered.User.Role)

	require.NoError(t, svc.EnsureAdmin(ctx, " ROOT@example.com "))
	require.NoError(t, svc.EnsureAdmin(ctx, "root@example.com"))

	loggedIn, err := svc.Login(ctx, models.LoginRequest{Email: "root@example.com", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, loggedIn.User.Role)

	user, err := svc.SetRole(ctx, registered.User.ID, models.RoleMember)
	require.NoError(t, err)
	assert.Equal(t, models.RoleMember, user.Role)

	_, err = svc.SetRole(ctx, 9999, models.RoleAdmin)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

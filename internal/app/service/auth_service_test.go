package service

import (
	"context"
	"testing"
	"time"

	"github.com/doorhan-crimea/doorhan-backend/internal/app/model"
	"github.com/doorhan-crimea/doorhan-backend/internal/app/repository"
	"github.com/doorhan-crimea/doorhan-backend/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSessionSecret = "test-session-secret"

func setupAuthServiceTest(t *testing.T) (AuthService, *fakeRevoker) {
	testDB := setupServiceTest(t)
	userRepo := repository.NewUserRepository(testDB)

	hash, err := util.HashPassword("correct-horse")
	require.NoError(t, err)
	require.NoError(t, userRepo.Create(&model.User{
		Email:        "admin@doorhan.ru",
		Name:         "Администратор",
		PasswordHash: &hash,
		Role:         model.RoleAdmin,
	}))
	require.NoError(t, userRepo.Create(&model.User{
		Email: "nopass@doorhan.ru",
		Role:  model.RoleAdmin,
	}))

	revoker := newFakeRevoker()
	return NewAuthService(userRepo, testSessionSecret, time.Hour, revoker), revoker
}

func TestAuthService_Login(t *testing.T) {
	authService, _ := setupAuthServiceTest(t)

	user, token, session, err := authService.Login(" Admin@Doorhan.ru ", "correct-horse")
	require.NoError(t, err)
	assert.Equal(t, "admin@doorhan.ru", user.Email)
	assert.NotEmpty(t, token)
	assert.Equal(t, "admin", session.Role)
	assert.WithinDuration(t, time.Now().Add(time.Hour), session.ExpiresAt, time.Minute)
}

func TestAuthService_Login_FailuresAreIndistinguishable(t *testing.T) {
	authService, _ := setupAuthServiceTest(t)

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{name: "Wrong password", email: "admin@doorhan.ru", password: "wrong-horse"},
		{name: "Unknown email", email: "ghost@doorhan.ru", password: "correct-horse"},
		{name: "Account without password", email: "nopass@doorhan.ru", password: "anything"},
		{name: "Blank email", email: "", password: "correct-horse"},
		{name: "Blank password", email: "admin@doorhan.ru", password: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, token, session, err := authService.Login(tt.email, tt.password)
			assert.Equal(t, ErrInvalidCredentials, err)
			assert.Nil(t, user)
			assert.Empty(t, token)
			assert.Nil(t, session)
		})
	}
}

func TestAuthService_ValidateSession(t *testing.T) {
	authService, revoker := setupAuthServiceTest(t)
	ctx := context.Background()

	_, token, _, err := authService.Login("admin@doorhan.ru", "correct-horse")
	require.NoError(t, err)

	session, err := authService.ValidateSession(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "admin@doorhan.ru", session.Email)

	_, err = authService.ValidateSession(ctx, token+"x")
	assert.ErrorIs(t, err, util.ErrInvalidToken)

	require.NoError(t, authService.Logout(ctx, session))
	assert.Contains(t, revoker.revoked, session.TokenID)

	_, err = authService.ValidateSession(ctx, token)
	assert.ErrorIs(t, err, ErrSessionRevoked)
}

func TestAuthService_ValidateSession_Expired(t *testing.T) {
	authService, _ := setupAuthServiceTest(t)

	token, _, err := util.GenerateSessionToken(1, "Администратор", "admin@doorhan.ru", "admin", testSessionSecret, -time.Minute)
	require.NoError(t, err)

	_, err = authService.ValidateSession(context.Background(), token)
	assert.ErrorIs(t, err, util.ErrExpiredToken)
}

func TestAuthService_GetUserByID(t *testing.T) {
	authService, _ := setupAuthServiceTest(t)

	user, _, _, err := authService.Login("admin@doorhan.ru", "correct-horse")
	require.NoError(t, err)

	found, err := authService.GetUserByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Администратор", found.Name)

	_, err = authService.GetUserByID(9999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

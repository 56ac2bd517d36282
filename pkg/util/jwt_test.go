package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-session-testing"

func TestGenerateSessionToken(t *testing.T) {
	token, session, err := GenerateSessionToken(7, "Администратор", "admin@doorhan.ru", "admin", testSecret, time.Hour)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, uint(7), session.UserID)
	assert.NotEmpty(t, session.TokenID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), session.ExpiresAt, 5*time.Second)
}

func TestValidateSessionToken(t *testing.T) {
	token, issued, err := GenerateSessionToken(1, "Admin", "admin@example.com", "admin", testSecret, time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name    string
		token   string
		secret  string
		wantErr error
	}{
		{name: "Valid token", token: token, secret: testSecret},
		{name: "Wrong secret", token: token, secret: "other-secret", wantErr: ErrInvalidToken},
		{name: "Malformed token", token: "not.a.token", secret: testSecret, wantErr: ErrInvalidToken},
		{name: "Empty token", token: "", secret: testSecret, wantErr: ErrInvalidToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session, err := ValidateSessionToken(tt.token, tt.secret)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, session)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, issued.UserID, session.UserID)
			assert.Equal(t, "Admin", session.Name)
			assert.Equal(t, "admin", session.Role)
			assert.Equal(t, issued.TokenID, session.TokenID)
		})
	}
}

func TestExpiredSessionToken(t *testing.T) {
	token, _, err := GenerateSessionToken(1, "Admin", "admin@example.com", "admin", testSecret, -time.Minute)
	require.NoError(t, err)

	session, err := ValidateSessionToken(token, testSecret)
	assert.ErrorIs(t, err, ErrExpiredToken)
	assert.Nil(t, session)
}

func TestSession_RemainingTTL(t *testing.T) {
	assert.Zero(t, (&Session{ExpiresAt: time.Now().Add(-time.Hour)}).RemainingTTL())
	assert.Greater(t, (&Session{ExpiresAt: time.Now().Add(time.Hour)}).RemainingTTL(), 59*time.Minute)
}

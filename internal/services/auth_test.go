package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pawstails/internal/utils"
)

const testSecret = "test-secret"

func TestAuthService_Login(t *testing.T) {
	svc, err := NewAuthService("admin", "s3cret", testSecret, time.Hour)
	require.NoError(t, err)
	ctx := context.Background()

	token, expires, err := svc.Login(ctx, "admin", "s3cret")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expires, 5*time.Second)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)
	assert.Equal(t, "admin", claims.Role)

	for _, tc := range []struct{ name, user, pass string }{
		{"wrong password", "admin", "nope"},
		{"wrong user", "root", "s3cret"},
		{"empty", "", ""},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := svc.Login(ctx, tc.user, tc.pass)
			assert.True(t, errors.Is(err, ErrInvalidCredentials))
		})
	}
}

func TestAuthService_NoPasswordDisablesLogin(t *testing.T) {
	svc, err := NewAuthService("admin", "", testSecret, time.Hour)
	require.NoError(t, err)

	_, _, err = svc.Login(context.Background(), "admin", "")
	assert.True(t, errors.Is(err, ErrInvalidCredentials))
}

func TestAuthService_Verify(t *testing.T) {
	svc, err := NewAuthService("admin", "pw", testSecret, time.Hour)
	require.NoError(t, err)

	_, err = svc.Verify("garbage")
	assert.True(t, errors.Is(err, ErrInvalidCredentials))

	foreign, err := utils.GenerateToken("other-secret", "admin", time.Hour)
	require.NoError(t, err)
	_, err = svc.Verify(foreign)
	assert.True(t, errors.Is(err, ErrInvalidCredentials))

	expired, err := utils.GenerateToken(testSecret, "admin", -time.Minute)
	require.NoError(t, err)
	_, err = svc.Verify(expired)
	assert.True(t, errors.Is(err, ErrInvalidCredentials))
}

package services

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	service := NewTokenService("test-secret", 30)

	token, err := service.GenerateAccessToken(42, "alice@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := service.ValidateAccessToken(token)
	require.NoError(t, err)
	require.EqualValues(t, 42, userID)
}

func TestValidateAccessToken_Failures(t *testing.T) {
	service := NewTokenService("test-secret", 30)

	_, err := service.ValidateAccessToken("garbage")
	require.ErrorIs(t, err, ErrInvalidToken)

	// Signed with a different key
	other := NewTokenService("other-secret", 30)
	token, err := other.GenerateAccessToken(42, "alice@example.com")
	require.NoError(t, err)
	_, err = service.ValidateAccessToken(token)
	require.ErrorIs(t, err, ErrInvalidToken)

	// Already expired
	expired := NewTokenService("test-secret", -1)
	token, err = expired.GenerateAccessToken(42, "alice@example.com")
	require.NoError(t, err)
	_, err = service.ValidateAccessToken(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

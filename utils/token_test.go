package utils

import (
	"testing"
	"time"

	uuid "github.com/satori/go.uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	userID := uuid.NewV4().String()

	td, err := CreateToken(userID, time.Minute, "secret")
	require.NoError(t, err)
	require.NotEmpty(t, td.Token)
	require.NotEmpty(t, td.TokenUuid)

	payload, err := ValidateToken(td.Token, "secret")
	require.NoError(t, err)
	assert.Equal(t, userID, payload.UserID)
	assert.Equal(t, td.TokenUuid, payload.TokenUuid)
}

func TestTokenWrongSecret(t *testing.T) {
	td, err := CreateToken(uuid.NewV4().String(), time.Minute, "secret")
	require.NoError(t, err)

	_, err = ValidateToken(td.Token, "other-secret")
	assert.Error(t, err)
}

func TestTokenExpired(t *testing.T) {
	td, err := CreateToken(uuid.NewV4().String(), -time.Minute, "secret")
	require.NoError(t, err)

	_, err = ValidateToken(td.Token, "secret")
	assert.Error(t, err)
}

func TestTokenGarbage(t *testing.T) {
	_, err := ValidateToken("not.a.jwt", "secret")
	assert.Error(t, err)
}

package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseJWT(t *testing.T) {
	token, expiresAt, err := GenerateJWT("u1", "u1@teamops.com", "MANAGER", AccessToken, "secret", time.Hour, "teamops")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := ParseAndValidateJWT(token, "secret", AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "u1", claims.Subject)
	assert.Equal(t, "MANAGER", claims.Role)
	assert.Equal(t, "teamops", claims.Issuer)
}

func TestParseAndValidateJWT_Failures(t *testing.T) {
	refresh, _, err := GenerateJWT("u1", "e", "EMPLOYEE", RefreshToken, "secret", time.Hour, "teamops")
	require.NoError(t, err)

	_, err = ParseAndValidateJWT(refresh, "secret", AccessToken)
	assert.ErrorIs(t, err, ErrTokenKindMismatch)

	_, err = ParseAndValidateJWT(refresh, "other-secret", RefreshToken)
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)

	expired, _, err := GenerateJWT("u1", "e", "EMPLOYEE", AccessToken, "secret", -time.Minute, "teamops")
	require.NoError(t, err)
	_, err = ParseAndValidateJWT(expired, "secret", AccessToken)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)

	noUser, _, err := GenerateJWT("", "e", "EMPLOYEE", AccessToken, "secret", time.Hour, "teamops")
	require.NoError(t, err)
	_, err = ParseAndValidateJWT(noUser, "secret", AccessToken)
	assert.Error(t, err)
}

func TestParseAndValidateJWT_RejectsNonHMAC(t *testing.T) {
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: "u1", Kind: AccessToken})
	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = ParseAndValidateJWT(token, "secret", AccessToken)
	assert.Error(t, err)
}

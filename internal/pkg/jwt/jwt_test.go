package jwt

import (
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret"

func TestGenerateAndValidate(t *testing.T) {
	token, expiresAt, err := GenerateAccessToken("agent-1", "Andrea", "admin", secret, 15)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), expiresAt, 5*time.Second)

	claims, err := ValidateAccessToken(token, secret)
	require.NoError(t, err)
	assert.Equal(t, "agent-1", claims.AgentID)
	assert.Equal(t, "Andrea", claims.FullName)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, "agent-1", claims.Subject)
}

func TestValidate_WrongSecret(t *testing.T) {
	token, _, err := GenerateAccessToken("agent-1", "Andrea", "member", secret, 15)
	require.NoError(t, err)

	_, err = ValidateAccessToken(token, "other-secret")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestValidate_Expired(t *testing.T) {
	past := time.Now().Add(-time.Hour)
	claims := Claims{
		AgentID: "agent-1",
		Role:    "member",
		RegisteredClaims: gojwt.RegisteredClaims{
			ExpiresAt: gojwt.NewNumericDate(past),
			IssuedAt:  gojwt.NewNumericDate(past.Add(-time.Minute)),
			Issuer:    issuer,
		},
	}
	token, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)

	_, err = ValidateAccessToken(token, secret)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestValidate_Garbage(t *testing.T) {
	_, err := ValidateAccessToken("not-a-token", secret)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestValidate_ForeignIssuer(t *testing.T) {
	claims := Claims{
		AgentID: "agent-1",
		RegisteredClaims: gojwt.RegisteredClaims{
			ExpiresAt: gojwt.NewNumericDate(time.Now().Add(time.Hour)),
			Issuer:    "someone-else",
		},
	}
	token, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)

	_, err = ValidateAccessToken(token, secret)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

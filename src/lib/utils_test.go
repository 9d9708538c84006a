package lib

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundtrip(t *testing.T) {
	token, err := GenerateJWT(42)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := VerifyJWT(token)
	require.NoError(t, err)
	assert.Equal(t, float64(42), claims["userId"])
}

func TestVerifyJWTRejectsGarbage(t *testing.T) {
	_, err := VerifyJWT("not-a-token")
	assert.Error(t, err)
}

func TestVerifyJWTRejectsWrongSecret(t *testing.T) {
	original := JWTSecret
	defer func() { JWTSecret = original }()

	JWTSecret = "secret-a"
	token, err := GenerateJWT(7)
	require.NoError(t, err)

	JWTSecret = "secret-b"
	_, err = VerifyJWT(token)
	assert.Error(t, err)
}

package jwt

import (
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifiesTokenSignedWithSameSecret(t *testing.T) {
	svc := NewJWTService("test-secret")

	_, tokenString, err := svc.JWTAuth().Encode(map[string]interface{}{
		"user_id": "op-1",
		"type":    "access",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	require.NoError(t, err)

	token, err := jwtauth.VerifyToken(svc.JWTAuth(), tokenString)
	require.NoError(t, err)

	claims, err := token.AsMap(t.Context())
	require.NoError(t, err)
	assert.Equal(t, "op-1", claims["user_id"])
	assert.Equal(t, "access", claims["type"])
}

func TestRejectsTokenSignedWithDifferentSecret(t *testing.T) {
	svc := NewJWTService("test-secret")
	other := NewJWTService("another-secret")

	_, tokenString, err := other.JWTAuth().Encode(map[string]interface{}{
		"user_id": "op-1",
		"type":    "access",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	require.NoError(t, err)

	_, err = jwtauth.VerifyToken(svc.JWTAuth(), tokenString)
	assert.Error(t, err)
}

package session

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "unit-test-secret"

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func TestFromToken(t *testing.T) {
	signed := signToken(t, jwt.MapClaims{
		"user_id":  float64(7),
		"username": "nimal",
		"email":    "nimal@example.com",
		"role":     "CUSTOMER",
		"exp":      time.Now().Add(time.Hour).Unix(),
	})

	s, err := FromToken(signed, testSecret)
	require.NoError(t, err)
	assert.Equal(t, 7, s.UserID)
	assert.Equal(t, "nimal", s.Username)
	assert.Equal(t, "nimal@example.com", s.Email)
	assert.Equal(t, signed, s.Token)
	assert.True(t, s.Authenticated())
	assert.False(t, s.IsAdmin())
}

func TestFromTokenAdminRole(t *testing.T) {
	signed := signToken(t, jwt.MapClaims{"user_id": float64(1), "role": RoleAdmin})

	s, err := FromToken(signed, testSecret)
	require.NoError(t, err)
	assert.True(t, s.IsAdmin())
}

func TestFromTokenWrongSecret(t *testing.T) {
	signed := signToken(t, jwt.MapClaims{"user_id": float64(7)})

	_, err := FromToken(signed, "a-different-secret")
	assert.Error(t, err)
}

func TestFromTokenMissingUserID(t *testing.T) {
	signed := signToken(t, jwt.MapClaims{"username": "nimal"})

	_, err := FromToken(signed, testSecret)
	assert.Error(t, err)
}

func TestNilSessionIsSafe(t *testing.T) {
	var s *Session
	assert.False(t, s.Authenticated())
	assert.False(t, s.IsAdmin())
}

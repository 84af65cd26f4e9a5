package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "7",
		"exp": exp.Unix(),
	})
	s, err := tok.SignedString([]byte("unit-secret"))
	require.NoError(t, err)

	return s
}

func TestTokenExpired_PastExp(t *testing.T) {
	t.Parallel()

	now := time.Now()
	require.True(t, tokenExpired(signedToken(t, now.Add(-time.Hour)), now))
}

func TestTokenExpired_FutureExp(t *testing.T) {
	t.Parallel()

	now := time.Now()
	require.False(t, tokenExpired(signedToken(t, now.Add(time.Hour)), now))
}

// Непрозрачный (не-JWT) токен считается живым — решает сервер.
func TestTokenExpired_OpaqueToken(t *testing.T) {
	t.Parallel()

	require.False(t, tokenExpired("abc123", time.Now()))
	require.False(t, tokenExpired("", time.Now()))
}

// JWT без exp доверяем: клейм необязателен.
func TestTokenExpired_NoExpClaim(t *testing.T) {
	t.Parallel()

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "7"})
	s, err := tok.SignedString([]byte("unit-secret"))
	require.NoError(t, err)

	require.False(t, tokenExpired(s, time.Now()))
}

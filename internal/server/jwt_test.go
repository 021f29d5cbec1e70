package server

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jonathan/arete/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-jwt-signing-minimum-32-bytes"

func newTestJWTService(hours int) *JWTService {
	return NewJWTService(&config.JWTConfig{Secret: testSecret, ExpirationHours: hours})
}

func TestJWTService_RoundTrip(t *testing.T) {
	for _, hours := range []int{1, 24, 48} {
		service := newTestJWTService(hours)

		token, err := service.GenerateToken("frontend")
		require.NoError(t, err)
		assert.Len(t, strings.Split(token, "."), 3)

		claims, err := service.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, "frontend", claims.Subject)
		assert.Equal(t, tokenIssuer, claims.Issuer)
		assert.Equal(t, time.Duration(hours)*time.Hour, claims.ExpiresAt.Sub(claims.IssuedAt.Time))
	}
}

func TestJWTService_GenerateToken_EmptySubject(t *testing.T) {
	_, err := newTestJWTService(24).GenerateToken("")
	assert.ErrorContains(t, err, "subject")
}

func TestJWTService_ValidateToken_Rejects(t *testing.T) {
	service := newTestJWTService(24)
	sign := func(method jwt.SigningMethod, key any, issuer string) string {
		t.Helper()
		claims := Claims{jwt.RegisteredClaims{
			Subject:   "cli",
			Issuer:    issuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		}}
		s, err := jwt.NewWithClaims(method, claims).SignedString(key)
		require.NoError(t, err)
		return s
	}

	tests := []struct {
		name    string
		token   string
		wantMsg string
	}{
		{"empty", "", "empty"},
		{"one part", "invalid", "malformed"},
		{"four parts", "invalid.token.format.extra", "malformed"},
		{"other secret", sign(jwt.SigningMethodHS256, []byte("another-secret-of-sufficient-length"), tokenIssuer), "signature"},
		{"other issuer", sign(jwt.SigningMethodHS256, []byte(testSecret), "someone-else"), ""},
		{"alg none", sign(jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType, tokenIssuer), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := service.ValidateToken(tt.token)
			require.Error(t, err)
			assert.Nil(t, claims)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestJWTService_TokenExpiration(t *testing.T) {
	service := newTestJWTService(1)
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	service.now = func() time.Time { return now }

	token, err := service.GenerateToken("cli")
	require.NoError(t, err)

	now = now.Add(59 * time.Minute)
	_, err = service.ValidateToken(token)
	require.NoError(t, err)

	now = now.Add(2 * time.Minute)
	_, err = service.ValidateToken(token)
	assert.ErrorContains(t, err, "expired")
}

func TestJWTService_AsTokenValidator(t *testing.T) {
	service := newTestJWTService(24)
	validator := service.AsTokenValidator()

	token, err := service.GenerateToken("cli")
	require.NoError(t, err)

	getter, err := validator.ValidateToken(token)
	require.NoError(t, err)
	subject, err := getter.GetSubject()
	require.NoError(t, err)
	assert.Equal(t, "cli", subject)

	getter, err = validator.ValidateToken("garbage")
	assert.Error(t, err)
	assert.Nil(t, getter)
}

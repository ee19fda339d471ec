package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mentorlink/webicast/internal/domain"
)

const testSecret = "unit-test-secret"

func mintToken(t *testing.T, secret, userID, role string, expiresIn time.Duration) string {
	t.Helper()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
		},
		UserID: userID,
		Role:   role,
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestVerifyRoles(t *testing.T) {
	v := NewTokenVerifier(testSecret)

	tests := []struct {
		role string
		want domain.Role
	}{
		{"host", domain.RoleHost},
		{"alumni", domain.RoleHost},
		{"viewer", domain.RoleViewer},
		{"student", domain.RoleViewer},
	}
	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			tok := mintToken(t, testSecret, "u-1", tt.role, time.Hour)
			p, err := v.Verify(context.Background(), tok)
			require.NoError(t, err)
			assert.Equal(t, domain.UserID("u-1"), p.ID)
			assert.Equal(t, tt.want, p.Role)
		})
	}
}

func TestVerifyRejections(t *testing.T) {
	v := NewTokenVerifier(testSecret)

	noneToken, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: "u-1", Role: "host"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name       string
		credential string
		message    string
	}{
		{"empty credential", "", "No token, authorization denied"},
		{"garbage", "not-a-jwt", "Invalid token"},
		{"wrong secret", mintToken(t, "other-secret", "u-1", "host", time.Hour), "Invalid token"},
		{"expired", mintToken(t, testSecret, "u-1", "host", -time.Hour), "Invalid token"},
		{"unknown role", mintToken(t, testSecret, "u-1", "admin", time.Hour), "Invalid token"},
		{"missing user id", mintToken(t, testSecret, "", "host", time.Hour), "Invalid token"},
		{"alg none", noneToken, "Invalid token"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := v.Verify(context.Background(), tt.credential)
			require.Error(t, err)
			assert.Equal(t, domain.CodeUnauthenticated, domain.CodeOf(err))
			assert.Equal(t, tt.message, err.Error())
		})
	}
}

// Package auth verifies the platform's bearer tokens.
package auth

import (
	"context"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mentorlink/webicast/internal/domain"
)

// Claims carried by the platform's HS256 tokens.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"userId"`
	Role   string `json:"role"`
}

// TokenVerifier validates HMAC-signed bearer tokens and resolves the role
// claim into the closed Role set.
type TokenVerifier struct {
	secret []byte
}

func NewTokenVerifier(secret string) *TokenVerifier {
	return &TokenVerifier{secret: []byte(secret)}
}

func (v *TokenVerifier) Verify(_ context.Context, credential string) (domain.Principal, error) {
	if credential == "" {
		return domain.Principal{}, domain.Unauthenticated("No token, authorization denied")
	}

	tok, err := jwt.ParseWithClaims(credential, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil || !tok.Valid {
		return domain.Principal{}, domain.Unauthenticated("Invalid token")
	}

	claims, ok := tok.Claims.(*Claims)
	if !ok || claims.UserID == "" {
		return domain.Principal{}, domain.Unauthenticated("Invalid token")
	}

	role, ok := parseRole(claims.Role)
	if !ok {
		return domain.Principal{}, domain.Unauthenticated("Invalid token")
	}

	return domain.Principal{ID: domain.UserID(claims.UserID), Role: role}, nil
}

// parseRole accepts the current role names plus the legacy platform claims
// ("alumni" hosted webinars, "student" watched them).
func parseRole(s string) (domain.Role, bool) {
	switch s {
	case "host", "alumni":
		return domain.RoleHost, true
	case "viewer", "student":
		return domain.RoleViewer, true
	default:
		return domain.RoleUnknown, false
	}
}

package auth

import (
	"context"

	"github.com/golang-jwt/jwt/v5"

	pkgerrors "hypey-backend/pkg/errors"
)

// Principal is the authenticated identity behind a request: the user's
// WebID plus the root of their storage. Either may be absent on an
// unauthenticated request; code treating the principal as an editability
// input must handle the empty WebID.
type Principal struct {
	WebID   string
	Storage string
}

type contextKey string

const (
	principalKey   contextKey = "principal"
	accessTokenKey contextKey = "access_token"
)

// WithPrincipal adds the principal to the context
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// PrincipalFromContext extracts the principal from the context
func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey).(Principal)
	return p, ok
}

// WithAccessToken carries the raw bearer token so the store adapter can
// authenticate its own requests against the pod
func WithAccessToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, accessTokenKey, token)
}

// AccessTokenFromContext extracts the bearer token from the context
func AccessTokenFromContext(ctx context.Context) (string, bool) {
	t, ok := ctx.Value(accessTokenKey).(string)
	return t, ok
}

// SessionClaims are the JWT claims carried by a hypey session token
type SessionClaims struct {
	WebID   string `json:"webid"`
	Storage string `json:"storage"`
	jwt.RegisteredClaims
}

// ParseSession validates a session token and returns its principal
func ParseSession(tokenString, secret string) (Principal, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, pkgerrors.NewUnauthorizedError("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return Principal{}, pkgerrors.NewUnauthorizedError("invalid session token")
	}
	if claims.WebID == "" {
		return Principal{}, pkgerrors.NewUnauthorizedError("session token has no webid")
	}
	return Principal{WebID: claims.WebID, Storage: claims.Storage}, nil
}

// Package identity derives the caller identity used as the uniform voting
// and authorship key: either an authenticated user ID or an anonymous
// fingerprint.
package identity

import (
	"fmt"
	"strconv"

	"github.com/golang-jwt/jwt/v5"

	"stockforum/internal/uuid"
)

// Kind discriminates authenticated users from anonymous callers.
type Kind string

const (
	KindUser      Kind = "user"
	KindAnonymous Kind = "anonymous"
)

// Identity is the resolved caller identity. Exactly one of UserID and
// Fingerprint is meaningful, depending on Kind.
type Identity struct {
	Kind        Kind
	UserID      uint
	Fingerprint string
}

// Authenticated reports whether the identity belongs to a verified user.
func (i Identity) Authenticated() bool {
	return i.Kind == KindUser
}

// Key returns the uniform per-identity key used by the vote ledger and
// comment authorship checks.
func (i Identity) Key() string {
	if i.Kind == KindUser {
		return fmt.Sprintf("user:%d", i.UserID)
	}
	return "anon:" + i.Fingerprint
}

// tokenClaims mirrors the access-token layout issued by the auth middleware.
// Only the subject and token type matter here.
type tokenClaims struct {
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// Resolve derives an Identity from a request's bearer token and transport
// metadata. A token that verifies against secret yields the authenticated
// user from the subject claim. A missing, malformed, expired, or otherwise
// invalid token never raises; it silently downgrades to an anonymous
// identity so unauthenticated interaction stays frictionless.
//
// The anonymous fingerprint prefers the client session ID, falls back to the
// client IP, and finally to a time-ordered UUID placeholder. The placeholder
// identifies a caller for a single request only; it is best-effort tracking,
// not a stable identity.
func Resolve(token, sessionID, clientIP string, secret []byte) Identity {
	if token != "" {
		if userID, ok := verify(token, secret); ok {
			return Identity{Kind: KindUser, UserID: userID}
		}
	}

	fingerprint := sessionID
	if fingerprint == "" {
		fingerprint = clientIP
	}
	if fingerprint == "" {
		fingerprint = uuid.New()
	}
	return Identity{Kind: KindAnonymous, Fingerprint: fingerprint}
}

// verify parses and validates an access token, returning the subject user ID.
func verify(token string, secret []byte) (uint, bool) {
	claims := &tokenClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil || !parsed.Valid {
		return 0, false
	}

	// Refresh tokens are not valid as caller identity.
	if claims.TokenType == "refresh" {
		return 0, false
	}

	userID, err := strconv.ParseUint(claims.Subject, 10, 32)
	if err != nil || userID == 0 {
		return 0, false
	}
	return uint(userID), true
}

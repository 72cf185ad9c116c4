// Package token signs and verifies the JWTs backing API authentication.
// Tokens carry a fixed claim set binding a user to a server-side session
// record; verification is total over arbitrary input and never panics.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ClaimsVersion is stamped into every issued token. Tokens carrying any
// other version are rejected as invalid.
const ClaimsVersion = 1

type Claims struct {
	jwt.RegisteredClaims
	UserID    uuid.UUID `json:"uid"`
	SessionID uuid.UUID `json:"sid"`
	Version   int       `json:"ver"`
}

// VerifyResult classifies the outcome of verifying a token.
type VerifyResult int

const (
	// Invalid covers malformed input, bad signatures, wrong signing
	// methods and unknown claim versions.
	Invalid VerifyResult = iota
	// Expired means the signature checked out but the token's TTL has
	// lapsed. The decoded claims are still returned so the refresh path
	// can locate the session; they must not be treated as authenticated.
	Expired
	// Valid means signature and expiry both check out.
	Valid
)

// Issuer signs and verifies tokens with an HMAC secret injected at
// construction. It holds no other state and is safe for concurrent use.
type Issuer struct {
	secret []byte
}

func NewIssuer(secret string) *Issuer {
	return &Issuer{secret: []byte(secret)}
}

// Issue signs a token binding userID to sessionID, expiring after ttl.
func (i *Issuer) Issue(userID, sessionID uuid.UUID, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID:    userID,
		SessionID: sessionID,
		Version:   ClaimsVersion,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(i.secret)
}

// Verify checks signature and expiry of tokenString. It never returns an
// error: tokens arrive from untrusted clients on every request, so any
// failure is a result value, not a fault.
func (i *Issuer) Verify(tokenString string) (*Claims, VerifyResult) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return i.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) &&
			!errors.Is(err, jwt.ErrTokenSignatureInvalid) &&
			claims.Version == ClaimsVersion {
			return claims, Expired
		}
		return nil, Invalid
	}

	if !token.Valid || claims.Version != ClaimsVersion {
		return nil, Invalid
	}

	return claims, Valid
}

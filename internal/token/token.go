// Package token issues and verifies the signed session tokens that back
// authenticated requests.
package token

import (
	"fmt"
	"time"

	"github.com/MayankPrasher/draftly-backend/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

// Validity is the fixed token lifetime. There is no refresh mechanism;
// expired tokens require a fresh login.
const Validity = 30 * 24 * time.Hour

// Claims carries the user id as the token's sole application claim.
type Claims struct {
	UserID uint `json:"userId"`
	jwt.RegisteredClaims
}

// Issuer signs and verifies session tokens with a process-wide secret.
type Issuer struct {
	secret   []byte
	validity time.Duration
}

// NewIssuer creates an Issuer with the standard 30-day validity window.
func NewIssuer(secret string) *Issuer {
	return &Issuer{secret: []byte(secret), validity: Validity}
}

// NewIssuerWithValidity creates an Issuer with a custom validity window.
// Used by tests to mint already-expired tokens.
func NewIssuerWithValidity(secret string, validity time.Duration) *Issuer {
	return &Issuer{secret: []byte(secret), validity: validity}
}

// Issue produces a signed token embedding the user id.
func (i *Issuer) Issue(userID uint) (string, error) {
	if len(i.secret) == 0 {
		return "", fmt.Errorf("JWT secret not configured")
	}

	now := time.Now()
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(i.validity)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
}

// Verify parses and validates a token, returning the embedded user id.
// Malformed, mis-signed, and expired tokens all fail with the same
// unauthorized error.
func (i *Issuer) Verify(tokenString string) (uint, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return i.secret, nil
	})
	if err != nil || !parsed.Valid {
		return 0, models.NewUnauthorizedError("Invalid token.")
	}
	if claims.UserID == 0 {
		return 0, models.NewUnauthorizedError("Invalid token.")
	}
	return claims.UserID, nil
}

// Package auth implements the two purely-local security primitives of the
// server: the stateless session-token codec (JWT, HS256) and the password
// hasher (bcrypt). Neither touches the database.
package auth

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/gophtasks/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the fixed-shape payload of a session token: the registered
// subject/expiry claims plus denormalized email and display name. Email and
// name are convenience copies taken at issuance; a later profile change does
// not alter already-issued tokens.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
}

// GenerateToken issues a signed token for userID, expiring after validity.
func GenerateToken(userID, email, name string, secretKey []byte, validity time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validity)),
		},
		Email: email,
		Name:  name,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ParseToken verifies tokenString and returns its claims. The signature and
// the signing algorithm are checked before any claim is trusted; claims from
// a token that fails verification never reach the caller.
//
// Errors: common.ErrTokenExpired for a well-formed token past its expiry,
// common.ErrInvalidToken for everything else (forged signature, wrong
// algorithm, malformed structure, missing subject).
func ParseToken(tokenString string, secretKey []byte) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrInvalidToken
	}

	if !token.Valid || claims.Subject == "" {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}

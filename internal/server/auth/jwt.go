// Package auth issues and verifies the HS256 access tokens carried in the
// "access_token" metadata and decides whether a caller may mutate a record.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/landlease/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

const issuer = "landlease"

// Claims are the registered claims plus the account the caller acts as.
type Claims struct {
	jwt.RegisteredClaims
	Account string `json:"account"`
}

// GenerateToken signs a token for account that is valid for validity.
func GenerateToken(account string, secretKey []byte, validity time.Duration) (string, error) {
	if account == "" {
		return "", fmt.Errorf("%w: empty account", common.ErrInvalidArgument)
	}
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   account,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validity)),
		},
		Account: account,
	})

	return token.SignedString(secretKey)
}

// AccountFromToken verifies tokenString and returns the account it names.
// Expired tokens yield common.ErrTokenExpired, anything else that fails
// verification common.ErrInvalidToken.
func AccountFromToken(tokenString string, secretKey []byte) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuer(issuer))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", common.ErrTokenExpired
		}
		return "", fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}

	if !token.Valid || claims.Account == "" {
		return "", common.ErrInvalidToken
	}

	return claims.Account, nil
}

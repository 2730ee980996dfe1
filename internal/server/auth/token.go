package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/dmitrijs2005/askboard/internal/common"
)

// Claims is the claim set carried by access tokens: the registered claims
// plus the owning user's public uuid.
type Claims struct {
	jwt.RegisteredClaims
	UserUUID string
}

// GenerateToken produces a signed HS256 token for the given user. Every
// token carries a fresh random jti, so two tokens issued in the same instant
// for the same user never collide. The embedded expiry mirrors the session
// row; the row remains the source of truth for validity.
func GenerateToken(userUUID string, secretKey []byte, validityDuration time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validityDuration)),
		},
		UserUUID: userUUID,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// VerifyToken checks the token signature and returns the user uuid claim.
// A token that fails verification cannot have been issued by this server,
// so callers may reject it without a storage lookup. Expiry is deliberately
// not checked here: the session row decides validity.
func VerifyToken(tokenString string, secretKey []byte) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithoutClaimsValidation())
	if err != nil {
		return "", common.ErrNotAuthenticated
	}

	if !token.Valid {
		return "", common.ErrNotAuthenticated
	}

	return claims.UserUUID, nil
}

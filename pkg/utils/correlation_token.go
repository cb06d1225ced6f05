package utils

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// GenerateCorrelationToken mints the signed token embedded in the webhook
// callback URL. The payload carries the local user id so an inbound callback
// can be routed back without a lookup keyed on the URL. No expiry claim: a
// registered webhook must keep resolving for as long as monobank calls it.
func GenerateCorrelationToken(secret string, userID int) (string, error) {
	claims := jwt.MapClaims{
		"iat":     time.Now().Unix(),
		"user_id": userID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", ErrorHandler(err, "failed to sign correlation token")
	}
	return signed, nil
}

// ParseCorrelationToken verifies a callback token and returns the embedded
// user id.
func ParseCorrelationToken(secret, token string) (int, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return 0, fmt.Errorf("invalid correlation token: %w", err)
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return 0, fmt.Errorf("correlation token has unexpected claims")
	}
	id, ok := claims["user_id"].(float64)
	if !ok {
		return 0, fmt.Errorf("correlation token is missing user_id")
	}

	return int(id), nil
}

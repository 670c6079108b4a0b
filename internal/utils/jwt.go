package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-guardian/models"
	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrEmptySubject = errors.New("token has no subject")
)

// SignJWTToken creates a signed HMAC-SHA256 JWT token from claims.
//
// All parameters are required. Returns an error if the sign key is empty or
// claims carry no expiry.
//
// Example usage:
//
//	token, err := utils.SignJWTToken(claims, "secret")
func SignJWTToken(claims *models.TokenClaims, signKey string) (string, error) {
	if claims == nil || claims.ExpiresAt == nil || signKey == "" {
		return "", errors.New("invalid params for signing JWT token")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(signKey))
	if err != nil {
		return "", fmt.Errorf("error occurred during signing JWT token: %w", err)
	}

	return tokenString, nil
}

// ValidateAndParseJWTToken validates the given JWT token string and extracts its claims.
//
// Validation includes:
//   - HS256 signature verification using the provided sign key
//   - Issuer (iss) claim check against tokenIssuer
//   - Expiration (exp) claim presence and check
//   - Subject (sub) claim presence
//
// The returned error preserves the jwt sentinel (jwt.ErrTokenExpired,
// jwt.ErrTokenSignatureInvalid, ...) for errors.Is checks.
func ValidateAndParseJWTToken(tokenString, tokenSignKey, tokenIssuer string) (*models.TokenClaims, error) {
	claims := &models.TokenClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return []byte(tokenSignKey), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("error occurred validating and parsing token: %w", err)
	}

	if claims.Subject == "" {
		return nil, ErrEmptySubject
	}

	return claims, nil
}

// ParseExpiryUnverified reads the exp claim without verifying the signature.
// ok is false when the token has no exp claim.
func ParseExpiryUnverified(tokenString string) (exp time.Time, ok bool, err error) {
	token, _, err := jwt.NewParser().ParseUnverified(tokenString, jwt.MapClaims{})
	if err != nil {
		return time.Time{}, false, err
	}

	expiresAt, err := token.Claims.GetExpirationTime()
	if err != nil {
		return time.Time{}, false, err
	}
	if expiresAt == nil {
		return time.Time{}, false, nil
	}
	return expiresAt.Time, true, nil
}

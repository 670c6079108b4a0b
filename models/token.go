package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenType distinguishes the two credentials issued on login.
type TokenType string

const (
	AccessToken  TokenType = "access"
	RefreshToken TokenType = "refresh"
)

// TokenClaims is the JWT claim set shared by access and refresh tokens.
//
// The subject claim carries the user ID; Email and Role are copied from the
// account at issuance time and are trusted by downstream guards until the
// token expires or is revoked.
type TokenClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`

	jwt.RegisteredClaims
}

// TokenSubject is the identity a token pair is bound to.
type TokenSubject struct {
	SubjectID string
	Email     string
	Role      string
}

// TokenPair is the result of a successful login or refresh.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Principal is the verified identity derived from an access token. It lives
// for the duration of one request and is never persisted.
type Principal struct {
	SubjectID string    `json:"subjectId"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	IssuedAt  time.Time `json:"issuedAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// HasRole reports whether the principal's role is one of roles.
func (p Principal) HasRole(roles ...string) bool {
	for _, role := range roles {
		if p.Role == role {
			return true
		}
	}
	return false
}

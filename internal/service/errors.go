package service

import "errors"

var (
	ErrVersionIsNotSpecified = errors.New("app version is not specified")

	ErrTokenRevoked        = errors.New("token is blacklisted")
	ErrTokenCreationFailed = errors.New("token creation failed")
	ErrInvalidTokenClaims  = errors.New("invalid token claims")
)

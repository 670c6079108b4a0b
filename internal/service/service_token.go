package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-guardian/internal/app"
	"github.com/MKhiriev/go-guardian/internal/config"
	"github.com/MKhiriev/go-guardian/internal/logger"
	"github.com/MKhiriev/go-guardian/internal/store"
	"github.com/MKhiriev/go-guardian/internal/utils"
	"github.com/MKhiriev/go-guardian/models"
	"github.com/golang-jwt/jwt/v5"
)

const blacklistPrefix = "token:blacklist:"

// tokenSecrets pairs a signing secret with the lifetime of one token type.
type tokenSecrets struct {
	secret string
	ttl    time.Duration
}

// tokenService signs access and refresh tokens with independent secrets and
// keeps revoked token strings in the counter store until they expire.
type tokenService struct {
	counters store.CounterStore

	access  tokenSecrets
	refresh tokenSecrets

	// issuer is the "iss" claim embedded in and required of every token.
	issuer string

	ids *utils.UUIDGenerator

	logger *logger.Logger
}

func NewTokenService(counters store.CounterStore, cfg config.App, logger *logger.Logger) TokenService {
	return &tokenService{
		counters: counters,
		access:   tokenSecrets{secret: cfg.AccessTokenSecret, ttl: cfg.AccessTokenTTL},
		refresh:  tokenSecrets{secret: cfg.RefreshTokenSecret, ttl: cfg.RefreshTokenTTL},
		issuer:   cfg.TokenIssuer,
		ids:      utils.NewUUIDGenerator(),
		logger:   logger,
	}
}

// GenerateTokens issues a fresh pair bound to subject. Each token carries its
// own jti, so pairs issued within the same second still differ.
func (s *tokenService) GenerateTokens(ctx context.Context, subject models.TokenSubject) (models.TokenPair, error) {
	if subject.SubjectID == "" {
		return models.TokenPair{}, ErrInvalidTokenClaims
	}

	accessToken, err := s.sign(subject, s.access)
	if err != nil {
		return models.TokenPair{}, fmt.Errorf("%w: access: %w", ErrTokenCreationFailed, err)
	}

	refreshToken, err := s.sign(subject, s.refresh)
	if err != nil {
		return models.TokenPair{}, fmt.Errorf("%w: refresh: %w", ErrTokenCreationFailed, err)
	}

	return models.TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

func (s *tokenService) sign(subject models.TokenSubject, kind tokenSecrets) (string, error) {
	now := time.Now()
	claims := &models.TokenClaims{
		Email: subject.Email,
		Role:  subject.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        s.ids.Generate(),
			Issuer:    s.issuer,
			Subject:   subject.SubjectID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(kind.ttl)),
		},
	}
	return utils.SignJWTToken(claims, kind.secret)
}

// VerifyAccessToken rejects revoked tokens first. A counter store failure
// during that lookup is logged and the token is judged on its signature
// alone.
func (s *tokenService) VerifyAccessToken(ctx context.Context, token string) (models.Principal, error) {
	log := logger.FromContext(ctx)

	revoked, err := s.isBlacklisted(ctx, token)
	switch {
	case err != nil:
		log.Err(err).Str("func", "tokenService.VerifyAccessToken").Msg("blacklist lookup failed, continuing without revocation check")
	case revoked:
		return models.Principal{}, app.AuthenticationWrap(app.MsgInvalidAccessToken, ErrTokenRevoked)
	}

	claims, err := utils.ValidateAndParseJWTToken(token, s.access.secret, s.issuer)
	if err != nil {
		return models.Principal{}, app.AuthenticationWrap(app.MsgInvalidAccessToken, err)
	}

	return principalFromClaims(claims), nil
}

// VerifyRefreshToken rejects revoked tokens first. Unlike access tokens, a
// refresh token is never accepted when revocation cannot be checked.
func (s *tokenService) VerifyRefreshToken(ctx context.Context, token string) (*models.TokenClaims, error) {
	revoked, err := s.isBlacklisted(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("refresh token blacklist lookup failed: %w", err)
	}
	if revoked {
		return nil, app.AuthenticationWrap(app.MsgInvalidRefreshToken, ErrTokenRevoked)
	}

	claims, err := utils.ValidateAndParseJWTToken(token, s.refresh.secret, s.issuer)
	if err != nil {
		return nil, app.AuthenticationWrap(app.MsgInvalidRefreshToken, err)
	}

	return claims, nil
}

// BlacklistToken stores token with a TTL equal to its remaining lifetime.
// Tokens without an exp claim or already expired are skipped.
func (s *tokenService) BlacklistToken(ctx context.Context, token string) error {
	log := logger.FromContext(ctx)

	exp, ok, err := utils.ParseExpiryUnverified(token)
	if err != nil {
		log.Debug().Err(err).Str("func", "tokenService.BlacklistToken").Msg("token could not be decoded, skipping")
		return nil
	}
	if !ok {
		return nil
	}

	// JWT expiry has second precision
	ttl := time.Until(exp).Truncate(time.Second)
	if ttl <= 0 {
		return nil
	}

	key := blacklistPrefix + token
	if err = s.counters.SetWithTTL(ctx, key, "true", ttl); err != nil {
		return fmt.Errorf("error blacklisting token: %w", err)
	}

	log.Info().Str("func", "tokenService.BlacklistToken").Dur("ttl", ttl).Msg("token blacklisted")
	return nil
}

func (s *tokenService) isBlacklisted(ctx context.Context, token string) (bool, error) {
	_, err := s.counters.Get(ctx, blacklistPrefix+token)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, store.ErrKeyNotFound):
		return false, nil
	default:
		return false, err
	}
}

func principalFromClaims(claims *models.TokenClaims) models.Principal {
	principal := models.Principal{
		SubjectID: claims.Subject,
		Email:     claims.Email,
		Role:      claims.Role,
	}
	if claims.IssuedAt != nil {
		principal.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		principal.ExpiresAt = claims.ExpiresAt.Time
	}
	return principal
}

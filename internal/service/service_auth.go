package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/go-guardian/internal/app"
	"github.com/MKhiriev/go-guardian/internal/config"
	"github.com/MKhiriev/go-guardian/internal/logger"
	"github.com/MKhiriev/go-guardian/internal/store"
	"github.com/MKhiriev/go-guardian/internal/utils"
	"github.com/MKhiriev/go-guardian/internal/validators"
	"github.com/MKhiriev/go-guardian/models"
)

// dummyPassword is hashed once and compared against when the email is
// unknown, so both login failures cost one bcrypt comparison.
const dummyPassword = "go-guardian-dummy-password"

// authService is the concrete implementation of AuthService.
// It handles user registration, credential verification and the token pair
// lifecycle, delegating signing and revocation to a TokenService.
type authService struct {
	// userRepository is the data-access layer used to create and look up users.
	userRepository store.UserRepository

	tokens    TokenService
	validator validators.Validator

	// hashCost is the bcrypt cost applied to new password hashes.
	hashCost int

	dummyHashOnce sync.Once
	dummyHash     string

	ids    *utils.UUIDGenerator
	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given
// UserRepository and TokenService.
//
// The returned service is safe for concurrent use.
func NewAuthService(userRepository store.UserRepository, tokens TokenService, cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		userRepository: userRepository,
		tokens:         tokens,
		validator:      validators.NewUserValidator(),
		hashCost:       cfg.PasswordHashCost,
		ids:            utils.NewUUIDGenerator(),
		logger:         logger,
	}
}

// Register creates a new account with a bcrypt-hashed password.
//
// Returns the persisted user or:
//   - a Validation error if a field is malformed;
//   - a Validation error "Email already exists" for a duplicate email;
//   - a wrapped storage error otherwise.
func (a *authService) Register(ctx context.Context, req models.RegisterRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	if err := a.validator.Validate(ctx, req); err != nil {
		log.Debug().Err(err).Str("email", req.Email).Msg("invalid registration data")
		return models.User{}, invalidData(err)
	}

	role := req.Role
	if role == "" {
		role = models.RoleUser
	}

	hash, err := utils.HashPassword(req.Password, a.hashCost)
	if err != nil {
		return models.User{}, fmt.Errorf("user registration failed: %w", err)
	}

	now := time.Now().UTC()
	user := models.User{
		ID:           a.ids.Generate(),
		Email:        strings.ToLower(req.Email),
		PasswordHash: hash,
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	log.Info().Str("email", user.Email).Msg("registering new user")

	created, err := a.userRepository.CreateUser(ctx, user)
	if errors.Is(err, store.ErrEmailAlreadyExists) {
		return models.User{}, app.Validation(app.MsgEmailAlreadyExists)
	}
	if err != nil {
		log.Err(err).Str("email", user.Email).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	return created, nil
}

// Login authenticates an account and issues a token pair.
//
// An unknown email and a wrong password fail with the same
// Authentication("Invalid credentials") error.
func (a *authService) Login(ctx context.Context, req models.LoginRequest) (models.TokenPair, error) {
	log := logger.FromContext(ctx)

	if err := a.validator.Validate(ctx, req); err != nil {
		return models.TokenPair{}, invalidData(err)
	}

	log.Info().Str("email", req.Email).Msg("login attempt")

	user, err := a.userRepository.FindUserByEmail(ctx, req.Email)
	if errors.Is(err, store.ErrUserNotFound) {
		// keep the timing of unknown emails close to wrong passwords
		_ = utils.ComparePassword(a.getDummyHash(), req.Password)
		return models.TokenPair{}, app.Authentication(app.MsgInvalidCredentials)
	}
	if err != nil {
		log.Err(err).Str("email", req.Email).Msg("user search by email failed")
		return models.TokenPair{}, fmt.Errorf("user search by email failed: %w", err)
	}

	if err = utils.ComparePassword(user.PasswordHash, req.Password); err != nil {
		if !errors.Is(err, utils.ErrPasswordMismatch) {
			log.Err(err).Str("id", user.ID).Msg("stored password hash is unreadable")
		}
		return models.TokenPair{}, app.Authentication(app.MsgInvalidCredentials)
	}

	return a.tokens.GenerateTokens(ctx, subjectOf(user))
}

// Refresh exchanges a valid refresh token for a new pair. The presented
// refresh token is revoked so it cannot be used twice.
func (a *authService) Refresh(ctx context.Context, refreshToken string) (models.TokenPair, error) {
	log := logger.FromContext(ctx)

	if err := a.validator.Validate(ctx, models.RefreshRequest{RefreshToken: refreshToken}); err != nil {
		return models.TokenPair{}, invalidData(err)
	}

	claims, err := a.tokens.VerifyRefreshToken(ctx, refreshToken)
	if err != nil {
		return models.TokenPair{}, err
	}

	user, err := a.userRepository.FindUserByID(ctx, claims.Subject)
	if errors.Is(err, store.ErrUserNotFound) {
		return models.TokenPair{}, app.Authentication(app.MsgUserNotFoundForToken)
	}
	if err != nil {
		log.Err(err).Str("id", claims.Subject).Msg("user search by id failed")
		return models.TokenPair{}, fmt.Errorf("user search by id failed: %w", err)
	}

	if err = a.tokens.BlacklistToken(ctx, refreshToken); err != nil {
		return models.TokenPair{}, fmt.Errorf("refresh token rotation failed: %w", err)
	}

	return a.tokens.GenerateTokens(ctx, subjectOf(user))
}

// Logout revokes the access token the request was authenticated with and,
// when supplied, the refresh token.
func (a *authService) Logout(ctx context.Context, req models.LogoutRequest) error {
	log := logger.FromContext(ctx)
	log.Info().Str("subject_id", req.SubjectID).Msg("logout")

	if req.AccessToken != "" {
		if err := a.tokens.BlacklistToken(ctx, req.AccessToken); err != nil {
			return fmt.Errorf("logout failed: %w", err)
		}
	}

	if req.RefreshToken != "" {
		if err := a.tokens.BlacklistToken(ctx, req.RefreshToken); err != nil {
			return fmt.Errorf("logout failed: %w", err)
		}
	}

	return nil
}

func (a *authService) getDummyHash() string {
	a.dummyHashOnce.Do(func() {
		hash, err := utils.HashPassword(dummyPassword, a.hashCost)
		if err != nil {
			a.logger.Err(err).Str("func", "authService.getDummyHash").Msg("error hashing dummy password")
			return
		}
		a.dummyHash = hash
	})
	return a.dummyHash
}

func subjectOf(user models.User) models.TokenSubject {
	return models.TokenSubject{SubjectID: user.ID, Email: user.Email, Role: user.Role}
}

// invalidData turns a validator failure into a client-safe 400.
func invalidData(err error) *app.Error {
	return app.Validation(app.MsgInvalidDataProvided + ": " + err.Error())
}

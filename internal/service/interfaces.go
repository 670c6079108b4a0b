package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-guardian/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// TokenService issues, verifies and revokes the access/refresh pair.
type TokenService interface {
	GenerateTokens(ctx context.Context, subject models.TokenSubject) (models.TokenPair, error)

	// VerifyAccessToken checks revocation, signature, issuer and expiry of an
	// access token and returns the principal it was issued to.
	VerifyAccessToken(ctx context.Context, token string) (models.Principal, error)
	VerifyRefreshToken(ctx context.Context, token string) (*models.TokenClaims, error)

	// BlacklistToken revokes token until its natural expiry.
	BlacklistToken(ctx context.Context, token string) error
}

type AuthService interface {
	Register(ctx context.Context, req models.RegisterRequest) (models.User, error)
	Login(ctx context.Context, req models.LoginRequest) (models.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (models.TokenPair, error)
	Logout(ctx context.Context, req models.LogoutRequest) error
}

type UserService interface {
	GetUser(ctx context.Context, id string) (models.User, error)
	ListUsers(ctx context.Context, query models.ListUsersQuery) (models.UserList, error)
	UpdateUser(ctx context.Context, id string, req models.UpdateUserRequest) (models.User, error)
	DeleteUser(ctx context.Context, id string) error
}

// RateLimitService counts requests in fixed windows held by the shared
// counter store.
type RateLimitService interface {
	Take(ctx context.Context, policy models.RateLimitPolicy, client string) (models.RateDecision, error)
}

// MetricsService aggregates per-endpoint counters. Updates are
// read-modify-write, concurrent writers may lose updates.
type MetricsService interface {
	RecordHit(ctx context.Context, method, path string) error
	RecordCompletion(ctx context.Context, method, path string, duration time.Duration) error
	RecordError(ctx context.Context, method, path string) error
	List(ctx context.Context) ([]models.EndpointMetricsView, error)
}

type AlertService interface {
	Trigger(ctx context.Context, alertType, message string, severity models.Severity) models.Alert
	List(ctx context.Context) []models.Alert
}

type HealthService interface {
	Check(ctx context.Context) models.HealthReport
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
	GetBuildInfo(ctx context.Context) models.AppBuildInfo
}

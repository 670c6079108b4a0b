package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MKhiriev/go-guardian/internal/app"
	"github.com/MKhiriev/go-guardian/internal/config"
	"github.com/MKhiriev/go-guardian/internal/interceptor"
	"github.com/MKhiriev/go-guardian/internal/logger"
	"github.com/MKhiriev/go-guardian/internal/service"
	"github.com/MKhiriev/go-guardian/internal/store"
	"github.com/MKhiriev/go-guardian/internal/utils"
	"github.com/MKhiriev/go-guardian/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ─────────────────────────────────────────────
// End-to-end: real services over SQLite and the in-memory counter store
// ─────────────────────────────────────────────

func e2eConfig() config.StructuredConfig {
	cfg := testConfig()
	cfg.App.AccessTokenSecret = "e2e-access-secret"
	cfg.App.RefreshTokenSecret = "e2e-refresh-secret"
	cfg.App.TokenIssuer = "go-guardian"
	cfg.App.RefreshTokenTTL = 7 * 24 * time.Hour
	cfg.App.PasswordHashCost = 4
	cfg.Storage = config.Storage{
		DB:    config.DB{DSN: ":memory:"},
		Cache: config.Cache{URL: config.MemoryCacheURL},
	}
	cfg.RateLimit.AuthMax = 50
	cfg.RateLimit.GlobalMax = 500
	cfg.RateLimit.APIMax = 100
	return cfg
}

// newE2EServer serves the full stack. Each override may swap storages before
// the services are built.
func newE2EServer(t *testing.T, cfg config.StructuredConfig, overrides ...func(*store.Storages)) *utils.HTTPClient {
	t.Helper()
	log := logger.Nop()

	storages, err := store.NewStorages(context.Background(), cfg.Storage, log)
	require.NoError(t, err)
	t.Cleanup(func() { _ = storages.Close() })

	for _, override := range overrides {
		override(storages)
	}

	services, err := service.NewServices(storages, cfg, models.NewAppBuildInfo("1.0.0", "", ""), log)
	require.NoError(t, err)

	h := NewHandler(services, cfg, interceptor.NewPrometheusCollector(), utils.NewUUIDGenerator(), log)
	srv := httptest.NewServer(h.Init())
	t.Cleanup(srv.Close)

	return utils.NewHTTPClient(srv.URL, 5*time.Second)
}

// unavailableCounterStore fails every operation like an unreachable Redis.
type unavailableCounterStore struct{}

var errCounterStoreDown = errors.New("dial tcp 127.0.0.1:6379: connect: connection refused")

func (unavailableCounterStore) Increment(context.Context, string, time.Duration) (int64, time.Duration, error) {
	return 0, 0, errCounterStoreDown
}

func (unavailableCounterStore) Get(context.Context, string) (string, error) {
	return "", errCounterStoreDown
}

func (unavailableCounterStore) SetWithTTL(context.Context, string, string, time.Duration) error {
	return errCounterStoreDown
}

func (unavailableCounterStore) Scan(context.Context, string) ([]string, error) {
	return nil, errCounterStoreDown
}

func (unavailableCounterStore) Ping(context.Context) error { return errCounterStoreDown }
func (unavailableCounterStore) Close() error               { return nil }

func registerAndLogin(t *testing.T, client *utils.HTTPClient, email, role string) models.LoginResponse {
	t.Helper()

	resp, err := client.R().
		SetBody(models.RegisterRequest{Email: email, Password: "password1", FirstName: "Test", LastName: "User", Role: role}).
		Post("/api/v1/auth/register")
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode(), resp.String())

	var login models.LoginResponse
	resp, err = client.R().
		SetBody(models.LoginRequest{Email: email, Password: "password1"}).
		SetResult(&login).
		Post("/api/v1/auth/login")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode(), resp.String())
	return login
}

func TestE2E_LoginIssuesTokensAndCookie(t *testing.T) {
	client := newE2EServer(t, e2eConfig())

	_, err := client.R().
		SetBody(models.RegisterRequest{Email: "a@x.com", Password: "password1", FirstName: "A", LastName: "X"}).
		Post("/api/v1/auth/register")
	require.NoError(t, err)

	var login models.LoginResponse
	resp, err := client.R().
		SetBody(models.LoginRequest{Email: "a@x.com", Password: "password1"}).
		SetResult(&login).
		Post("/api/v1/auth/login")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode())

	assert.NotEmpty(t, login.AccessToken)
	assert.NotEmpty(t, login.RefreshToken)
	assert.Equal(t, app.MsgLoginSuccessful, login.Message)

	var cookie *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == accessTokenCookie {
			cookie = c
		}
	}
	require.NotNil(t, cookie)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, login.AccessToken, cookie.Value)

	assert.NotEmpty(t, resp.Header().Get(requestIDHeader))
	assert.NotEmpty(t, resp.Header().Get(correlationIDHeader))
}

func TestE2E_LoginFailuresLookAlike(t *testing.T) {
	client := newE2EServer(t, e2eConfig())
	registerAndLogin(t, client, "a@x.com", "")

	var wrongPassword, unknownEmail models.ErrorResponse
	resp, err := client.R().SetBody(models.LoginRequest{Email: "a@x.com", Password: "not-the-password"}).
		SetError(&wrongPassword).Post("/api/v1/auth/login")
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode())

	resp, err = client.R().SetBody(models.LoginRequest{Email: "nobody@x.com", Password: "password1"}).
		SetError(&unknownEmail).Post("/api/v1/auth/login")
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode())

	assert.Equal(t, wrongPassword, unknownEmail)
	assert.Equal(t, "Invalid credentials", unknownEmail.Message)
}

func TestE2E_RoleGuard(t *testing.T) {
	client := newE2EServer(t, e2eConfig())
	admin := registerAndLogin(t, client, "admin@x.com", models.RoleAdmin)
	user := registerAndLogin(t, client, "user@x.com", "")

	var failure models.ErrorResponse
	resp, err := client.R().SetAuthToken(user.AccessToken).SetError(&failure).Get("/api/v1/users")
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode())
	assert.Equal(t, models.ErrorResponse{Status: "error", Message: "Insufficient permissions"}, failure)

	var list models.UserList
	resp, err = client.R().SetAuthToken(admin.AccessToken).SetResult(&list).Get("/api/v1/users")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode())
	assert.Equal(t, int64(2), list.Total)
	assert.Len(t, list.Users, 2)
}

func TestE2E_LogoutRevokesAccessToken(t *testing.T) {
	client := newE2EServer(t, e2eConfig())
	admin := registerAndLogin(t, client, "admin@x.com", models.RoleAdmin)

	resp, err := client.R().SetAuthToken(admin.AccessToken).Get("/monitoring/alerts")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode())

	resp, err = client.R().SetAuthToken(admin.AccessToken).
		SetBody(models.RefreshRequest{RefreshToken: admin.RefreshToken}).
		Post("/api/v1/auth/logout")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode(), resp.String())

	var failure models.ErrorResponse
	resp, err = client.R().SetAuthToken(admin.AccessToken).SetError(&failure).Get("/monitoring/alerts")
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode())
	assert.Equal(t, "Invalid access token: token is blacklisted", failure.Message)

	resp, err = client.R().SetBody(models.RefreshRequest{RefreshToken: admin.RefreshToken}).
		SetError(&failure).Post("/api/v1/auth/refresh")
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode())
	assert.Equal(t, "Invalid refresh token: token is blacklisted", failure.Message)
}

func TestE2E_RefreshRotation(t *testing.T) {
	client := newE2EServer(t, e2eConfig())
	login := registerAndLogin(t, client, "a@x.com", "")

	var refreshed models.RefreshResponse
	resp, err := client.R().SetBody(models.RefreshRequest{RefreshToken: login.RefreshToken}).
		SetResult(&refreshed).Post("/api/v1/auth/refresh")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode(), resp.String())
	assert.NotEqual(t, login.RefreshToken, refreshed.RefreshToken)

	resp, err = client.R().SetBody(models.RefreshRequest{RefreshToken: login.RefreshToken}).
		Post("/api/v1/auth/refresh")
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode(), "a used refresh token must not be accepted twice")

	resp, err = client.R().SetBody(models.RefreshRequest{RefreshToken: refreshed.RefreshToken}).
		Post("/api/v1/auth/refresh")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode())
}

func TestE2E_AuthRateLimit(t *testing.T) {
	cfg := e2eConfig()
	cfg.RateLimit.AuthMax = 3
	client := newE2EServer(t, cfg)

	for i := 1; i <= 3; i++ {
		resp, err := client.R().SetBody(models.LoginRequest{Email: "nobody@x.com", Password: "password1"}).
			Post("/api/v1/auth/login")
		require.NoError(t, err)
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode(), "attempt %d", i)
	}

	var failure models.ErrorResponse
	resp, err := client.R().SetBody(models.LoginRequest{Email: "nobody@x.com", Password: "password1"}).
		SetError(&failure).Post("/api/v1/auth/login")
	require.NoError(t, err)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode())
	assert.Equal(t, "Too many requests, please try again later.", failure.Message)
	assert.Equal(t, "0", resp.Header().Get(headerRateLimitRemaining))
	assert.NotEmpty(t, resp.Header().Get(headerRetryAfter))

	// other routes keep their own window
	resp, err = client.R().Get("/health")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode())
}

func TestE2E_MetricsAggregated(t *testing.T) {
	client := newE2EServer(t, e2eConfig())
	admin := registerAndLogin(t, client, "admin@x.com", models.RoleAdmin)

	for range 3 {
		_, err := client.R().Get("/health")
		require.NoError(t, err)
	}
	_, err := client.R().Get("/nope")
	require.NoError(t, err)

	var metrics models.MetricsResponse
	resp, err := client.R().SetAuthToken(admin.AccessToken).SetResult(&metrics).Get("/metrics")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode())

	byEndpoint := make(map[string]models.EndpointMetrics, len(metrics.Metrics))
	for _, view := range metrics.Metrics {
		byEndpoint[view.Endpoint] = view.EndpointMetrics
	}

	assert.Equal(t, int64(3), byEndpoint["GET:/health"].Hits)
	assert.Equal(t, int64(1), byEndpoint["GET:/nope"].Errors)
	assert.Equal(t, int64(1), byEndpoint["POST:/api/v1/auth/login"].Hits)
	assert.Equal(t, len(metrics.Metrics), metrics.Total)
}

func TestE2E_Health(t *testing.T) {
	client := newE2EServer(t, e2eConfig())

	var report models.HealthReport
	resp, err := client.R().SetResult(&report).Get("/health")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode())

	assert.Equal(t, "OK", report.Status)
	assert.Equal(t, map[string]string{"database": "OK", "redis": "OK", "api": "OK"}, report.Services)
	assert.Equal(t, "test", report.Environment)
}

func TestE2E_HealthReportsCounterStoreOutage(t *testing.T) {
	client := newE2EServer(t, e2eConfig(), func(s *store.Storages) {
		_ = s.CounterStore.Close()
		s.CounterStore = unavailableCounterStore{}
	})

	var report models.HealthReport
	resp, err := client.R().SetError(&report).Get("/health")
	require.NoError(t, err)

	require.Equal(t, http.StatusServiceUnavailable, resp.StatusCode(), resp.String())
	assert.Equal(t, "ERROR", report.Status)
	assert.Equal(t, map[string]string{"database": "OK", "redis": "ERROR", "api": "OK"}, report.Services)

	resp, err = client.R().Get("/monitoring/prometheus")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode())

	// rate-limited routes fail closed while the store is down
	var body models.ErrorResponse
	resp, err = client.R().SetError(&body).Get("/")
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode())
	assert.Equal(t, app.MsgInternalServerError, body.Message)
}

func TestE2E_UpdateUser(t *testing.T) {
	client := newE2EServer(t, e2eConfig())
	admin := registerAndLogin(t, client, "admin@x.com", models.RoleAdmin)
	registerAndLogin(t, client, "user@x.com", "")

	var list models.UserList
	resp, err := client.R().SetAuthToken(admin.AccessToken).SetResult(&list).Get("/api/v1/users")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode())

	var userID string
	for _, u := range list.Users {
		if u.Email == "user@x.com" {
			userID = u.ID
		}
	}
	require.NotEmpty(t, userID)

	var updated userResponse
	resp, err = client.R().SetAuthToken(admin.AccessToken).
		SetBody(map[string]string{"firstName": "Renamed", "email": "Renamed@X.com"}).
		SetResult(&updated).
		Patch("/api/v1/users/" + userID)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode(), resp.String())
	assert.Equal(t, "Renamed", updated.User.FirstName)
	assert.Equal(t, "renamed@x.com", updated.User.Email)

	// the new email logs in with the old password
	resp, err = client.R().
		SetBody(models.LoginRequest{Email: "renamed@x.com", Password: "password1"}).
		Post("/api/v1/auth/login")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode())

	var failure models.ErrorResponse
	resp, err = client.R().SetAuthToken(admin.AccessToken).
		SetBody(map[string]string{"email": "admin@x.com"}).
		SetError(&failure).
		Patch("/api/v1/users/" + userID)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode())
	assert.Equal(t, app.MsgEmailAlreadyExists, failure.Message)
}

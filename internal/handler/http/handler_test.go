package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/MKhiriev/go-guardian/internal/config"
	"github.com/MKhiriev/go-guardian/internal/interceptor"
	"github.com/MKhiriev/go-guardian/internal/logger"
	"github.com/MKhiriev/go-guardian/internal/mock"
	"github.com/MKhiriev/go-guardian/internal/service"
	"github.com/MKhiriev/go-guardian/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

// sequenceIDs hands out "id-1", "id-2", ... in order.
type sequenceIDs struct {
	n int
}

func (s *sequenceIDs) Generate() string {
	s.n++
	return "id-" + strconv.Itoa(s.n)
}

type testMocks struct {
	tokens  *mock.MockTokenService
	auth    *mock.MockAuthService
	users   *mock.MockUserService
	limiter *mock.MockRateLimitService
	metrics *mock.MockMetricsService
	alerts  *mock.MockAlertService
	health  *mock.MockHealthService
	appInfo *mock.MockAppInfoService
}

func testConfig() config.StructuredConfig {
	return config.StructuredConfig{
		App: config.App{
			Environment:    "test",
			Version:        "1.0.0",
			AccessTokenTTL: 15 * time.Minute,
		},
		Server: config.Server{CORSOrigins: []string{"*"}},
		RateLimit: config.RateLimit{
			GlobalWindow: 15 * time.Minute, GlobalMax: 100,
			AuthWindow: 15 * time.Minute, AuthMax: 5,
			APIWindow: time.Minute, APIMax: 30,
		},
		Monitoring: config.Monitoring{
			SlowRequestThreshold: time.Hour,
			MetricsTTL:           24 * time.Hour,
			MaxAlerts:            10,
		},
	}
}

// newTestHandler builds a Handler over gomock services. Rate limiting and
// metrics admit everything unless a test sets stricter expectations first.
func newTestHandler(t *testing.T, ctrl *gomock.Controller) (*Handler, testMocks) {
	t.Helper()

	m := testMocks{
		tokens:  mock.NewMockTokenService(ctrl),
		auth:    mock.NewMockAuthService(ctrl),
		users:   mock.NewMockUserService(ctrl),
		limiter: mock.NewMockRateLimitService(ctrl),
		metrics: mock.NewMockMetricsService(ctrl),
		alerts:  mock.NewMockAlertService(ctrl),
		health:  mock.NewMockHealthService(ctrl),
		appInfo: mock.NewMockAppInfoService(ctrl),
	}

	svcs := &service.Services{
		TokenService:     m.tokens,
		AuthService:      m.auth,
		UserService:      m.users,
		RateLimitService: m.limiter,
		MetricsService:   m.metrics,
		AlertService:     m.alerts,
		HealthService:    m.health,
		AppInfoService:   m.appInfo,
	}

	h := NewHandler(svcs, testConfig(), interceptor.NewPrometheusCollector(), &sequenceIDs{}, logger.Nop())
	return h, m
}

func (m testMocks) admitAll() {
	m.limiter.EXPECT().Take(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, policy models.RateLimitPolicy, _ string) (models.RateDecision, error) {
			return models.RateDecision{Limit: policy.Max, Remaining: policy.Max - 1, ResetAfter: policy.Window, Allowed: true}, nil
		}).AnyTimes()
	m.metrics.EXPECT().RecordHit(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	m.metrics.EXPECT().RecordCompletion(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	m.metrics.EXPECT().RecordError(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
}

// expectPrincipal makes the token service accept token as principal.
func (m testMocks) expectPrincipal(token string, principal models.Principal) {
	m.tokens.EXPECT().VerifyAccessToken(gomock.Any(), token).Return(principal, nil)
}

func adminPrincipal() models.Principal {
	return models.Principal{SubjectID: "admin-1", Email: "admin@x.com", Role: models.RoleAdmin}
}

func userPrincipal() models.Principal {
	return models.Principal{SubjectID: "user-1", Email: "user@x.com", Role: models.RoleUser}
}

func do(router http.Handler, r *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)
	return w
}

func errorBody(t *testing.T, w *httptest.ResponseRecorder) models.ErrorResponse {
	t.Helper()
	var body models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	assert.Equal(t, "error", body.Status)
	return body
}

// ─────────────────────────────────────────────
// NewHandler
// ─────────────────────────────────────────────

func TestNewHandler_StoresDependencies(t *testing.T) {
	svc := &service.Services{}
	log := logger.Nop()
	collector := interceptor.NewPrometheusCollector()

	h := NewHandler(svc, testConfig(), collector, &sequenceIDs{}, log)

	require.NotNil(t, h)
	assert.Equal(t, svc, h.services)
	assert.Equal(t, log, h.logger)
	assert.Same(t, collector, h.prometheus)
}

func TestHandler_Policies(t *testing.T) {
	h := NewHandler(&service.Services{}, testConfig(), interceptor.NewPrometheusCollector(), &sequenceIDs{}, logger.Nop())

	assert.Equal(t, models.RateLimitPolicy{Name: "global", Window: 15 * time.Minute, Max: 100}, h.globalPolicy())
	assert.Equal(t, models.RateLimitPolicy{Name: "auth", Window: 15 * time.Minute, Max: 5}, h.authPolicy())
	assert.Equal(t, models.RateLimitPolicy{Name: "api", Window: time.Minute, Max: 30}, h.apiPolicy())
}

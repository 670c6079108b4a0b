package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MKhiriev/go-guardian/internal/app"
	"github.com/MKhiriev/go-guardian/models"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestWithRateLimit(t *testing.T) {
	policy := models.RateLimitPolicy{Name: "auth", Window: 15 * time.Minute, Max: 5}

	tests := []struct {
		name           string
		decision       models.RateDecision
		takeErr        error
		wantStatus     int
		wantNext       bool
		wantHeaders    map[string]string
		wantRetryAfter string
	}{
		{
			name:       "admitted",
			decision:   models.RateDecision{Count: 1, Limit: 5, Remaining: 4, ResetAfter: 1500 * time.Millisecond, Allowed: true},
			wantStatus: http.StatusOK,
			wantNext:   true,
			wantHeaders: map[string]string{
				headerRateLimitLimit:     "5",
				headerRateLimitRemaining: "4",
				headerRateLimitReset:     "2",
			},
		},
		{
			name:       "rejected",
			decision:   models.RateDecision{Count: 6, Limit: 5, Remaining: 0, ResetAfter: 10 * time.Minute, Allowed: false},
			wantStatus: http.StatusTooManyRequests,
			wantHeaders: map[string]string{
				headerRateLimitLimit:     "5",
				headerRateLimitRemaining: "0",
				headerRateLimitReset:     "600",
			},
			wantRetryAfter: "600",
		},
		{
			name:       "store failure fails closed",
			takeErr:    errors.New("connection refused"),
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			h, m := newTestHandler(t, ctrl)
			m.limiter.EXPECT().Take(gomock.Any(), policy, "192.0.2.1").Return(tt.decision, tt.takeErr)

			nextCalled := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				w.WriteHeader(http.StatusOK)
			})

			r := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", nil)
			w := do(h.withRateLimit(policy)(next), r)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantNext, nextCalled)
			for name, value := range tt.wantHeaders {
				assert.Equal(t, value, w.Header().Get(name), name)
			}
			assert.Equal(t, tt.wantRetryAfter, w.Header().Get(headerRetryAfter))

			switch tt.wantStatus {
			case http.StatusTooManyRequests:
				assert.Equal(t, app.MsgTooManyRequests, errorBody(t, w).Message)
			case http.StatusInternalServerError:
				assert.Equal(t, app.MsgInternalServerError, errorBody(t, w).Message)
			}
		})
	}
}

func TestCeilSeconds(t *testing.T) {
	assert.Equal(t, int64(0), ceilSeconds(0))
	assert.Equal(t, int64(0), ceilSeconds(-time.Second))
	assert.Equal(t, int64(1), ceilSeconds(time.Millisecond))
	assert.Equal(t, int64(60), ceilSeconds(time.Minute))
}

package models

// ErrorResponse is the wire shape of every failed request.
type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// MessageResponse is returned by endpoints that only acknowledge an action.
type MessageResponse struct {
	Message string `json:"message"`
}

// LoginResponse is returned by a successful login.
type LoginResponse struct {
	Message      string `json:"message"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// RefreshResponse is returned by a successful token refresh. The new access
// token travels in the cookie only.
type RefreshResponse struct {
	Message      string `json:"message"`
	RefreshToken string `json:"refreshToken"`
}

// MetricsResponse lists the aggregated per-endpoint counters.
type MetricsResponse struct {
	Metrics []EndpointMetricsView `json:"metrics"`
	Total   int                   `json:"total"`
}

// AlertsResponse lists the alerts raised since process start.
type AlertsResponse struct {
	Alerts []Alert `json:"alerts"`
	Total  int     `json:"total"`
}

// HealthReport is returned by the health endpoint.
type HealthReport struct {
	Uptime      float64           `json:"uptime"`
	Status      string            `json:"status"`
	Timestamp   int64             `json:"timestamp"`
	Services    map[string]string `json:"services"`
	Environment string            `json:"environment"`
}

// Healthy reports whether every dependency is up.
func (h HealthReport) Healthy() bool {
	return h.Status == "OK"
}

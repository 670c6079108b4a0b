package models

import "time"

// EndpointMetrics is the JSON document stored per (method, path).
// Durations are milliseconds, LastAccessed is a unix millisecond timestamp.
type EndpointMetrics struct {
	Hits          int64   `json:"hits"`
	TotalDuration int64   `json:"totalDuration"`
	AvgDuration   float64 `json:"avgDuration"`
	Errors        int64   `json:"errors"`
	LastAccessed  int64   `json:"lastAccessed"`
}

// EndpointMetricsView is one entry of the metrics read endpoint.
type EndpointMetricsView struct {
	Endpoint string `json:"endpoint"`
	EndpointMetrics
}

// Severity ranks alerts.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Alert is an append-only entry raised by internal threshold checks.
type Alert struct {
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	Severity  Severity  `json:"severity"`
	Timestamp time.Time `json:"timestamp"`
}

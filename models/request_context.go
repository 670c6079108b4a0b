package models

// RequestContext is the per-request identity assigned at pipeline entry.
// Both IDs are always non-empty. It is passed by value and never mutated.
type RequestContext struct {
	RequestID     string
	CorrelationID string
}

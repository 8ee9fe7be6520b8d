package domain

import "time"

// HealthStatus is the payload for liveness and readiness probes.
type HealthStatus struct {
	Status    string         `json:"status"`
	Version   string         `json:"version,omitempty"`
	Entities  map[string]int `json:"entities,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

// ListResponse is the standard envelope for paginated list endpoints.
// HasMore tells clients whether another page follows without a second
// round trip.
type ListResponse[T any] struct {
	Items    []T  `json:"items"`
	Total    int  `json:"total"`
	Page     int  `json:"page"`
	PageSize int  `json:"pageSize"`
	HasMore  bool `json:"hasMore"`
}

// SuccessResponse is the standard envelope for acknowledgements.
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

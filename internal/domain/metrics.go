package domain

// WorkflowMetrics is the aggregate snapshot served by the operational
// metrics endpoint. Counts are cumulative for the process lifetime.
type WorkflowMetrics struct {
	TotalRequests   int64   `json:"totalRequests"`
	ErrorRate       float64 `json:"errorRate"`
	Transitions     int64   `json:"transitions"`
	WebhooksSent    int64   `json:"webhooksSent"`
	WebhookFailures int64   `json:"webhookFailures"`
	CacheHitRate    float64 `json:"cacheHitRate"`
	Period          string  `json:"period"`
}

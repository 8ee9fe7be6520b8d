// Package notify delivers status-transition events to an external
// webhook sink.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/Isabellaariza/Nudo-Studio-sub001/internal/domain"
	"github.com/Isabellaariza/Nudo-Studio-sub001/internal/infra/observability"
	"github.com/Isabellaariza/Nudo-Studio-sub001/internal/infra/resilience"
)

// Webhook posts transition events as JSON to a configured URL. Events
// are queued on a buffered channel; Publish never blocks a workflow,
// and events are dropped with a warning when the queue is full.
type Webhook struct {
	url     string
	client  *http.Client
	breaker *gobreaker.CircuitBreaker
	retry   resilience.Config
	logger  *zap.Logger
	metrics *observability.Metrics
	queue   chan domain.TransitionEvent
}

// NewWebhook builds the notifier. An empty URL disables delivery:
// Publish becomes a no-op and Run returns immediately.
func NewWebhook(url string, timeout time.Duration, retry resilience.Config, logger *zap.Logger, metrics *observability.Metrics) *Webhook {
	return &Webhook{
		url:     url,
		client:  &http.Client{Timeout: timeout},
		breaker: resilience.NewCircuitBreaker("webhook"),
		retry:   retry,
		logger:  logger,
		metrics: metrics,
		queue:   make(chan domain.TransitionEvent, 128),
	}
}

// Publish enqueues an event for delivery.
func (w *Webhook) Publish(event domain.TransitionEvent) {
	if w.url == "" {
		return
	}
	select {
	case w.queue <- event:
	default:
		w.logger.Warn("webhook queue full, dropping event",
			zap.String("event_id", event.EventID),
			zap.String("entity", event.Entity),
		)
		w.metrics.IncrWebhookDelivery("dropped")
	}
}

// Run consumes the queue until ctx is cancelled. It is meant to be
// started once as a background goroutine alongside the HTTP server.
// Deliveries run concurrently up to the configured limit.
func (w *Webhook) Run(ctx context.Context) error {
	if w.url == "" {
		<-ctx.Done()
		return nil
	}
	limit := w.retry.MaxConcurrency
	if limit < 1 {
		limit = 1
	}
	bulkhead := resilience.NewBulkhead(limit)
	for {
		select {
		case <-ctx.Done():
			return nil
		case event := <-w.queue:
			if err := bulkhead.Acquire(ctx); err != nil {
				return nil
			}
			go func(event domain.TransitionEvent) {
				defer bulkhead.Release()
				if err := w.deliver(ctx, event); err != nil {
					w.logger.Error("webhook delivery failed",
						zap.String("event_id", event.EventID),
						zap.String("entity", event.Entity),
						zap.Error(err),
					)
					w.metrics.IncrWebhookDelivery("failed")
					return
				}
				w.metrics.IncrWebhookDelivery("sent")
			}(event)
		}
	}
}

func (w *Webhook) deliver(ctx context.Context, event domain.TransitionEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshaling event: %w", err)
	}

	return resilience.RetryWithBackoff(ctx, w.retry, func() error {
		_, err := w.breaker.Execute(func() (interface{}, error) {
			req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
			if err != nil {
				return nil, err
			}
			req.Header.Set("Content-Type", "application/json")

			resp, err := w.client.Do(req)
			if err != nil {
				return nil, &domain.ErrExternalService{Service: "webhook", Err: err}
			}
			defer resp.Body.Close()

			if resp.StatusCode >= 400 {
				return nil, &domain.ErrExternalService{
					Service: "webhook",
					Err:     fmt.Errorf("unexpected status %d", resp.StatusCode),
				}
			}
			return nil, nil
		})
		if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
			return &domain.ErrCircuitOpen{Service: "webhook"}
		}
		return err
	})
}

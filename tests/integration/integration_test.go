package integration_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/Isabellaariza/Nudo-Studio-sub001/internal/domain"
	"github.com/Isabellaariza/Nudo-Studio-sub001/internal/handler"
	"github.com/Isabellaariza/Nudo-Studio-sub001/internal/infra/cache"
	"github.com/Isabellaariza/Nudo-Studio-sub001/internal/infra/notify"
	"github.com/Isabellaariza/Nudo-Studio-sub001/internal/infra/observability"
	"github.com/Isabellaariza/Nudo-Studio-sub001/internal/infra/resilience"
	"github.com/Isabellaariza/Nudo-Studio-sub001/internal/service"
	"github.com/Isabellaariza/Nudo-Studio-sub001/internal/store/memory"
)

// webhookSink collects the transition events the notifier delivers.
type webhookSink struct {
	mu     sync.Mutex
	events []domain.TransitionEvent
}

func (s *webhookSink) handler(w http.ResponseWriter, r *http.Request) {
	var event domain.TransitionEvent
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.mu.Lock()
	s.events = append(s.events, event)
	s.mu.Unlock()
	w.WriteHeader(http.StatusAccepted)
}

func (s *webhookSink) waitFor(t *testing.T, count int) []domain.TransitionEvent {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		s.mu.Lock()
		n := len(s.events)
		s.mu.Unlock()
		if n >= count {
			break
		}
		time.Sleep(20 * time.Millisecond)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.events) < count {
		t.Fatalf("expected %d webhook events, got %d", count, len(s.events))
	}
	out := make([]domain.TransitionEvent, len(s.events))
	copy(out, s.events)
	return out
}

// TestIntegration_OrderLifecycle runs an order from creation to
// completion through the HTTP API and checks that every status change
// reaches the webhook sink.
func TestIntegration_OrderLifecycle(t *testing.T) {
	sink := &webhookSink{}
	sinkServer := httptest.NewServer(http.HandlerFunc(sink.handler))
	defer sinkServer.Close()

	logger := zap.NewNop()
	metrics := observability.NewMetrics()

	stores := memory.NewStores()
	if err := stores.Seed(context.Background()); err != nil {
		t.Fatalf("seeding stores: %v", err)
	}

	// One delivery at a time keeps event order deterministic.
	retry := resilience.Config{MaxRetries: 2, InitialBackoff: 10 * time.Millisecond, MaxConcurrency: 1}
	notifier := notify.NewWebhook(sinkServer.URL, 5*time.Second, retry, logger, metrics)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go notifier.Run(ctx)

	publicCache := cache.New[service.PublicProjection](time.Minute)
	svcs := handler.Services{
		Auth:      service.NewAuthService(stores.Users, stores.Tokens, "integration-secret", 15*time.Minute, 7*24*time.Hour, logger),
		Users:     service.NewUserService(stores.Users, logger),
		Employees: service.NewEmployeeService(stores.Employees, logger),
		Catalog:   service.NewCatalogService(stores.Products, stores.Materials, stores.Services, publicCache.Flush, logger),
		Orders:    service.NewOrderService(stores.Orders, stores.Users, notifier, metrics, logger),
		Returns:   service.NewReturnService(stores.Returns, stores.Orders, notifier, metrics, logger),
		Quotes:    service.NewQuoteService(stores.Quotes, notifier, metrics, "http://localhost:8080", logger),
		Workshops: service.NewWorkshopService(stores.Workshops, stores.Users, notifier, metrics, publicCache.Flush, logger),
		Blog:      service.NewBlogService(stores.Blog, publicCache.Flush, logger),
		Public:    service.NewPublicService(stores.Products, stores.Workshops, stores.Blog, publicCache, metrics),
		Counts:    stores.Counts,
	}
	api := httptest.NewServer(handler.NewRouter(svcs, metrics, logger))
	defer api.Close()

	token := login(t, api.URL)

	// Create a fresh order for the seeded client.
	order := postJSON[domain.Order](t, api.URL+"/v1/orders", token, map[string]any{
		"userId": 2,
		"items": []map[string]any{
			{"productId": 2, "name": "Colgante para plantas", "quantity": 2, "unitPrice": 45000},
		},
		"notes": "entrega en tienda",
	}, http.StatusCreated)
	if order.Total != 90000 {
		t.Fatalf("expected total 90000, got %v", order.Total)
	}

	base := api.URL + "/v1/orders/" + strconv.Itoa(order.ID)
	postJSON[domain.Order](t, base+"/confirm", token, nil, http.StatusOK)
	postJSON[domain.Order](t, base+"/start", token, nil, http.StatusOK)
	completed := postJSON[domain.Order](t, base+"/complete", token, nil, http.StatusOK)
	if completed.Status != domain.OrderCompleted {
		t.Fatalf("expected Completado, got %s", completed.Status)
	}
	if completed.CompletedAt == nil {
		t.Fatal("expected completedAt to be set")
	}

	events := sink.waitFor(t, 3)
	wantTo := []string{"Confirmado", "En Proceso", "Completado"}
	for i, want := range wantTo {
		if events[i].To != want {
			t.Errorf("event %d: expected transition to %s, got %s", i, want, events[i].To)
		}
		if events[i].Entity != "order" || events[i].Number != completed.Number {
			t.Errorf("event %d carries wrong identity: %+v", i, events[i])
		}
	}

	// A completed order can open a return, and its workflow also
	// reaches the sink.
	ret := postJSON[domain.Return](t, api.URL+"/v1/returns", token, map[string]any{
		"orderId": order.ID,
		"items":   []map[string]any{{"productId": 2, "quantity": 1}},
		"reason":  map[string]any{"category": "Defecto", "description": "llegó con un hilo suelto"},
	}, http.StatusCreated)
	if ret.Amount != 45000 {
		t.Fatalf("expected refund amount 45000, got %v", ret.Amount)
	}

	postJSON[domain.Return](t, api.URL+"/v1/returns/"+strconv.Itoa(ret.ID)+"/approve", token, nil, http.StatusOK)
	events = sink.waitFor(t, 4)
	last := events[len(events)-1]
	if last.Entity != "return" || last.To != "Aprobada" {
		t.Errorf("expected return approval event, got %+v", last)
	}
}

func login(t *testing.T, baseURL string) string {
	t.Helper()
	resp := postJSON[domain.AuthResponse](t, baseURL+"/v1/auth/login", "", map[string]string{
		"email": "admin@nudostudio.co", "password": "admin123",
	}, http.StatusOK)
	return resp.Tokens.AccessToken
}

func postJSON[T any](t *testing.T, url, token string, body any, wantStatus int) T {
	t.Helper()
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			t.Fatalf("marshaling body: %v", err)
		}
	}
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("building request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	defer resp.Body.Close()

	var out T
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil && wantStatus < 300 {
		t.Fatalf("decoding response from %s: %v", url, err)
	}
	if resp.StatusCode != wantStatus {
		t.Fatalf("POST %s: expected %d, got %d", url, wantStatus, resp.StatusCode)
	}
	return out
}

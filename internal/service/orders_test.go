package service_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Isabellaariza/Nudo-Studio-sub001/internal/domain"
	"github.com/Isabellaariza/Nudo-Studio-sub001/internal/infra/observability"
	"github.com/Isabellaariza/Nudo-Studio-sub001/internal/service"
	"github.com/Isabellaariza/Nudo-Studio-sub001/internal/store/memory"
)

// captureNotifier records published events for assertions.
type captureNotifier struct {
	mu     sync.Mutex
	events []domain.TransitionEvent
}

func (n *captureNotifier) Publish(event domain.TransitionEvent) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
}

func (n *captureNotifier) all() []domain.TransitionEvent {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]domain.TransitionEvent, len(n.events))
	copy(out, n.events)
	return out
}

func newOrderFixture(t *testing.T) (*service.OrderService, *memory.Stores, *captureNotifier) {
	t.Helper()
	stores := memory.NewStores()
	_, err := stores.Users.Create(context.Background(), domain.User{
		Name: "Ana García", Email: "ana@example.com", Role: domain.RoleClient, Active: true,
		Document: domain.UserDocument{Type: "CC", Number: "1020456789"},
	})
	require.NoError(t, err)

	notifier := &captureNotifier{}
	svc := service.NewOrderService(stores.Orders, stores.Users, notifier, observability.NewMetrics(), zap.NewNop())
	return svc, stores, notifier
}

func TestOrderCreateComputesTotalsAndSnapshot(t *testing.T) {
	ctx := context.Background()
	svc, stores, _ := newOrderFixture(t)

	order, err := svc.Create(ctx, 1, []domain.OrderItem{
		{ProductID: 1, Name: "Colgante", Quantity: 2, UnitPrice: 45000},
		{ProductID: 2, Name: "Tapiz", Quantity: 1, UnitPrice: 120000},
	}, "Nequi", "entrega rápida")
	require.NoError(t, err)

	assert.Equal(t, domain.OrderPending, order.Status)
	assert.Equal(t, float64(210000), order.Total)
	assert.Equal(t, "Ana García", order.Customer.Name)
	assert.Equal(t, "CC 1020456789", order.Customer.Document)
	assert.Equal(t, "Nequi", order.PaymentMethod)
	assert.Regexp(t, `^ORD-\d{4}-001$`, order.Number)

	user, err := stores.Users.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, user.OrdersCount)
}

func TestOrderConfirmSetsTimestampAndEmitsEvent(t *testing.T) {
	ctx := context.Background()
	svc, _, notifier := newOrderFixture(t)

	order, err := svc.Create(ctx, 1, []domain.OrderItem{
		{ProductID: 1, Quantity: 1, UnitPrice: 45000},
	}, "", "")
	require.NoError(t, err)

	confirmed, err := svc.Confirm(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderConfirmed, confirmed.Status)
	require.NotNil(t, confirmed.ConfirmedAt)

	events := notifier.all()
	require.Len(t, events, 1)
	assert.Equal(t, "order", events[0].Entity)
	assert.Equal(t, "Pendiente", events[0].From)
	assert.Equal(t, "Confirmado", events[0].To)
	assert.NotEmpty(t, events[0].EventID)
}

func TestOrderRejectAfterConfirmIsInvalid(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newOrderFixture(t)

	order, err := svc.Create(ctx, 1, []domain.OrderItem{
		{ProductID: 1, Quantity: 1, UnitPrice: 45000},
	}, "", "")
	require.NoError(t, err)

	_, err = svc.Confirm(ctx, order.ID)
	require.NoError(t, err)

	_, err = svc.Reject(ctx, order.ID, "ya no")
	var invalid *domain.ErrInvalidTransition
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "Confirmado", invalid.From)
	assert.Equal(t, "Rechazado", invalid.To)

	// The stored order is untouched.
	got, err := svc.Get(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderConfirmed, got.Status)
	assert.Empty(t, got.RejectionReason)
}

func TestOrderRejectDefaultsReason(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newOrderFixture(t)

	order, err := svc.Create(ctx, 1, []domain.OrderItem{
		{ProductID: 1, Quantity: 1, UnitPrice: 45000},
	}, "", "")
	require.NoError(t, err)

	rejected, err := svc.Reject(ctx, order.ID, "")
	require.NoError(t, err)
	assert.Equal(t, domain.OrderRejected, rejected.Status)
	assert.Equal(t, service.DefaultRejectionReason, rejected.RejectionReason)
}

func TestOrderFullLifecycle(t *testing.T) {
	ctx := context.Background()
	svc, _, notifier := newOrderFixture(t)

	order, err := svc.Create(ctx, 1, []domain.OrderItem{
		{ProductID: 1, Quantity: 3, UnitPrice: 35000},
	}, "", "")
	require.NoError(t, err)

	_, err = svc.Confirm(ctx, order.ID)
	require.NoError(t, err)
	_, err = svc.StartProcess(ctx, order.ID)
	require.NoError(t, err)
	done, err := svc.Complete(ctx, order.ID)
	require.NoError(t, err)

	assert.Equal(t, domain.OrderCompleted, done.Status)
	require.NotNil(t, done.CompletedAt)
	assert.Len(t, notifier.all(), 3)

	// Terminal: nothing further is allowed.
	_, err = svc.StartProcess(ctx, order.ID)
	var invalid *domain.ErrInvalidTransition
	assert.ErrorAs(t, err, &invalid)
}

func TestOrderUpdateRecomputesTotalAndPreservesWorkflow(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newOrderFixture(t)

	order, err := svc.Create(ctx, 1, []domain.OrderItem{
		{ProductID: 1, Name: "Kit", Quantity: 3, UnitPrice: 35000},
	}, "", "")
	require.NoError(t, err)
	require.Equal(t, float64(105000), order.Total)

	edited := order
	edited.Items = []domain.OrderItem{{ProductID: 1, Name: "Kit", Quantity: 2, UnitPrice: 35000}}
	edited.Status = domain.OrderCompleted // must be ignored
	edited.Number = "ORD-FAKE"            // must be ignored

	updated, err := svc.Update(ctx, edited)
	require.NoError(t, err)
	assert.Equal(t, float64(70000), updated.Total)
	assert.Equal(t, domain.OrderPending, updated.Status)
	assert.Equal(t, order.Number, updated.Number)
}

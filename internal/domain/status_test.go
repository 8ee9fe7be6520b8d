package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Isabellaariza/Nudo-Studio-sub001/internal/domain"
)

func TestOrderStatusTransitions(t *testing.T) {
	assert.True(t, domain.OrderPending.CanTransition(domain.OrderConfirmed))
	assert.True(t, domain.OrderPending.CanTransition(domain.OrderRejected))
	assert.True(t, domain.OrderConfirmed.CanTransition(domain.OrderInProcess))
	assert.True(t, domain.OrderInProcess.CanTransition(domain.OrderCompleted))

	// No skipping steps, no going back.
	assert.False(t, domain.OrderPending.CanTransition(domain.OrderCompleted))
	assert.False(t, domain.OrderConfirmed.CanTransition(domain.OrderPending))
	assert.False(t, domain.OrderConfirmed.CanTransition(domain.OrderRejected))
}

func TestOrderStatusTerminal(t *testing.T) {
	assert.True(t, domain.OrderCompleted.Terminal())
	assert.True(t, domain.OrderRejected.Terminal())
	assert.False(t, domain.OrderPending.Terminal())

	for _, next := range []domain.OrderStatus{
		domain.OrderPending, domain.OrderConfirmed, domain.OrderRejected,
		domain.OrderInProcess, domain.OrderCompleted,
	} {
		assert.False(t, domain.OrderCompleted.CanTransition(next),
			"terminal status must have no outgoing transition to %s", next)
	}
}

func TestReturnStatusTransitions(t *testing.T) {
	assert.True(t, domain.ReturnPending.CanTransition(domain.ReturnApproved))
	assert.True(t, domain.ReturnApproved.CanTransition(domain.ReturnProcessed))
	assert.True(t, domain.ReturnApproved.CanTransition(domain.ReturnRefunded))

	assert.False(t, domain.ReturnPending.CanTransition(domain.ReturnRefunded))
	assert.False(t, domain.ReturnProcessed.CanTransition(domain.ReturnRefunded))
	assert.False(t, domain.ReturnRejected.CanTransition(domain.ReturnApproved))
	assert.True(t, domain.ReturnRejected.Terminal())
	assert.True(t, domain.ReturnProcessed.Terminal())
	assert.True(t, domain.ReturnRefunded.Terminal())
}

func TestQuoteStatusTransitions(t *testing.T) {
	assert.True(t, domain.QuotePending.CanTransition(domain.QuoteQuoted))
	assert.True(t, domain.QuotePending.CanTransition(domain.QuoteRejected))
	assert.True(t, domain.QuotePending.CanTransition(domain.QuoteExpired))
	assert.True(t, domain.QuoteQuoted.CanTransition(domain.QuoteApproved))
	assert.True(t, domain.QuoteQuoted.CanTransition(domain.QuoteRejected))
	assert.True(t, domain.QuoteQuoted.CanTransition(domain.QuoteExpired))

	assert.False(t, domain.QuotePending.CanTransition(domain.QuoteApproved))
	assert.False(t, domain.QuoteApproved.CanTransition(domain.QuoteExpired))
	assert.True(t, domain.QuoteExpired.Terminal())
}

func TestWorkshopStatusTransitions(t *testing.T) {
	assert.True(t, domain.WorkshopScheduled.CanTransition(domain.WorkshopInProgress))
	assert.True(t, domain.WorkshopScheduled.CanTransition(domain.WorkshopCancelled))
	assert.True(t, domain.WorkshopInProgress.CanTransition(domain.WorkshopCompleted))
	assert.True(t, domain.WorkshopInProgress.CanTransition(domain.WorkshopCancelled))

	assert.False(t, domain.WorkshopScheduled.CanTransition(domain.WorkshopCompleted))
	assert.False(t, domain.WorkshopCancelled.CanTransition(domain.WorkshopScheduled))
	assert.True(t, domain.WorkshopCompleted.Terminal())
}

func TestStatusValid(t *testing.T) {
	assert.True(t, domain.OrderStatus("Pendiente").Valid())
	assert.False(t, domain.OrderStatus("pendiente").Valid())
	assert.False(t, domain.QuoteStatus("Enviada").Valid())
	assert.True(t, domain.WorkshopStatus("En progreso").Valid())
}

func TestOrderComputeTotal(t *testing.T) {
	order := domain.Order{
		Items: []domain.OrderItem{
			{ProductID: 1, Quantity: 2, UnitPrice: 45000},
			{ProductID: 2, Quantity: 1, UnitPrice: 120000},
		},
	}
	order.ComputeTotal()

	assert.Equal(t, float64(90000), order.Items[0].Subtotal)
	assert.Equal(t, float64(210000), order.Total)
}

func TestOrderCloneIsDeep(t *testing.T) {
	order := domain.Order{
		Items: []domain.OrderItem{{ProductID: 1, Quantity: 1, UnitPrice: 100}},
	}
	clone := order.Clone()
	clone.Items[0].Quantity = 99

	assert.Equal(t, 1, order.Items[0].Quantity, "editing a clone must not touch the original")
}

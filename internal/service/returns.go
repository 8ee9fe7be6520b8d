package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Isabellaariza/Nudo-Studio-sub001/internal/domain"
	"github.com/Isabellaariza/Nudo-Studio-sub001/internal/infra/observability"
	"github.com/Isabellaariza/Nudo-Studio-sub001/internal/port"
)

// ReturnService runs the return and refund workflow.
type ReturnService struct {
	store    port.ReturnStore
	orders   port.OrderStore
	notifier port.Notifier
	metrics  *observability.Metrics
	logger   *zap.Logger
}

func NewReturnService(store port.ReturnStore, orders port.OrderStore, notifier port.Notifier, metrics *observability.Metrics, logger *zap.Logger) *ReturnService {
	return &ReturnService{
		store:    store,
		orders:   orders,
		notifier: notifier,
		metrics:  metrics,
		logger:   logger,
	}
}

func (s *ReturnService) List(ctx context.Context) ([]domain.Return, error) {
	return s.store.List(ctx)
}

func (s *ReturnService) Get(ctx context.Context, id int) (domain.Return, error) {
	return s.store.Get(ctx, id)
}

// CreateFromOrder opens a return request against a completed order.
// The order must have completed within the return window, and only
// items on the order can be returned, up to the ordered quantity.
func (s *ReturnService) CreateFromOrder(ctx context.Context, orderID int, items []domain.ReturnItem, reason domain.ReturnReason) (domain.Return, error) {
	if reason.Description == "" {
		return domain.Return{}, &domain.ErrValidation{Field: "reason.description", Message: "required"}
	}
	if len(items) == 0 {
		return domain.Return{}, &domain.ErrValidation{Field: "items", Message: "at least one item required"}
	}

	order, err := s.orders.Get(ctx, orderID)
	if err != nil {
		return domain.Return{}, err
	}
	if order.Status != domain.OrderCompleted {
		return domain.Return{}, &domain.ErrValidation{Field: "orderId", Message: "only completed orders can be returned"}
	}
	if order.CompletedAt == nil || time.Since(*order.CompletedAt) > domain.ReturnWindowDays*24*time.Hour {
		return domain.Return{}, &domain.ErrReturnWindowClosed{OrderNumber: order.Number, Days: domain.ReturnWindowDays}
	}
	daysLeft := domain.ReturnWindowDays - int(time.Since(*order.CompletedAt).Hours()/24)

	var amount float64
	for i, it := range items {
		ordered, ok := findOrderItem(order, it.ProductID)
		if !ok {
			return domain.Return{}, &domain.ErrValidation{
				Field:   fmt.Sprintf("items[%d].productId", i),
				Message: "product is not on the order",
			}
		}
		if it.Quantity <= 0 || it.Quantity > ordered.Quantity {
			return domain.Return{}, &domain.ErrValidation{
				Field:   fmt.Sprintf("items[%d].quantity", i),
				Message: "exceeds ordered quantity",
			}
		}
		items[i].Name = ordered.Name
		items[i].UnitPrice = ordered.UnitPrice
		amount += float64(it.Quantity) * ordered.UnitPrice
	}

	ret := domain.Return{
		Number:         s.store.NextNumber(),
		OrderID:        order.ID,
		OrderNumber:    order.Number,
		Customer:       order.Customer,
		Items:          items,
		Reason:         reason,
		Amount:         amount,
		Status:         domain.ReturnPending,
		WindowDaysLeft: daysLeft,
		RequestedAt:    time.Now(),
	}
	created, err := s.store.Create(ctx, ret)
	if err != nil {
		return domain.Return{}, fmt.Errorf("creating return: %w", err)
	}
	s.logger.Info("return requested",
		zap.String("number", created.Number),
		zap.String("order", created.OrderNumber),
		zap.Float64("amount", created.Amount),
	)
	return created, nil
}

func (s *ReturnService) Delete(ctx context.Context, id int) error {
	return s.store.Delete(ctx, id)
}

// Approve moves a pending return to Aprobada.
func (s *ReturnService) Approve(ctx context.Context, id int) (domain.Return, error) {
	return s.transition(ctx, id, domain.ReturnApproved, func(r *domain.Return, now time.Time) {
		r.ResolvedAt = &now
	})
}

// Reject moves a pending return to Rechazada, recording a reason.
func (s *ReturnService) Reject(ctx context.Context, id int, reason string) (domain.Return, error) {
	if reason == "" {
		reason = DefaultRejectionReason
	}
	return s.transition(ctx, id, domain.ReturnRejected, func(r *domain.Return, now time.Time) {
		r.RejectionReason = reason
		r.ResolvedAt = &now
	})
}

// Process moves an approved return to Procesada.
func (s *ReturnService) Process(ctx context.Context, id int) (domain.Return, error) {
	return s.transition(ctx, id, domain.ReturnProcessed, nil)
}

// DefaultRefundMethod is recorded when a refund is issued without an
// explicit payment method.
const DefaultRefundMethod = "Transferencia bancaria"

// Refund moves an approved return to Reembolsada and records how the
// money went back.
func (s *ReturnService) Refund(ctx context.Context, id int, method string) (domain.Return, error) {
	if method == "" {
		method = DefaultRefundMethod
	}
	return s.transition(ctx, id, domain.ReturnRefunded, func(r *domain.Return, now time.Time) {
		r.RefundMethod = method
		r.RefundedAt = &now
	})
}

func (s *ReturnService) transition(ctx context.Context, id int, to domain.ReturnStatus, apply func(*domain.Return, time.Time)) (domain.Return, error) {
	ret, err := s.store.Get(ctx, id)
	if err != nil {
		return domain.Return{}, err
	}
	from := ret.Status
	if !from.CanTransition(to) {
		return domain.Return{}, &domain.ErrInvalidTransition{
			Entity: "return", ID: strconv.Itoa(id),
			From: string(from), To: string(to),
		}
	}

	now := time.Now()
	ret.Status = to
	if apply != nil {
		apply(&ret, now)
	}

	updated, err := s.store.Update(ctx, ret)
	if err != nil {
		return domain.Return{}, fmt.Errorf("applying return transition: %w", err)
	}

	s.metrics.RecordTransition("return", string(from), string(to))
	s.notifier.Publish(domain.TransitionEvent{
		EventID: uuid.NewString(),
		Entity:  "return",
		ID:      updated.ID,
		Number:  updated.Number,
		From:    string(from),
		To:      string(to),
		At:      now,
	})
	s.logger.Info("return transition",
		zap.String("number", updated.Number),
		zap.String("from", string(from)),
		zap.String("to", string(to)),
	)
	return updated, nil
}

func findOrderItem(order domain.Order, productID int) (domain.OrderItem, bool) {
	for _, it := range order.Items {
		if it.ProductID == productID {
			return it, true
		}
	}
	return domain.OrderItem{}, false
}

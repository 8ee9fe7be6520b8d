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

// DefaultRejectionReason is recorded when an order is rejected without
// an explicit reason.
const DefaultRejectionReason = "Rechazado por el administrador"

// OrderService runs the order fulfilment workflow.
type OrderService struct {
	store    port.OrderStore
	users    port.UserStore
	notifier port.Notifier
	metrics  *observability.Metrics
	logger   *zap.Logger
}

func NewOrderService(store port.OrderStore, users port.UserStore, notifier port.Notifier, metrics *observability.Metrics, logger *zap.Logger) *OrderService {
	return &OrderService{
		store:    store,
		users:    users,
		notifier: notifier,
		metrics:  metrics,
		logger:   logger,
	}
}

func (s *OrderService) List(ctx context.Context) ([]domain.Order, error) {
	return s.store.List(ctx)
}

func (s *OrderService) Get(ctx context.Context, id int) (domain.Order, error) {
	return s.store.Get(ctx, id)
}

// Create opens a new pending order for a registered customer. The
// customer's contact data is frozen into the order and totals are
// computed from the items.
func (s *OrderService) Create(ctx context.Context, userID int, items []domain.OrderItem, paymentMethod, notes string) (domain.Order, error) {
	if len(items) == 0 {
		return domain.Order{}, &domain.ErrValidation{Field: "items", Message: "at least one item required"}
	}
	for i, it := range items {
		if it.Quantity <= 0 {
			return domain.Order{}, &domain.ErrValidation{Field: fmt.Sprintf("items[%d].quantity", i), Message: "must be positive"}
		}
		if it.UnitPrice < 0 {
			return domain.Order{}, &domain.ErrValidation{Field: fmt.Sprintf("items[%d].unitPrice", i), Message: "must not be negative"}
		}
	}

	user, err := s.users.Get(ctx, userID)
	if err != nil {
		return domain.Order{}, err
	}

	order := domain.Order{
		Number: s.store.NextNumber(),
		Customer: domain.CustomerSnapshot{
			UserID:   user.ID,
			Name:     user.Name,
			Document: user.Document.String(),
			Email:    user.Email,
			Phone:    user.Phone,
			Address:  user.Address,
		},
		Items:         items,
		Status:        domain.OrderPending,
		Notes:         notes,
		PaymentMethod: paymentMethod,
		CreatedAt:     time.Now(),
	}
	order.ComputeTotal()

	created, err := s.store.Create(ctx, order)
	if err != nil {
		return domain.Order{}, fmt.Errorf("creating order: %w", err)
	}

	user.OrdersCount++
	if _, err := s.users.Update(ctx, user); err != nil {
		s.logger.Error("incrementing orders count", zap.Int("user_id", user.ID), zap.Error(err))
	}

	s.metrics.SetEntityCount("order", len(mustList(ctx, s.store)))
	s.logger.Info("order created",
		zap.String("number", created.Number),
		zap.Float64("total", created.Total),
	)
	return created, nil
}

// Update replaces the editable fields of a pending order. Status,
// number and timestamps are preserved; totals are recomputed.
func (s *OrderService) Update(ctx context.Context, order domain.Order) (domain.Order, error) {
	current, err := s.store.Get(ctx, order.ID)
	if err != nil {
		return domain.Order{}, err
	}
	if current.Status.Terminal() {
		return domain.Order{}, &domain.ErrValidation{Field: "status", Message: "order is already closed"}
	}
	if len(order.Items) == 0 {
		return domain.Order{}, &domain.ErrValidation{Field: "items", Message: "at least one item required"}
	}

	order.Number = current.Number
	order.Customer = current.Customer
	order.Status = current.Status
	order.CreatedAt = current.CreatedAt
	order.ConfirmedAt = current.ConfirmedAt
	order.StartedAt = current.StartedAt
	order.CompletedAt = current.CompletedAt
	order.ComputeTotal()

	return s.store.Update(ctx, order)
}

func (s *OrderService) Delete(ctx context.Context, id int) error {
	return s.store.Delete(ctx, id)
}

// Confirm moves a pending order to Confirmado.
func (s *OrderService) Confirm(ctx context.Context, id int) (domain.Order, error) {
	return s.transition(ctx, id, domain.OrderConfirmed, func(o *domain.Order, now time.Time) {
		o.ConfirmedAt = &now
	})
}

// Reject moves a pending order to Rechazado, recording a reason.
func (s *OrderService) Reject(ctx context.Context, id int, reason string) (domain.Order, error) {
	if reason == "" {
		reason = DefaultRejectionReason
	}
	return s.transition(ctx, id, domain.OrderRejected, func(o *domain.Order, now time.Time) {
		o.RejectionReason = reason
		o.CompletedAt = &now
	})
}

// StartProcess moves a confirmed order to En Proceso.
func (s *OrderService) StartProcess(ctx context.Context, id int) (domain.Order, error) {
	return s.transition(ctx, id, domain.OrderInProcess, func(o *domain.Order, now time.Time) {
		o.StartedAt = &now
	})
}

// Complete moves an in-process order to Completado.
func (s *OrderService) Complete(ctx context.Context, id int) (domain.Order, error) {
	return s.transition(ctx, id, domain.OrderCompleted, func(o *domain.Order, now time.Time) {
		o.CompletedAt = &now
	})
}

func (s *OrderService) transition(ctx context.Context, id int, to domain.OrderStatus, apply func(*domain.Order, time.Time)) (domain.Order, error) {
	order, err := s.store.Get(ctx, id)
	if err != nil {
		return domain.Order{}, err
	}
	from := order.Status
	if !from.CanTransition(to) {
		return domain.Order{}, &domain.ErrInvalidTransition{
			Entity: "order", ID: strconv.Itoa(id),
			From: string(from), To: string(to),
		}
	}

	now := time.Now()
	order.Status = to
	apply(&order, now)

	updated, err := s.store.Update(ctx, order)
	if err != nil {
		return domain.Order{}, fmt.Errorf("applying order transition: %w", err)
	}

	s.metrics.RecordTransition("order", string(from), string(to))
	s.notifier.Publish(domain.TransitionEvent{
		EventID: uuid.NewString(),
		Entity:  "order",
		ID:      updated.ID,
		Number:  updated.Number,
		From:    string(from),
		To:      string(to),
		At:      now,
	})
	s.logger.Info("order transition",
		zap.String("number", updated.Number),
		zap.String("from", string(from)),
		zap.String("to", string(to)),
	)
	return updated, nil
}

func mustList[T any](ctx context.Context, store port.CRUD[T]) []T {
	items, err := store.List(ctx)
	if err != nil {
		return nil
	}
	return items
}

package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/Isabellaariza/Nudo-Studio-sub001/internal/domain"
	"github.com/Isabellaariza/Nudo-Studio-sub001/internal/service"
)

// ============================================================
// Orders (/v1/orders)
// ============================================================

func orderSearchFields(o domain.Order) []string {
	return []string{o.Number, o.Customer.Name, o.Customer.Email, string(o.Status)}
}

func listOrdersHandler(svc *service.OrderService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/orders")
		defer span.End()

		orders, err := svc.List(ctx)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, listResponse(r, orders, orderSearchFields))
	}
}

func getOrderHandler(svc *service.OrderService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/orders/{id}")
		defer span.End()

		id, err := parseID(r, "id")
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		order, err := svc.Get(ctx, id)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, order)
	}
}

func createOrderHandler(svc *service.OrderService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/orders")
		defer span.End()

		var req struct {
			UserID        int                `json:"userId"`
			Items         []domain.OrderItem `json:"items"`
			PaymentMethod string             `json:"paymentMethod,omitempty"`
			Notes         string             `json:"notes,omitempty"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		created, err := svc.Create(ctx, req.UserID, req.Items, req.PaymentMethod, req.Notes)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	}
}

func updateOrderHandler(svc *service.OrderService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "PUT /v1/orders/{id}")
		defer span.End()

		id, err := parseID(r, "id")
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		var order domain.Order
		if err := json.NewDecoder(r.Body).Decode(&order); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		order.ID = id

		updated, err := svc.Update(ctx, order)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, updated)
	}
}

func deleteOrderHandler(svc *service.OrderService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "DELETE /v1/orders/{id}")
		defer span.End()

		id, err := parseID(r, "id")
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		if err := svc.Delete(ctx, id); err != nil {
			handleServiceError(w, err, logger)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// transitionHandler serves the POST /{entity}/{id}/{action} endpoints:
// parse the ID, apply the step, return the updated record.
func transitionHandler[T any](op string, logger *zap.Logger, step func(ctx context.Context, id int) (T, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), op)
		defer span.End()

		id, err := parseID(r, "id")
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		updated, err := step(ctx, id)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, updated)
	}
}

func confirmOrderHandler(svc *service.OrderService, logger *zap.Logger) http.HandlerFunc {
	return transitionHandler("POST /v1/orders/{id}/confirm", logger, svc.Confirm)
}

func rejectOrderHandler(svc *service.OrderService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/orders/{id}/reject")
		defer span.End()

		id, err := parseID(r, "id")
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		var req struct {
			Reason string `json:"reason,omitempty"`
		}
		// Body is optional: an empty reject falls back to the default reason.
		json.NewDecoder(r.Body).Decode(&req)

		updated, err := svc.Reject(ctx, id, req.Reason)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, updated)
	}
}

func startOrderHandler(svc *service.OrderService, logger *zap.Logger) http.HandlerFunc {
	return transitionHandler("POST /v1/orders/{id}/start", logger, svc.StartProcess)
}

func completeOrderHandler(svc *service.OrderService, logger *zap.Logger) http.HandlerFunc {
	return transitionHandler("POST /v1/orders/{id}/complete", logger, svc.Complete)
}

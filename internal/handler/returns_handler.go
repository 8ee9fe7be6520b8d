package handler

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/Isabellaariza/Nudo-Studio-sub001/internal/domain"
	"github.com/Isabellaariza/Nudo-Studio-sub001/internal/service"
)

// ============================================================
// Returns (/v1/returns)
// ============================================================

func returnSearchFields(r domain.Return) []string {
	return []string{r.Number, r.OrderNumber, r.Customer.Name, string(r.Status)}
}

func listReturnsHandler(svc *service.ReturnService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/returns")
		defer span.End()

		returns, err := svc.List(ctx)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, listResponse(r, returns, returnSearchFields))
	}
}

func getReturnHandler(svc *service.ReturnService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/returns/{id}")
		defer span.End()

		id, err := parseID(r, "id")
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		ret, err := svc.Get(ctx, id)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, ret)
	}
}

func createReturnHandler(svc *service.ReturnService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/returns")
		defer span.End()

		var req struct {
			OrderID int                 `json:"orderId"`
			Items   []domain.ReturnItem `json:"items"`
			Reason  domain.ReturnReason `json:"reason"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		created, err := svc.CreateFromOrder(ctx, req.OrderID, req.Items, req.Reason)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	}
}

func deleteReturnHandler(svc *service.ReturnService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "DELETE /v1/returns/{id}")
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

func approveReturnHandler(svc *service.ReturnService, logger *zap.Logger) http.HandlerFunc {
	return transitionHandler("POST /v1/returns/{id}/approve", logger, svc.Approve)
}

func rejectReturnHandler(svc *service.ReturnService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/returns/{id}/reject")
		defer span.End()

		id, err := parseID(r, "id")
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		var req struct {
			Reason string `json:"reason,omitempty"`
		}
		json.NewDecoder(r.Body).Decode(&req)

		updated, err := svc.Reject(ctx, id, req.Reason)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, updated)
	}
}

func processReturnHandler(svc *service.ReturnService, logger *zap.Logger) http.HandlerFunc {
	return transitionHandler("POST /v1/returns/{id}/process", logger, svc.Process)
}

func refundReturnHandler(svc *service.ReturnService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/returns/{id}/refund")
		defer span.End()

		id, err := parseID(r, "id")
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		var req struct {
			Method string `json:"method,omitempty"`
		}
		json.NewDecoder(r.Body).Decode(&req)

		updated, err := svc.Refund(ctx, id, req.Method)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, updated)
	}
}

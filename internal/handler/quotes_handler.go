package handler

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/Isabellaariza/Nudo-Studio-sub001/internal/domain"
	"github.com/Isabellaariza/Nudo-Studio-sub001/internal/service"
)

// ============================================================
// Quotes (/v1/quotes)
// ============================================================

func quoteSearchFields(q domain.Quote) []string {
	return []string{q.Number, q.CustomerName, q.CustomerEmail, q.Description, q.Service, string(q.Status)}
}

func listQuotesHandler(svc *service.QuoteService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/quotes")
		defer span.End()

		quotes, err := svc.List(ctx)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, listResponse(r, quotes, quoteSearchFields))
	}
}

func getQuoteHandler(svc *service.QuoteService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/quotes/{id}")
		defer span.End()

		id, err := parseID(r, "id")
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		quote, err := svc.Get(ctx, id)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, quote)
	}
}

func createQuoteHandler(svc *service.QuoteService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/quotes")
		defer span.End()

		var quote domain.Quote
		if err := json.NewDecoder(r.Body).Decode(&quote); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		created, err := svc.Create(ctx, quote)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	}
}

func updateQuoteHandler(svc *service.QuoteService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "PUT /v1/quotes/{id}")
		defer span.End()

		id, err := parseID(r, "id")
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		var quote domain.Quote
		if err := json.NewDecoder(r.Body).Decode(&quote); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		quote.ID = id

		updated, err := svc.Update(ctx, quote)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, updated)
	}
}

func deleteQuoteHandler(svc *service.QuoteService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "DELETE /v1/quotes/{id}")
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

func priceQuoteHandler(svc *service.QuoteService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/quotes/{id}/price")
		defer span.End()

		id, err := parseID(r, "id")
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		var req struct {
			UnitPrice float64 `json:"unitPrice"`
			Notes     string  `json:"notes,omitempty"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		updated, err := svc.SetPrice(ctx, id, req.UnitPrice, req.Notes)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, updated)
	}
}

func approveQuoteHandler(svc *service.QuoteService, logger *zap.Logger) http.HandlerFunc {
	return transitionHandler("POST /v1/quotes/{id}/approve", logger, svc.Approve)
}

func rejectQuoteHandler(svc *service.QuoteService, logger *zap.Logger) http.HandlerFunc {
	return transitionHandler("POST /v1/quotes/{id}/reject", logger, svc.Reject)
}

func quoteDocumentHandler(svc *service.QuoteService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/quotes/{id}/document")
		defer span.End()

		id, err := parseID(r, "id")
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		doc, err := svc.Document(ctx, id, r.URL.Query().Get("preparedBy"))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write(doc)
	}
}

func expireQuotesHandler(svc *service.QuoteService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/quotes/expire")
		defer span.End()

		expired, err := svc.ExpireSweep(ctx)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"expired": expired})
	}
}

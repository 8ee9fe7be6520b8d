package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/Isabellaariza/Nudo-Studio-sub001/internal/domain"
	"github.com/Isabellaariza/Nudo-Studio-sub001/internal/service"
)

// ============================================================
// Workshops (/v1/workshops)
// ============================================================

func workshopSearchFields(w domain.Workshop) []string {
	return []string{w.Name, w.Instructor, w.Location, string(w.Status)}
}

func listWorkshopsHandler(svc *service.WorkshopService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/workshops")
		defer span.End()

		workshops, err := svc.List(ctx)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, listResponse(r, workshops, workshopSearchFields))
	}
}

func getWorkshopHandler(svc *service.WorkshopService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/workshops/{id}")
		defer span.End()

		id, err := parseID(r, "id")
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		workshop, err := svc.Get(ctx, id)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, workshop)
	}
}

func createWorkshopHandler(svc *service.WorkshopService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/workshops")
		defer span.End()

		var workshop domain.Workshop
		if err := json.NewDecoder(r.Body).Decode(&workshop); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		created, err := svc.Create(ctx, workshop)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	}
}

func updateWorkshopHandler(svc *service.WorkshopService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "PUT /v1/workshops/{id}")
		defer span.End()

		id, err := parseID(r, "id")
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		var workshop domain.Workshop
		if err := json.NewDecoder(r.Body).Decode(&workshop); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		workshop.ID = id

		updated, err := svc.Update(ctx, workshop)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, updated)
	}
}

func deleteWorkshopHandler(svc *service.WorkshopService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "DELETE /v1/workshops/{id}")
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

func toggleWorkshopHandler(svc *service.WorkshopService, logger *zap.Logger) http.HandlerFunc {
	return transitionHandler("POST /v1/workshops/{id}/visibility", logger, svc.ToggleVisible)
}

func startWorkshopHandler(svc *service.WorkshopService, logger *zap.Logger) http.HandlerFunc {
	return transitionHandler("POST /v1/workshops/{id}/start", logger, svc.Start)
}

func completeWorkshopHandler(svc *service.WorkshopService, logger *zap.Logger) http.HandlerFunc {
	return transitionHandler("POST /v1/workshops/{id}/complete", logger, svc.Complete)
}

func cancelWorkshopHandler(svc *service.WorkshopService, logger *zap.Logger) http.HandlerFunc {
	return transitionHandler("POST /v1/workshops/{id}/cancel", logger, svc.Cancel)
}

func enrollHandler(svc *service.WorkshopService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/workshops/{id}/enrollments")
		defer span.End()

		id, err := parseID(r, "id")
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		var req struct {
			UserID int `json:"userId"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		updated, err := svc.Enroll(ctx, id, req.UserID)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusCreated, updated)
	}
}

func unenrollHandler(svc *service.WorkshopService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "DELETE /v1/workshops/{id}/enrollments/{userId}")
		defer span.End()

		id, err := parseID(r, "id")
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		userID, err := parseID(r, "userId")
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		updated, err := svc.Unenroll(ctx, id, userID)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, updated)
	}
}

func exportEnrollmentsHandler(svc *service.WorkshopService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/workshops/{id}/enrollments/export")
		defer span.End()

		id, err := parseID(r, "id")
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		format := r.URL.Query().Get("format")

		data, contentType, err := svc.ExportEnrollments(ctx, id, format)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		ext := "csv"
		if format == "xlsx" {
			ext = "xlsx"
		}
		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="inscripciones-%d.%s"`, id, ext))
		w.WriteHeader(http.StatusOK)
		w.Write(data)
	}
}

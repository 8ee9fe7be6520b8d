package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/Isabellaariza/Nudo-Studio-sub001/internal/domain"
	"github.com/Isabellaariza/Nudo-Studio-sub001/internal/service"
)

// ============================================================
// Blog (/v1/blog)
// ============================================================

func postSearchFields(p domain.BlogPost) []string {
	return []string{p.Title, p.Author, p.Summary, strings.Join(p.Tags, " ")}
}

func listPostsHandler(svc *service.BlogService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/blog")
		defer span.End()

		posts, err := svc.List(ctx)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, listResponse(r, posts, postSearchFields))
	}
}

func getPostHandler(svc *service.BlogService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/blog/{id}")
		defer span.End()

		id, err := parseID(r, "id")
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		post, err := svc.Get(ctx, id)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, post)
	}
}

func createPostHandler(svc *service.BlogService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/blog")
		defer span.End()

		var post domain.BlogPost
		if err := json.NewDecoder(r.Body).Decode(&post); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		created, err := svc.Create(ctx, post)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	}
}

func updatePostHandler(svc *service.BlogService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "PUT /v1/blog/{id}")
		defer span.End()

		id, err := parseID(r, "id")
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		var post domain.BlogPost
		if err := json.NewDecoder(r.Body).Decode(&post); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		post.ID = id

		updated, err := svc.Update(ctx, post)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, updated)
	}
}

func deletePostHandler(svc *service.BlogService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "DELETE /v1/blog/{id}")
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

func publishPostHandler(svc *service.BlogService, logger *zap.Logger) http.HandlerFunc {
	return transitionHandler("POST /v1/blog/{id}/publish", logger, svc.Publish)
}

func unpublishPostHandler(svc *service.BlogService, logger *zap.Logger) http.HandlerFunc {
	return transitionHandler("POST /v1/blog/{id}/unpublish", logger, svc.Unpublish)
}

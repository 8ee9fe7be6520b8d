package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"github.com/Isabellaariza/Nudo-Studio-sub001/internal/domain"
	"github.com/Isabellaariza/Nudo-Studio-sub001/internal/infra/observability"
	"github.com/Isabellaariza/Nudo-Studio-sub001/internal/service"
)

var tracer = otel.Tracer("handler")

// Services bundles everything the router serves.
type Services struct {
	Auth      *service.AuthService
	Users     *service.UserService
	Employees *service.EmployeeService
	Catalog   *service.CatalogService
	Orders    *service.OrderService
	Returns   *service.ReturnService
	Quotes    *service.QuoteService
	Workshops *service.WorkshopService
	Blog      *service.BlogService
	Public    *service.PublicService

	// Counts feeds per-entity store sizes into the health endpoint.
	Counts func() map[string]int

	// PageSize overrides the default list page size when positive.
	PageSize int
}

// NewRouter creates the HTTP router with all routes and middleware.
// Admin routes require a valid token; the storefront endpoints under
// /v1/public and the auth endpoints are open.
func NewRouter(svcs Services, metrics *observability.Metrics, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	// --- Middleware ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(observability.ZapLoggerMiddleware(logger))
	r.Use(observability.MetricsMiddleware(metrics))
	r.Use(observability.TracingMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Heartbeat("/ping"))
	if svcs.PageSize > 0 {
		r.Use(pageSizeMiddleware(svcs.PageSize))
	}

	// --- Operational endpoints ---
	r.Get("/healthz", healthzHandler(svcs.Counts))
	r.Get("/readyz", readyzHandler())
	r.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	// --- API v1 ---
	r.Route("/v1", func(r chi.Router) {

		// Authentication (open)
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authRegisterHandler(svcs.Auth, logger))
			r.Post("/login", authLoginHandler(svcs.Auth, logger))
			r.Post("/refresh", authRefreshHandler(svcs.Auth, logger))

			r.Group(func(r chi.Router) {
				r.Use(JWTAuthMiddleware(svcs.Auth, logger))
				r.Post("/logout", authLogoutHandler(svcs.Auth, logger))
			})
		})

		// Public storefront (open, cached)
		r.Get("/public/storefront", publicStorefrontHandler(svcs.Public, logger))
		r.Get("/public/products", publicSliceHandler(svcs.Public, logger, "products",
			func(p service.PublicProjection) []domain.Product { return p.Products }))
		r.Get("/public/workshops", publicSliceHandler(svcs.Public, logger, "workshops",
			func(p service.PublicProjection) []service.PublicWorkshop { return p.Workshops }))
		r.Get("/public/blog", publicSliceHandler(svcs.Public, logger, "blog",
			func(p service.PublicProjection) []domain.BlogPost { return p.Posts }))

		// Admin panels (token required)
		r.Group(func(r chi.Router) {
			r.Use(JWTAuthMiddleware(svcs.Auth, logger))
			r.Use(RequireRole(logger, domain.RoleAdmin, domain.RoleEmployee))

			// Users & staff
			r.Get("/users", listUsersHandler(svcs.Users, logger))
			r.Post("/users", createUserHandler(svcs.Users, logger))
			r.Get("/users/{id}", getUserHandler(svcs.Users, logger))
			r.Put("/users/{id}", updateUserHandler(svcs.Users, logger))
			r.Delete("/users/{id}", deleteUserHandler(svcs.Users, logger))

			r.Get("/employees", listEmployeesHandler(svcs.Employees, logger))
			r.Post("/employees", createEmployeeHandler(svcs.Employees, logger))
			r.Get("/employees/{id}", getEmployeeHandler(svcs.Employees, logger))
			r.Put("/employees/{id}", updateEmployeeHandler(svcs.Employees, logger))
			r.Delete("/employees/{id}", deleteEmployeeHandler(svcs.Employees, logger))

			// Catalog
			r.Get("/products", listProductsHandler(svcs.Catalog, logger))
			r.Post("/products", createProductHandler(svcs.Catalog, logger))
			r.Get("/products/{id}", getProductHandler(svcs.Catalog, logger))
			r.Put("/products/{id}", updateProductHandler(svcs.Catalog, logger))
			r.Delete("/products/{id}", deleteProductHandler(svcs.Catalog, logger))

			r.Get("/materials", listMaterialsHandler(svcs.Catalog, logger))
			r.Post("/materials", createMaterialHandler(svcs.Catalog, logger))
			r.Get("/materials/{id}", getMaterialHandler(svcs.Catalog, logger))
			r.Put("/materials/{id}", updateMaterialHandler(svcs.Catalog, logger))
			r.Delete("/materials/{id}", deleteMaterialHandler(svcs.Catalog, logger))

			r.Get("/services", listServicesHandler(svcs.Catalog, logger))
			r.Post("/services", createServiceHandler(svcs.Catalog, logger))
			r.Get("/services/{id}", getServiceHandler(svcs.Catalog, logger))
			r.Put("/services/{id}", updateServiceHandler(svcs.Catalog, logger))
			r.Delete("/services/{id}", deleteServiceHandler(svcs.Catalog, logger))

			// Orders
			r.Get("/orders", listOrdersHandler(svcs.Orders, logger))
			r.Post("/orders", createOrderHandler(svcs.Orders, logger))
			r.Get("/orders/{id}", getOrderHandler(svcs.Orders, logger))
			r.Put("/orders/{id}", updateOrderHandler(svcs.Orders, logger))
			r.Delete("/orders/{id}", deleteOrderHandler(svcs.Orders, logger))
			r.Post("/orders/{id}/confirm", confirmOrderHandler(svcs.Orders, logger))
			r.Post("/orders/{id}/reject", rejectOrderHandler(svcs.Orders, logger))
			r.Post("/orders/{id}/start", startOrderHandler(svcs.Orders, logger))
			r.Post("/orders/{id}/complete", completeOrderHandler(svcs.Orders, logger))

			// Returns
			r.Get("/returns", listReturnsHandler(svcs.Returns, logger))
			r.Post("/returns", createReturnHandler(svcs.Returns, logger))
			r.Get("/returns/{id}", getReturnHandler(svcs.Returns, logger))
			r.Delete("/returns/{id}", deleteReturnHandler(svcs.Returns, logger))
			r.Post("/returns/{id}/approve", approveReturnHandler(svcs.Returns, logger))
			r.Post("/returns/{id}/reject", rejectReturnHandler(svcs.Returns, logger))
			r.Post("/returns/{id}/process", processReturnHandler(svcs.Returns, logger))
			r.Post("/returns/{id}/refund", refundReturnHandler(svcs.Returns, logger))

			// Quotes
			r.Get("/quotes", listQuotesHandler(svcs.Quotes, logger))
			r.Post("/quotes", createQuoteHandler(svcs.Quotes, logger))
			r.Get("/quotes/{id}", getQuoteHandler(svcs.Quotes, logger))
			r.Put("/quotes/{id}", updateQuoteHandler(svcs.Quotes, logger))
			r.Delete("/quotes/{id}", deleteQuoteHandler(svcs.Quotes, logger))
			r.Post("/quotes/{id}/price", priceQuoteHandler(svcs.Quotes, logger))
			r.Post("/quotes/{id}/approve", approveQuoteHandler(svcs.Quotes, logger))
			r.Post("/quotes/{id}/reject", rejectQuoteHandler(svcs.Quotes, logger))
			r.Get("/quotes/{id}/document", quoteDocumentHandler(svcs.Quotes, logger))
			r.Post("/quotes/expire", expireQuotesHandler(svcs.Quotes, logger))

			// Workshops
			r.Get("/workshops", listWorkshopsHandler(svcs.Workshops, logger))
			r.Post("/workshops", createWorkshopHandler(svcs.Workshops, logger))
			r.Get("/workshops/{id}", getWorkshopHandler(svcs.Workshops, logger))
			r.Put("/workshops/{id}", updateWorkshopHandler(svcs.Workshops, logger))
			r.Delete("/workshops/{id}", deleteWorkshopHandler(svcs.Workshops, logger))
			r.Post("/workshops/{id}/visibility", toggleWorkshopHandler(svcs.Workshops, logger))
			r.Post("/workshops/{id}/start", startWorkshopHandler(svcs.Workshops, logger))
			r.Post("/workshops/{id}/complete", completeWorkshopHandler(svcs.Workshops, logger))
			r.Post("/workshops/{id}/cancel", cancelWorkshopHandler(svcs.Workshops, logger))
			r.Post("/workshops/{id}/enrollments", enrollHandler(svcs.Workshops, logger))
			r.Delete("/workshops/{id}/enrollments/{userId}", unenrollHandler(svcs.Workshops, logger))
			r.Get("/workshops/{id}/enrollments/export", exportEnrollmentsHandler(svcs.Workshops, logger))

			// Blog
			r.Get("/blog", listPostsHandler(svcs.Blog, logger))
			r.Post("/blog", createPostHandler(svcs.Blog, logger))
			r.Get("/blog/{id}", getPostHandler(svcs.Blog, logger))
			r.Put("/blog/{id}", updatePostHandler(svcs.Blog, logger))
			r.Delete("/blog/{id}", deletePostHandler(svcs.Blog, logger))
			r.Post("/blog/{id}/publish", publishPostHandler(svcs.Blog, logger))
			r.Post("/blog/{id}/unpublish", unpublishPostHandler(svcs.Blog, logger))

			// Metrics snapshot
			r.Get("/metrics/workflows", workflowMetricsHandler(metrics))
		})
	})

	return r
}

func healthzHandler(counts func() map[string]int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := domain.HealthStatus{
			Status:    "healthy",
			Timestamp: time.Now(),
		}
		if counts != nil {
			status.Entities = counts()
		}
		writeJSON(w, http.StatusOK, status)
	}
}

func readyzHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, domain.HealthStatus{
			Status:    "ready",
			Timestamp: time.Now(),
		})
	}
}

func workflowMetricsHandler(metrics *observability.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, metrics.WorkflowSnapshot())
	}
}

func publicStorefrontHandler(svc *service.PublicService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/public/storefront")
		defer span.End()

		projection, err := svc.Projection(ctx)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, projection)
	}
}

// publicSliceHandler serves one slice of the cached storefront
// projection: products, workshops or blog posts.
func publicSliceHandler[T any](svc *service.PublicService, logger *zap.Logger, name string, pick func(service.PublicProjection) []T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/public/"+name)
		defer span.End()

		projection, err := svc.Projection(ctx)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, pick(projection))
	}
}

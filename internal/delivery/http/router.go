package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/Pesokrava/ratingfy/internal/config"
	"github.com/Pesokrava/ratingfy/internal/delivery/http/handler"
	"github.com/Pesokrava/ratingfy/internal/delivery/http/middleware"
	"github.com/Pesokrava/ratingfy/internal/delivery/http/response"
	"github.com/Pesokrava/ratingfy/internal/pkg/logger"
)

// Router holds HTTP handlers and router configuration
type Router struct {
	storefrontHandler *handler.StorefrontHandler
	reviewHandler     *handler.ReviewHandler
	accountHandler    *handler.AccountHandler
	uploadDir         string
	logger            *logger.Logger
	cfg               *config.Config
}

// NewRouter creates a new HTTP router. uploadDir is served under /uploads
// when non-empty.
func NewRouter(
	storefrontHandler *handler.StorefrontHandler,
	reviewHandler *handler.ReviewHandler,
	accountHandler *handler.AccountHandler,
	uploadDir string,
	cfg *config.Config,
	log *logger.Logger,
) *Router {
	return &Router{
		storefrontHandler: storefrontHandler,
		reviewHandler:     reviewHandler,
		accountHandler:    accountHandler,
		uploadDir:         uploadDir,
		logger:            log,
		cfg:               cfg,
	}
}

// Setup configures and returns the HTTP router
func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(rt.logger))
	r.Use(middleware.Logger(rt.logger))
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   rt.cfg.Server.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", rt.healthCheck)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	if rt.uploadDir != "" {
		r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(rt.uploadDir))))
	}

	r.Route("/api/v1", func(r chi.Router) {
		if rt.cfg.Server.RequestTimeout > 0 {
			r.Use(chimw.Timeout(rt.cfg.Server.RequestTimeout))
		}

		r.Route("/storefront", func(r chi.Router) {
			r.Post("/reviews", rt.storefrontHandler.Submit)
			r.Get("/reviews", rt.storefrontHandler.Reviews)
			r.Get("/status", rt.storefrontHandler.Status)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.Session(rt.cfg.Shopify.APIKey, rt.cfg.Shopify.APISecret, rt.logger))

			r.Route("/reviews", func(r chi.Router) {
				r.Get("/", rt.reviewHandler.List)
				r.Post("/", rt.reviewHandler.Insert)
				r.Post("/{id}", rt.reviewHandler.Update)
				r.Put("/{id}", rt.reviewHandler.Update)
				r.Delete("/{id}", rt.reviewHandler.Delete)
			})

			r.Route("/account", func(r chi.Router) {
				r.Get("/", rt.accountHandler.Get)
				r.Post("/", rt.accountHandler.Create)
				r.Put("/", rt.accountHandler.Edit)
				r.Delete("/", rt.accountHandler.Delete)
			})

			r.Get("/settings", rt.accountHandler.Settings)
			r.Put("/settings", rt.accountHandler.UpdateSettings)
		})
	})

	return r
}

// healthCheck handles health check requests
func (rt *Router) healthCheck(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
	})
}

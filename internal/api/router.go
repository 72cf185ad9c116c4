package api

import (
	"net/http"

	"github.com/dom/product-catalog-api/internal/api/handlers"
	"github.com/dom/product-catalog-api/internal/api/middleware"
	"github.com/dom/product-catalog-api/internal/config"
	"github.com/dom/product-catalog-api/internal/service"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

func NewRouter(services *service.Services, cfg *config.Config, log *zap.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.Recoverer)
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.CORS)

	// Health check
	r.Get("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	// Initialize handlers
	userHandler := handlers.NewUserHandler(services.User, log)
	sessionHandler := handlers.NewSessionHandler(services.Auth, log)
	productHandler := handlers.NewProductHandler(services.Product, log)

	r.Route("/api", func(r chi.Router) {
		// Every /api request runs through Authenticate; requests without
		// a usable token proceed anonymously and are stopped by
		// RequireUser on protected routes only.
		r.Use(middleware.Authenticate(services.Auth, cfg))

		r.Post("/users", userHandler.Create)
		r.Post("/sessions", sessionHandler.Create)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireUser)
			r.Get("/sessions", sessionHandler.Get)
			r.Delete("/sessions", sessionHandler.Delete)
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/{productId}", productHandler.Get)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireUser)
				r.Post("/", productHandler.Create)
				r.Put("/{productId}", productHandler.Update)
				r.Delete("/{productId}", productHandler.Delete)
			})
		})
	})

	return r
}

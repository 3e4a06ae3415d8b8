package httpserver

import (
	"net/http"
	"time"

	"mooney-app-go/internal/config"
	"mooney-app-go/internal/transport/httpserver/handler"
	authmw "mooney-app-go/internal/transport/httpserver/middleware"
	"mooney-app-go/pkg/logger"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

func NewRouter(cfg config.Config, handlers *handler.Handlers, log logger.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(authmw.NewCORS([]string{cfg.AllowedOrigin}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handlers.Health)

		auth := authmw.NewAuth(cfg.Auth, log)
		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware)

			r.Get("/subscriptions", handlers.ListSubscriptions)
			r.Get("/subscriptions/pending", handlers.PendingPayments)
			r.Get("/subscriptions/completed", handlers.CompletedPayments)
			r.Post("/subscriptions", handlers.CreateSubscription)
			r.Put("/subscriptions/{id}", handlers.UpdateSubscription)
			r.Delete("/subscriptions/{id}", handlers.DeleteSubscription)
			r.Post("/subscriptions/{id}/complete", handlers.CompletePayment)

			r.Get("/categories", handlers.ListCategories)
			r.Post("/categories", handlers.CreateCategory)
			r.Patch("/categories/{id}", handlers.UpdateCategory)
			r.Delete("/categories/{id}", handlers.DeleteCategory)
		})
	})

	return r
}

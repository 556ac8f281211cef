package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"cehpoint/site_backend/internal/app/config"
	"cehpoint/site_backend/internal/app/http/handlers"
	"cehpoint/site_backend/internal/app/http/middleware"
)

func NewRouter(cfg config.Config, deps handlers.Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(middleware.Logging)
	r.Use(middleware.CORS(cfg.CORSAllowOrigin))

	r.NotFound(handlers.NotFound)
	r.MethodNotAllowed(handlers.MethodNotAllowed)

	h := handlers.New(cfg, deps)

	r.Get("/health", h.Health)

	r.Route("/api", func(r chi.Router) {
		r.Post("/quotation", h.CreateQuotation)
		r.Post("/quotation/pdf", h.QuotationPDF)
		r.Post("/ai-consultation", h.Consultation)

		r.Group(func(r chi.Router) {
			r.Use(middleware.InternalAuth(cfg.InternalToken))

			r.Get("/quotations/{id}", h.GetQuotation)
		})
	})

	return r
}

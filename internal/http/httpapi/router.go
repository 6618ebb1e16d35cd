package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"plastictrack/internal/http/handlers"
	"plastictrack/internal/middleware"
)

func NewRouter(app *handlers.App, logger zerolog.Logger, allowedOrigins []string) http.Handler {
	r := chi.NewRouter()

	r.Use(
		chimiddleware.RequestID,
		chimiddleware.RealIP,
		chimiddleware.Recoverer,
		middleware.Logger(logger),
		middleware.CORS(allowedOrigins),
	)

	r.Route("/api", func(r chi.Router) {
		r.Post("/upload", app.Upload)
		r.Get("/summary", app.Summary)
		r.Get("/health", app.Health)
	})

	return r
}

package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrJamesThe3rd/pedidos/internal/http/auth"
	"github.com/MrJamesThe3rd/pedidos/internal/http/export"
	"github.com/MrJamesThe3rd/pedidos/internal/http/importsheet"
	"github.com/MrJamesThe3rd/pedidos/internal/http/order"
	"github.com/MrJamesThe3rd/pedidos/internal/http/settings"
)

type Options struct {
	AllowedOrigins []string
	Timeout        time.Duration
	// Auth is optional; nil leaves the API open.
	Auth *auth.Verifier
}

func New(
	opts Options,
	ordersV1 *order.Handler,
	importV1 *importsheet.Handler,
	exportV1 *export.Handler,
	settingsV1 *settings.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	if opts.Timeout > 0 {
		router.Use(middleware.Timeout(opts.Timeout))
	}

	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(opts.Auth.Middleware)

		r.Route("/orders", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			ordersV1.Routes(r)
		})

		r.Route("/import", importV1.Routes)

		r.Route("/export", exportV1.Routes)

		r.Route("/settings", settingsV1.Routes)
	})

	return router
}

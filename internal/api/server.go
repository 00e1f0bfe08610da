// Copyright (c) 2026 Setrini Inmobiliaria. All rights reserved.

/*
Package api mounts the listing, locality, enquiry, upload and auth handlers
on one chi router and serves it.

Routes:

	GET  /health, /ready, /metrics, /sitemap.xml
	     /api/v1/{properties,localities,contact,auth}
	     /api/v1/admin/{properties,contact-messages,uploads}    editor or admin
	     /api/v1/admin/localities                               admin
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/setrini/inmobiliaria/internal/core/contact"
	"github.com/setrini/inmobiliaria/internal/core/locality"
	"github.com/setrini/inmobiliaria/internal/core/media"
	"github.com/setrini/inmobiliaria/internal/core/property"
	"github.com/setrini/inmobiliaria/internal/platform/config"
	"github.com/setrini/inmobiliaria/internal/platform/constants"
	"github.com/setrini/inmobiliaria/internal/platform/middleware"
	"github.com/setrini/inmobiliaria/internal/platform/sec"
	"github.com/setrini/inmobiliaria/internal/users/auth"
)

// Server owns the listener for the routing tree built by [NewRouter].
type Server struct {
	httpServer *http.Server
	log        *slog.Logger
}

// Handlers are the mounted handler sets. Metrics and Media may be nil.
type Handlers struct {
	Liveness  http.HandlerFunc
	Readiness http.HandlerFunc
	Metrics   http.Handler

	Auth     *auth.Handler
	Property *property.Handler
	Locality *locality.Handler
	Contact  *contact.Handler
	Media    *media.Handler
}

// NewServer builds the router and an [http.Server] on cfg.ServerPort.
// Cancelling context stops the rate limiter sweepers.
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, verifier middleware.TokenVerifier, h Handlers) *Server {
	return &Server{
		log: log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           NewRouter(context, cfg, log, verifier, h),
			ErrorLog:          slog.NewLogLogger(log.Handler(), slog.LevelWarn),
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// NewRouter builds the middleware chain and the routing tree.
func NewRouter(context context.Context, cfg middleware.AppConfig, log *slog.Logger, verifier middleware.TokenVerifier, h Handlers) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.CORS(cfg))
	r.Use(middleware.RateLimit(context, constants.DefaultRateLimitRPS, constants.DefaultRateLimitBurst))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.Authenticate(verifier))
	r.Use(chimw.CleanPath)

	// Public forms share a stricter per-IP budget.
	formLimit := middleware.RateLimit(context, constants.FormRateLimitRPS, constants.FormRateLimitBurst)

	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)
	if h.Metrics != nil {
		r.Handle("/metrics", h.Metrics)
	}
	r.Get("/sitemap.xml", h.Property.Sitemap)

	r.Route("/api/v1", func(api chi.Router) {
		api.Route("/properties", h.Property.RegisterRoutes)
		api.Route("/localities", h.Locality.RegisterRoutes)

		api.Route("/contact", func(form chi.Router) {
			form.Use(formLimit)
			h.Contact.RegisterRoutes(form)
		})

		api.Route("/auth", h.Auth.WithLoginGuard(formLimit).RegisterRoutes)

		api.Route("/admin", func(admin chi.Router) {
			admin.Use(middleware.RequireRole(sec.RoleEditor))

			admin.Route("/properties", h.Property.RegisterAdminRoutes)
			admin.Route("/contact-messages", h.Contact.RegisterAdminRoutes)
			if h.Media != nil {
				admin.Route("/uploads", h.Media.RegisterAdminRoutes)
			}

			admin.Route("/localities", func(localities chi.Router) {
				localities.Use(middleware.RequireRole(sec.RoleAdmin))
				h.Locality.RegisterAdminRoutes(localities)
			})
		})
	})

	return r
}

// ListenAndServe blocks until Shutdown; it then returns [http.ErrServerClosed].
func (s *Server) ListenAndServe() error {
	s.log.Info("server_starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown stops accepting connections and waits up to timeout for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}

package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/crimsondominion/crimson-go/internal/middleware"
	"github.com/crimsondominion/crimson-go/internal/service"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
)

const welcomeMessage = "Welcome to CrimsonDominion API!"

// Services are the business services the router dispatches to.
type Services struct {
	Auth      *service.AuthService
	Users     *service.UserService
	Resources service.Resources
}

// Options are the ambient settings of the router.
type Options struct {
	Logger        *slog.Logger
	Registry      *prometheus.Registry
	CORSOrigins   []string
	AuthRateRPS   float64
	AuthRateBurst int
	// TrustProxyHeaders takes the client address from X-Forwarded-For and
	// X-Real-IP. Only set it behind a proxy that overwrites those headers,
	// since the auth rate limit is keyed on that address.
	TrustProxyHeaders bool
}

// NewRouter builds the HTTP handler. Background work started for the router
// (the rate limiter sweep) stops when ctx is done.
func NewRouter(ctx context.Context, svc Services, opts Options) http.Handler {
	if opts.Registry == nil {
		opts.Registry = prometheus.NewRegistry()
	}
	metrics := middleware.NewMetrics(opts.Registry)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	if opts.TrustProxyHeaders {
		r.Use(chimw.RealIP)
	}
	r.Use(
		middleware.Logger(opts.Logger),
		chimw.Recoverer,
		metrics.Middleware,
		corsHandler(opts.CORSOrigins),
	)

	authHandler := NewAuthHandler(svc.Auth)
	userHandler := NewUserHandler(svc.Users)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"message": welcomeMessage})
	})
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.HandlerFor(opts.Registry, promhttp.HandlerOpts{}))

	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(ctx, opts.AuthRateRPS, opts.AuthRateBurst))
		r.Post("/auth/signup", authHandler.HandleSignup)
		r.Post("/auth/login", authHandler.HandleLogin)
		r.Post("/auth/refresh", authHandler.HandleRefresh)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(svc.Auth))
		r.Get("/auth/me", authHandler.HandleMe)

		r.Route("/users", func(r chi.Router) {
			r.Get("/", userHandler.HandleList)
			r.Get("/{id}", userHandler.HandleGet)
			r.Put("/{id}", userHandler.HandleUpdate)
			r.Delete("/{id}", userHandler.HandleDelete)
		})

		res := svc.Resources
		r.Mount("/planets", NewResourceHandler(res.Planets).Routes())
		r.Mount("/buildings", NewResourceHandler(res.Buildings).Routes())
		r.Mount("/user_buildings", NewResourceHandler(res.UserBuildings).Routes())
		r.Mount("/user_fleets", NewResourceHandler(res.Fleets).Routes())
		r.Mount("/battles", NewResourceHandler(res.Battles).Routes())
	})

	return r
}

func corsHandler(origins []string) func(http.Handler) http.Handler {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions,
		},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}).Handler
}

// internal/handler/router.go
package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/JoshCentner/ShadowMatchPro/internal/auth"
	"github.com/JoshCentner/ShadowMatchPro/internal/config"
	"github.com/JoshCentner/ShadowMatchPro/internal/metrics"
	"github.com/JoshCentner/ShadowMatchPro/internal/middleware"
	"github.com/JoshCentner/ShadowMatchPro/internal/service"
	"github.com/JoshCentner/ShadowMatchPro/internal/storage"
)

// RouterDeps carries everything the HTTP surface needs. Metrics and
// RateLimiter are optional.
type RouterDeps struct {
	Config       *config.Config
	Logger       *slog.Logger
	Store        storage.Store
	Users        *service.UserService
	Lifecycle    *service.LifecycleService
	TokenManager *auth.TokenManager
	Metrics      *metrics.Collector
	Gatherer     prometheus.Gatherer
	RateLimiter  *middleware.RateLimiter
}

// NewRouter builds the full route table and middleware stack.
func NewRouter(deps RouterDeps) chi.Router {
	authHandler := NewAuthHandler(deps.Users)
	userHandler := NewUserHandler(deps.Users, deps.Store)
	orgHandler := NewOrganisationHandler(deps.Store)
	oppHandler := NewOpportunityHandler(deps.Lifecycle, deps.Store)
	appHandler := NewApplicationHandler(deps.Lifecycle, deps.Store, deps.Metrics)
	areaHandler := NewLearningAreaHandler(deps.Store)
	cfgHandler := NewClientConfigHandler(deps.Config)

	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	if deps.Logger != nil {
		r.Use(requestLogger(deps.Logger))
	}
	r.Use(recoverer(deps.Logger))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	if deps.Metrics != nil {
		r.Use(deps.Metrics.Middleware())
	}
	if deps.RateLimiter != nil {
		r.Use(deps.RateLimiter.Middleware())
	}
	r.Use(middleware.Identity(deps.TokenManager))

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})

	if deps.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", metrics.Handler(deps.Gatherer))
	}

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Get("/config", cfgHandler.Get)

		r.Route("/auth", func(r chi.Router) {
			r.Get("/me", authHandler.Me)

			r.Group(func(r chi.Router) {
				r.Use(chimw.AllowContentType("application/json"))

				r.Post("/register", authHandler.Register)
				r.Post("/google-signin", authHandler.GoogleSignIn)
			})
		})

		r.Route("/users/{id}", func(r chi.Router) {
			r.Put("/", userHandler.UpdateProfile)
			r.Get("/opportunities", userHandler.ListOpportunities)
			r.Get("/applications", userHandler.ListApplications)
		})

		r.Get("/organisations", orgHandler.List)
		r.Get("/learning-areas", areaHandler.List)

		r.Route("/opportunities", func(r chi.Router) {
			r.Get("/", oppHandler.List)
			r.Post("/", oppHandler.Create)
			r.Get("/{id}", oppHandler.Get)
			r.Put("/{id}", oppHandler.Update)
			r.Get("/{id}/applications", appHandler.ListByOpportunity)
		})

		r.Route("/applications", func(r chi.Router) {
			r.Post("/", appHandler.Apply)
			r.Post("/accept", appHandler.Accept)
		})
	})

	return r
}

func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

			defer func() {
				logger.Info("request completed",
					"method", r.Method,
					"path", r.URL.Path,
					"duration", time.Since(start),
					"status", ww.Status(),
					"size", ww.BytesWritten(),
					"requestID", chimw.GetReqID(r.Context()),
				)
			}()

			next.ServeHTTP(ww, r)
		})
	}
}

func recoverer(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					if logger != nil {
						logger.Error("panic recovered",
							"panic", rvr,
							"requestID", chimw.GetReqID(r.Context()),
						)
					}

					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					w.Write([]byte(`{"error":"Internal server error"}`))
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}

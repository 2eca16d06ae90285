package server

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"staffbook/internal/domain/employee"
	"staffbook/internal/platform/config"
	"staffbook/internal/platform/db"
	"staffbook/internal/platform/metrics"
	adminhandler "staffbook/internal/transport/http/handlers/admin"
	authhandler "staffbook/internal/transport/http/handlers/auth"
	employeehandler "staffbook/internal/transport/http/handlers/employee"
	exporthandler "staffbook/internal/transport/http/handlers/export"
	"staffbook/internal/transport/http/middleware"
)

// Deps are the assembled collaborators the HTTP surface is built from. Ready
// reports datastore readiness for the readiness probe; nil means always
// ready.
type Deps struct {
	Service            *employee.Service
	Collector          *metrics.Collector
	SessionSecret      string
	SessionTTL         time.Duration
	MaxBodyBytes       int64
	RateLimitPerMinute int
	Production         bool
	Ready              func(context.Context) error
}

// NewRouter wires the middleware chain and every API route group. Tests
// assemble it with an in-memory store; Run assembles it against MongoDB.
func NewRouter(deps Deps) *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(deps.Collector))
	router.Use(middleware.Recoverer)
	router.Use(middleware.SecureHeaders(deps.Production))
	router.Use(middleware.BodyLimit(deps.MaxBodyBytes))
	router.Use(middleware.Session(deps.SessionSecret))
	if deps.RateLimitPerMinute > 0 {
		router.Use(middleware.RateLimit(deps.RateLimitPerMinute, time.Minute))
		router.Use(middleware.SensitiveRateLimit(deps.RateLimitPerMinute, time.Minute))
	}
	router.Use(middleware.CSRF)

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if deps.Ready != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := deps.Ready(ctx); err != nil {
				http.Error(w, "db not ready", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	router.Route("/api/v1", func(r chi.Router) {
		authhandler.NewHandler(deps.Service, deps.SessionSecret, deps.SessionTTL).RegisterRoutes(r)
		employeehandler.NewHandler(deps.Service).RegisterRoutes(r)
		adminhandler.NewHandler(deps.Service, deps.Collector).RegisterRoutes(r)
		exporthandler.NewHandler(deps.Service, deps.Collector).RegisterRoutes(r)
	})

	return router
}

func Run() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	ctx := context.Background()
	client, err := db.Connect(ctx, cfg)
	if err != nil {
		log.Fatalf("mongo connect failed: %v", err)
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()

	store := employee.NewStore(db.Employees(client, cfg))
	if cfg.RunSeed {
		if err := db.Seed(ctx, store, cfg); err != nil {
			log.Fatalf("seed failed: %v", err)
		}
	}

	var collector *metrics.Collector
	if cfg.MetricsEnabled {
		collector = metrics.New()
	}

	router := NewRouter(Deps{
		Service:            employee.NewService(store),
		Collector:          collector,
		SessionSecret:      cfg.SessionSecret,
		SessionTTL:         cfg.SessionTTL,
		MaxBodyBytes:       cfg.MaxBodyBytes,
		RateLimitPerMinute: cfg.RateLimitPerMinute,
		Production:         cfg.IsProduction(),
		Ready: func(ctx context.Context) error {
			return client.Ping(ctx, nil)
		},
	})

	log.Printf("staffbook server listening on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, router); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
